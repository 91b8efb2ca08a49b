package orchestrator

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-partgen/pkg/params"
	"github.com/goliatone/go-partgen/pkg/scad"
)

var coasterTree = fstest.MapFS{
	"main.scad": {Data: []byte(`include <lib/common.scad>;

COASTER_D = 80;        // @param coaster diameter in mm
MODE = "inlay";        // @param options: inlay | emboss
USE_SPINNER = false;   // @param
SVG_PATH = "logo.svg";
`)},
	"lib/common.scad": {Data: []byte(`CLEARANCE = 0.2;      // @param printer fit clearance
$fn = 64;
`)},
}

func newTestOrchestrator() *Orchestrator {
	return New(WithLoaderOptions(scad.LoaderOptions{FileSystem: coasterTree}))
}

func TestBuildTemplateFromTree(t *testing.T) {
	o := newTestOrchestrator()

	tpl, err := o.BuildTemplate(context.Background(), scad.SourceFromFS("main.scad"))
	if err != nil {
		t.Fatalf("build template: %v", err)
	}

	wantNames := []string{"CLEARANCE", "COASTER_D", "MODE", "SVG_PATH", "USE_SPINNER"}
	if got := tpl.Names(); len(got) != len(wantNames) {
		t.Fatalf("template names = %v, want %v", got, wantNames)
	}

	spec, ok := tpl.Spec("SVG_PATH")
	if !ok {
		t.Fatalf("SVG_PATH missing from template")
	}
	if spec.UserAdjustable {
		t.Errorf("unmarked SVG_PATH is adjustable in allow-list mode")
	}

	mode, ok := tpl.Spec("MODE")
	if !ok {
		t.Fatalf("MODE missing from template")
	}
	if len(mode.Options) != 2 {
		t.Errorf("MODE options = %v, want two choices", mode.Options)
	}
}

func TestRenderFormEndToEnd(t *testing.T) {
	o := newTestOrchestrator()

	tpl, err := o.BuildTemplate(context.Background(), scad.SourceFromFS("main.scad"))
	if err != nil {
		t.Fatalf("build template: %v", err)
	}

	out, err := o.RenderForm(context.Background(), FormRequest{
		Template: tpl,
		Metadata: map[string]string{"fs": "0.5", "fa": "10", "fn": "50"},
	})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`name="coaster_d"`,
		`name="mode"`,
		"emboss",
		`name="use_spinner"`,
		`value="0.5"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("form output missing %q", want)
		}
	}
	if strings.Contains(html, `name="svg_path"`) {
		t.Errorf("non-adjustable parameter rendered as a field")
	}
}

func TestRenderFormUnknownRenderer(t *testing.T) {
	o := newTestOrchestrator()
	tpl := params.NewTemplate(nil)

	if _, err := o.RenderForm(context.Background(), FormRequest{Template: tpl, Renderer: "absent"}); err == nil {
		t.Errorf("unknown renderer accepted")
	}
}

func TestBuildTemplateRequiresSource(t *testing.T) {
	if _, err := newTestOrchestrator().BuildTemplate(context.Background(), nil); err == nil {
		t.Errorf("nil source accepted")
	}
}

func TestRenderFormRequiresTemplate(t *testing.T) {
	if _, err := newTestOrchestrator().RenderForm(context.Background(), FormRequest{}); err == nil {
		t.Errorf("nil template accepted")
	}
}
