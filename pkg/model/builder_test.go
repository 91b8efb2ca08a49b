package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-partgen/pkg/params"
)

func TestBuildFieldKinds(t *testing.T) {
	tpl := params.NewTemplate([]params.Spec{
		{Name: "COASTER_D", Default: "80", Type: params.TypeNumber, UserAdjustable: true, Comment: "@param coaster diameter in mm"},
		{Name: "MODE", Default: `"inlay"`, Type: params.TypeString, UserAdjustable: true, Comment: "options: inlay | emboss", Options: []string{"inlay", "emboss"}},
		{Name: "USE_SPINNER", Default: "true", Type: params.TypeBool, UserAdjustable: true},
		{Name: "LABEL", Default: `"logo"`, Type: params.TypeString, UserAdjustable: true},
		{Name: "HIDDEN", Default: "1", Type: params.TypeNumber, UserAdjustable: false},
	})

	form, err := NewBuilder().Build(tpl)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := []Field{
		{Name: "coaster_d", Param: "COASTER_D", Type: FieldTypeNumber, Label: "Coaster d", Description: "coaster diameter in mm", Default: "80"},
		{Name: "label", Param: "LABEL", Type: FieldTypeString, Label: "Label", Default: "logo"},
		{Name: "mode", Param: "MODE", Type: FieldTypeSelect, Label: "Mode", Default: "inlay", Options: []string{"inlay", "emboss"}},
		{Name: "use_spinner", Param: "USE_SPINNER", Type: FieldTypeBoolean, Label: "Use spinner", Default: "true", Checked: true},
	}
	if diff := cmp.Diff(want, form.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSanitizesDescriptions(t *testing.T) {
	tpl := params.NewTemplate([]params.Spec{
		{
			Name:           "BASE_H",
			Default:        "4",
			Type:           params.TypeNumber,
			UserAdjustable: true,
			Comment:        `base height <script>alert(1)</script> in mm`,
		},
	})

	form, err := NewBuilder().Build(tpl)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(form.Fields) != 1 {
		t.Fatalf("got %d fields, want 1", len(form.Fields))
	}
	if got := form.Fields[0].Description; got != "base height  in mm" {
		t.Errorf("description = %q, markup not stripped", got)
	}
}

func TestBuildNilTemplate(t *testing.T) {
	form, err := NewBuilder().Build(nil)
	if err != nil {
		t.Fatalf("build nil: %v", err)
	}
	if len(form.Fields) != 0 {
		t.Errorf("nil template produced %d fields", len(form.Fields))
	}
	if form.Action != "/render" || form.Method != "post" {
		t.Errorf("unexpected form envelope %+v", form)
	}
}
