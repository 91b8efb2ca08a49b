// Package invoke assembles and runs the external openscad invocation. The
// ordering of its argument list is load-bearing: the render process is
// otherwise a black box, and deterministic arguments are the only way to
// make invocations reproducible.
package invoke

import (
	"errors"

	"github.com/goliatone/go-partgen/pkg/params"
	"github.com/goliatone/go-partgen/pkg/quality"
)

// DefaultInputVar is the declaration overridden with the request's uploaded
// asset path.
const DefaultInputVar = "SVG_PATH"

// Job describes one render: quality settings, the per-request parameter
// instance, the caller-supplied binary input, and the output target.
type Job struct {
	Quality quality.Settings
	Params  *params.Instance

	// InputVar names the declaration that receives InputPath. Defaults to
	// DefaultInputVar when empty.
	InputVar string

	// InputPath is the on-disk path of the uploaded asset.
	InputPath string

	// OutputPath is where openscad writes the STL.
	OutputPath string

	// EntryPath is the main .scad document.
	EntryPath string
}

// Args builds the openscad argument list in the fixed order the service
// guarantees: quality overrides first, model parameter overrides sorted
// ascending by name, the input-path override last among overrides, then the
// output flag and the entry document.
func (j Job) Args() ([]string, error) {
	if j.EntryPath == "" {
		return nil, errors.New("invoke: entry path is required")
	}
	if j.OutputPath == "" {
		return nil, errors.New("invoke: output path is required")
	}

	args := []string{"--render"}
	for _, fragment := range j.Quality.Fragments() {
		args = append(args, "-D", fragment)
	}
	if j.Params != nil {
		for define := range j.Params.Defines() {
			args = append(args, "-D", define)
		}
	}
	if j.InputPath != "" {
		inputVar := j.InputVar
		if inputVar == "" {
			inputVar = DefaultInputVar
		}
		args = append(args, "-D", inputVar+"="+quoted(j.InputPath))
	}
	args = append(args, "-o", j.OutputPath, j.EntryPath)
	return args, nil
}

// quoted wraps a path the way openscad expects string overrides, escaping
// backslashes before quotes.
func quoted(path string) string {
	escaped := make([]byte, 0, len(path)+2)
	escaped = append(escaped, '"')
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '\\':
			escaped = append(escaped, '\\', '\\')
		case '"':
			escaped = append(escaped, '\\', '"')
		default:
			escaped = append(escaped, path[i])
		}
	}
	return string(append(escaped, '"'))
}
