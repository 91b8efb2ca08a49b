package main

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-partgen/pkg/invoke"
	"github.com/goliatone/go-partgen/pkg/orchestrator"
	"github.com/goliatone/go-partgen/pkg/params"
	"github.com/goliatone/go-partgen/pkg/scad"
)

var (
	renderInput  string
	renderOutput string
	renderDryRun bool

	renderCmd = &cobra.Command{
		Use:   "render <main.scad>",
		Short: "Prompt for parameter values and run one render",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := orchestrator.New()
			template, err := gen.BuildTemplate(cmd.Context(), scad.SourceFromFile(args[0]))
			if err != nil {
				return err
			}

			instance := template.Instantiate()
			for _, spec := range template.UserSpecs() {
				if err := promptSpec(instance, spec); err != nil {
					return err
				}
			}

			settings, err := qualityFromConfig()
			if err != nil {
				return err
			}

			job := invoke.Job{
				Quality:    settings,
				Params:     instance,
				InputPath:  renderInput,
				OutputPath: renderOutput,
				EntryPath:  args[0],
			}

			if renderDryRun {
				jobArgs, err := job.Args()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), viper.GetString("openscad_binary"), strings.Join(jobArgs, " "))
				return nil
			}

			runner := invoke.NewExecRunner(
				invoke.WithBinary(viper.GetString("openscad_binary")),
				invoke.WithLogger(log.Default()),
			)
			if err := runner.Run(cmd.Context(), job); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", renderOutput)
			return nil
		},
	}
)

func init() {
	renderCmd.Flags().StringVar(&renderInput, "input", "", "path to the SVG asset referenced by the model")
	renderCmd.Flags().StringVar(&renderOutput, "output", "output.stl", "where to write the STL")
	renderCmd.Flags().BoolVar(&renderDryRun, "dry-run", false, "print the openscad invocation instead of running it")
}

// promptSpec asks for one parameter value. Accepting the shown default (or
// entering nothing) keeps the discovered default.
func promptSpec(instance *params.Instance, spec params.Spec) error {
	field := strings.ToLower(spec.Name)

	switch {
	case len(spec.Options) > 0:
		var answer string
		prompt := &survey.Select{
			Message: spec.Name,
			Options: spec.Options,
			Default: defaultOption(spec),
			Help:    spec.Comment,
		}
		if err := survey.AskOne(prompt, &answer); err != nil {
			return err
		}
		return instance.SetFromField(field, answer)
	case spec.Type == params.TypeBool:
		var answer bool
		prompt := &survey.Confirm{
			Message: spec.Name,
			Default: strings.EqualFold(spec.Default, "true"),
			Help:    spec.Comment,
		}
		if err := survey.AskOne(prompt, &answer); err != nil {
			return err
		}
		if answer {
			return instance.SetFromField(field, "true")
		}
		return instance.SetFromField(field, "false")
	default:
		shown := spec.Default
		if spec.Type == params.TypeString {
			shown = strings.Trim(shown, `"`)
		}
		var answer string
		prompt := &survey.Input{
			Message: spec.Name,
			Default: shown,
			Help:    spec.Comment,
		}
		if err := survey.AskOne(prompt, &answer); err != nil {
			return err
		}
		if spec.Type == params.TypeNumber && answer == spec.Default {
			// Defaults may be expressions like CLEARANCE/2; resubmitting
			// them verbatim would fail numeric validation.
			return nil
		}
		return instance.SetFromField(field, answer)
	}
}

func defaultOption(spec params.Spec) string {
	trimmed := strings.Trim(spec.Default, `"`)
	for _, option := range spec.Options {
		if option == trimmed {
			return option
		}
	}
	if len(spec.Options) > 0 {
		return spec.Options[0]
	}
	return ""
}
