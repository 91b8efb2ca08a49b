package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-partgen/pkg/orchestrator"
	"github.com/goliatone/go-partgen/pkg/scad"
)

var paramsCmd = &cobra.Command{
	Use:   "params <main.scad>",
	Short: "List the parameters discovered in a document tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gen := orchestrator.New()
		template, err := gen.BuildTemplate(cmd.Context(), scad.SourceFromFile(args[0]))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTYPE\tDEFAULT\tADJUSTABLE\tOPTIONS")
		for _, name := range template.Names() {
			spec, _ := template.Spec(name)
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
				spec.Name, spec.Type, spec.Default, spec.UserAdjustable,
				strings.Join(spec.Options, "|"))
		}
		return w.Flush()
	},
}
