package main

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/pkotlin/pkc/config"
	"github.com/pkotlin/pkc/console"
	"github.com/pkotlin/pkc/grammar"
	spec "github.com/pkotlin/pkc/spec/grammar"
	"github.com/spf13/cobra"
)

var describeFlags = struct {
	format *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the LALR(1) automaton of the Pseudo-Kotlin grammar in readable format",
		Example: `  pkc describe
  pkc describe --format yaml`,
		Args: cobra.NoArgs,
		RunE: runDescribe,
	}
	describeFlags.format = cmd.Flags().StringP("format", "f", config.FormatText, "output format (text, json, or yaml)")
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverRun(&retErr)

	format, err := outputFormat(cmd, describeFlags.format)
	if err != nil {
		return err
	}

	_, report, err := grammar.CompileCatalogue(grammar.EnableReporting())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if format != config.FormatText {
		return console.Encode(w, format, report)
	}

	return writeDescription(w, report)
}

const descTemplate = `# Conflicts

{{ printConflictSummary . }}

# Terminals

{{ range slice .Terminals 1 -}}
{{ printTerminal . }}
{{ end }}
# Productions

{{ range slice .Productions 1 -}}
{{ printProduction . }}
{{ end }}
# States
{{ range .States }}
## State {{ .Number }}

{{ range .Kernel -}}
{{ printItem . }}
{{ end }}
{{ range .Shift -}}
{{ printShift . }}
{{ end -}}
{{ range .Reduce -}}
{{ printReduce . }}
{{ end -}}
{{ range .GoTo -}}
{{ printGoTo . }}
{{ end }}
{{ range .SRConflict -}}
{{ printSRConflict . }}
{{ end -}}
{{ range .RRConflict -}}
{{ printRRConflict . }}
{{ end -}}
{{ end }}`

func writeDescription(w io.Writer, report *spec.Report) error {
	termName := func(sym int) string {
		if report.Terminals[sym].Alias != "" {
			return report.Terminals[sym].Alias
		}
		return report.Terminals[sym].Name
	}

	nonTermName := func(sym int) string {
		return report.NonTerminals[sym].Name
	}

	symName := func(sym int) string {
		if sym > 0 {
			return termName(sym)
		}
		return nonTermName(sym * -1)
	}

	fns := template.FuncMap{
		"printConflictSummary": func(report *spec.Report) string {
			sr, rr := report.ConflictCount()
			count := sr + rr
			if count == 1 {
				return "1 conflict was detected."
			} else if count > 1 {
				return fmt.Sprintf("%v conflicts were detected.", count)
			}
			return "No conflict was detected."
		},
		"printTerminal": func(term *spec.Terminal) string {
			if term.Alias != "" {
				return fmt.Sprintf("%4v %v (%v)", term.Number, term.Name, term.Alias)
			}
			return fmt.Sprintf("%4v %v", term.Number, term.Name)
		},
		"printProduction": func(prod *spec.Production) string {
			var b strings.Builder
			fmt.Fprintf(&b, "%v →", nonTermName(prod.LHS))
			for _, e := range prod.RHS {
				fmt.Fprintf(&b, " %v", symName(e))
			}
			return fmt.Sprintf("%4v %v", prod.Number, b.String())
		},
		"printItem": func(item *spec.Item) string {
			prod := report.Productions[item.Production]

			var b strings.Builder
			fmt.Fprintf(&b, "%v →", nonTermName(prod.LHS))
			for i, e := range prod.RHS {
				if i == item.Dot {
					fmt.Fprintf(&b, " ・")
				}
				fmt.Fprintf(&b, " %v", symName(e))
			}
			if item.Dot >= len(prod.RHS) {
				fmt.Fprintf(&b, " ・")
			}

			return fmt.Sprintf("%4v %v", prod.Number, b.String())
		},
		"printShift": func(tran *spec.Transition) string {
			return fmt.Sprintf("shift  %4v on %v", tran.State, termName(tran.Symbol))
		},
		"printReduce": func(reduce *spec.Reduce) string {
			names := make([]string, len(reduce.LookAhead))
			for i, a := range reduce.LookAhead {
				names[i] = termName(a)
			}
			return fmt.Sprintf("reduce %4v on %v", reduce.Production, strings.Join(names, ", "))
		},
		"printGoTo": func(tran *spec.Transition) string {
			return fmt.Sprintf("goto   %4v on %v", tran.State, nonTermName(tran.Symbol))
		},
		"printSRConflict": func(sr *spec.SRConflict) string {
			return fmt.Sprintf("shift/reduce conflict (shift %v, reduce %v) on %v: shift %v adopted", sr.State, sr.Production, termName(sr.Symbol), sr.AdoptedState)
		},
		"printRRConflict": func(rr *spec.RRConflict) string {
			return fmt.Sprintf("reduce/reduce conflict (%v, %v) on %v: reduce %v adopted", rr.Production1, rr.Production2, termName(rr.Symbol), rr.AdoptedProduction)
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(descTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, report)
}
