package cmd

import (
	"fmt"
	"strings"

	"github.com/rohmanhakim/robots-directives/internal/codec"
	"github.com/rohmanhakim/robots-directives/internal/directive"
	"github.com/rohmanhakim/robots-directives/internal/rules"
	"github.com/spf13/cobra"
)

var orderJSON bool

var orderCmd = &cobra.Command{
	Use:   "order [rules-file]",
	Short: "Print rules in the order they are evaluated",
	Long: `Print a rule collection in first-match evaluation order: priority descending,
then the more specific pattern first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		rs, decodeErr := codec.DecodeRules(data)
		if decodeErr != nil {
			return decodeErr
		}

		out := cmd.OutOrStdout()
		if orderJSON {
			encoded, err := codec.EncodeRules(rs)
			if err != nil {
				return err
			}
			return printJSON(out, encoded)
		}

		for i, r := range rules.Order(rs) {
			PrintSection(out, fmt.Sprintf("%d. %s (priority %d)", i+1, displayPattern(r.Pattern), r.Priority))
			PrintLabelValue(out, "meta", joinDirectives(r.MetaDirectives))
			PrintLabelValue(out, "x-robots", joinDirectives(r.XRobotsDirectives))
		}
		return nil
	},
}

func init() {
	orderCmd.Flags().BoolVar(&orderJSON, "json", false, "print the ordered collection as stored JSON")
}

func displayPattern(pattern string) string {
	if pattern == "" {
		return `""`
	}
	return pattern
}

func joinDirectives(ds []directive.Directive) string {
	if len(ds) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(ds))
	for _, d := range ds {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, ", ")
}
