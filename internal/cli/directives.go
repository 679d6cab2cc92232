package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/rohmanhakim/robots-directives/internal/catalog"
	"github.com/rohmanhakim/robots-directives/internal/codec"
	"github.com/rohmanhakim/robots-directives/internal/directive"
	"github.com/rohmanhakim/robots-directives/internal/htmlmeta"
	"github.com/rohmanhakim/robots-directives/internal/rules"
	"github.com/rohmanhakim/robots-directives/internal/session"
	"github.com/spf13/cobra"
)

var (
	directiveSet string
	removeBot    string
	forceRules   bool
	renderTags   bool
	showPresets  bool
)

var errValidationFailed = errors.New("validation failed")

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Rewrite a stored directive list or rule collection in canonical form",
	Long: `Read a stored value from a file or stdin and print it in the structured form.
Rule collections are detected by their pattern column and written in evaluation order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		var out []byte
		if forceRules || isRuleCollection(data) {
			rs, decodeErr := codec.DecodeRules(data)
			if decodeErr != nil {
				return decodeErr
			}
			out, err = codec.EncodeRules(rs)
		} else {
			ds, decodeErr := codec.DecodeDirectives(data)
			if decodeErr != nil {
				return decodeErr
			}
			out, err = codec.EncodeDirectives(ds)
		}
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var addCmd = &cobra.Command{
	Use:   "add <directive>...",
	Short: "Add directives to a list, replacing conflicting ones",
	Example: `  robots-directives add --set '["index","follow"]' noindex
  robots-directives add googlebot:max-snippet:50 bingbot:noarchive`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSessionFromFlags(cmd)
		if err != nil {
			return err
		}
		for _, arg := range args {
			if !s.Add(directive.FromString(arg)) {
				PrintDim(cmd.ErrOrStderr(), fmt.Sprintf("skipped %q", arg))
			}
		}
		return printJSON(cmd.OutOrStdout(), s.JSON())
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <value>...",
	Short: "Remove directives from a list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSessionFromFlags(cmd)
		if err != nil {
			return err
		}
		for _, value := range args {
			if !s.Remove(value, removeBot) {
				PrintDim(cmd.ErrOrStderr(), fmt.Sprintf("not present: %q", directive.Directive{Value: value, Bot: removeBot}.String()))
			}
		}
		return printJSON(cmd.OutOrStdout(), s.JSON())
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a directive list or rule collection against the catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		data, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		problems := 0
		if forceRules || isRuleCollection(data) {
			rs, decodeErr := codec.DecodeRules(data)
			if decodeErr != nil {
				return decodeErr
			}
			for _, r := range rules.Order(rs) {
				for _, kind := range []rules.Kind{rules.KindMeta, rules.KindXRobots} {
					result := catalog.Validate(env.catalog, r.Directives(kind))
					for _, msg := range result.Errors {
						PrintError(out, fmt.Sprintf("%s [%s]: %s", r.Pattern, kind, msg))
						problems++
					}
				}
			}
		} else {
			ds, decodeErr := codec.DecodeDirectives(data)
			if decodeErr != nil {
				return decodeErr
			}
			for _, msg := range catalog.Validate(env.catalog, ds).Errors {
				PrintError(out, msg)
				problems++
			}
		}

		if problems > 0 {
			return fmt.Errorf("%w: %d problem(s)", errValidationFailed, problems)
		}
		PrintSuccess(out, "valid")
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [html-file]",
	Short: "Read robots meta tags from an HTML page",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		data, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		extractor := htmlmeta.NewExtractor(env.recorder)
		found, extractErr := extractor.Extract(bytes.NewReader(data))
		if extractErr != nil {
			return extractErr
		}

		s := newSession(env)
		s.SetValues(directive.FromDirectives(found))

		out := cmd.OutOrStdout()
		if !renderTags {
			return printJSON(out, s.JSON())
		}

		tags, err := htmlmeta.Render(s.Directives())
		if err != nil {
			return err
		}
		if tags != "" {
			fmt.Fprintln(out, tags)
		}
		for _, value := range htmlmeta.HeaderValues(s.Directives()) {
			fmt.Fprintf(out, "X-Robots-Tag: %s\n", value)
		}
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the directives the editor knows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if showPresets {
			PrintSection(out, "Meta robots presets")
			for _, p := range catalog.MetaRobotsPresets() {
				PrintLabelValue(out, p.Value, strings.Join(p.Directives, ", "))
			}
			return nil
		}

		var group catalog.Group
		for _, e := range catalog.Default().Entries() {
			if e.Group != group {
				group = e.Group
				PrintSection(out, string(group))
			}
			line := e.Description
			if e.HasModification {
				line += fmt.Sprintf(" (value: %s)", e.ModificationType)
			}
			PrintLabelValue(out, e.Value, line)
			if len(e.Conflicts) > 0 {
				PrintDim(out, "    conflicts with "+strings.Join(e.Conflicts, ", "))
			}
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{addCmd, removeCmd} {
		c.Flags().StringVar(&directiveSet, "set", "", "current directive list as stored JSON (defaults to empty)")
	}
	removeCmd.Flags().StringVar(&removeBot, "bot", "", "crawler the directives are scoped to (empty for all crawlers)")
	for _, c := range []*cobra.Command{normalizeCmd, validateCmd} {
		c.Flags().BoolVar(&forceRules, "rules", false, "treat the input as a rule collection")
	}
	importCmd.Flags().BoolVar(&renderTags, "render", false, "print meta tags and X-Robots-Tag header values instead of JSON")
	catalogCmd.Flags().BoolVar(&showPresets, "presets", false, "list the legacy meta robots presets")
}

func newSession(env environment) *session.Session {
	return session.New(
		env.catalog,
		session.Options{
			EnableBotNames: env.cfg.EnableBotNames(),
			MaxTags:        env.cfg.MaxTags(),
		},
		env.recorder,
		env.cfg.HashAlgo(),
	)
}

func newSessionFromFlags(cmd *cobra.Command) (*session.Session, error) {
	env, err := newEnvironment(cmd)
	if err != nil {
		return nil, err
	}
	s := newSession(env)
	if directiveSet != "" {
		if err := s.ApplyJSON(directiveSet); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// isRuleCollection reports whether data decodes to rules with at least one
// pattern. Directive lists never carry a pattern column.
func isRuleCollection(data []byte) bool {
	rs, err := codec.DecodeRules(data)
	if err != nil {
		return false
	}
	for _, r := range rs {
		if r.Pattern != "" {
			return true
		}
	}
	return false
}
