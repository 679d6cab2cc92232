package cmd

import (
	"fmt"

	"github.com/rohmanhakim/robots-directives/internal/codec"
	"github.com/rohmanhakim/robots-directives/internal/config"
	"github.com/rohmanhakim/robots-directives/internal/store"
	"github.com/rohmanhakim/robots-directives/pkg/retry"
	"github.com/rohmanhakim/robots-directives/pkg/timeutil"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <key> [file]",
	Short: "Validate, order and persist a directive list or rule collection",
	Long: `Read a submitted value from a file or stdin, canonicalize it, validate it
when --strict is set, order rule collections and write it under key.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		key := args[0]
		data, err := readInput(cmd, args[1:])
		if err != nil {
			return err
		}

		c := codec.NewCodec(env.catalog, env.recorder, env.cfg.StrictValidation())
		var prepared []byte
		if forceRules || isRuleCollection(data) {
			prepared, err = c.PrepareRules(data)
		} else {
			prepared, err = c.PrepareDirectives(data)
		}
		if err != nil {
			return err
		}

		st, closeStore, err := store.Open(cmd.Context(), storeParams(env.cfg), env.recorder)
		if err != nil {
			return err
		}
		defer closeStore()

		result, saveErr := st.Save(cmd.Context(), key, prepared)
		if saveErr != nil {
			return saveErr
		}
		PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("saved %s to %s (%s)", key, st.Backend(), result.Location()))
		PrintLabelValue(cmd.OutOrStdout(), "fingerprint", result.Fingerprint())
		return nil
	},
}

var loadCmd = &cobra.Command{
	Use:   "load <key>",
	Short: "Print a stored value in canonical form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}

		st, closeStore, err := store.Open(cmd.Context(), storeParams(env.cfg), env.recorder)
		if err != nil {
			return err
		}
		defer closeStore()

		data, loadErr := st.Load(cmd.Context(), args[0])
		if loadErr != nil {
			return loadErr
		}

		// undecodable values load as empty, as the editor does
		c := codec.NewCodec(env.catalog, env.recorder, false)
		var out []byte
		if forceRules || isRuleCollection(data) {
			out, err = codec.EncodeRules(c.LoadRules(data))
		} else {
			out, err = codec.EncodeDirectives(c.LoadDirectives(data))
		}
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	for _, c := range []*cobra.Command{saveCmd, loadCmd} {
		c.Flags().BoolVar(&forceRules, "rules", false, "treat the value as a rule collection")
	}
}

func storeParams(cfg config.Config) store.OpenParams {
	return store.OpenParams{
		Backend:     cfg.StoreBackend(),
		Path:        cfg.StorePath(),
		RedisURL:    cfg.RedisURL(),
		DatabaseURL: cfg.DatabaseURL(),
		HashAlgo:    cfg.HashAlgo(),
		RetryParam: retry.NewRetryParam(
			cfg.Jitter(),
			cfg.RandomSeed(),
			cfg.MaxAttempt(),
			timeutil.NewBackoffParam(
				cfg.BackoffInitialDuration(),
				cfg.BackoffMultiplier(),
				cfg.BackoffMaxDuration(),
			),
		),
	}
}
