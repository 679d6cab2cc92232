package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/rohmanhakim/robots-directives/internal/catalog"
	"github.com/rohmanhakim/robots-directives/internal/config"
	"github.com/rohmanhakim/robots-directives/internal/metadata"
	"github.com/rohmanhakim/robots-directives/pkg/hashutil"
	"github.com/spf13/cobra"
)

const programName = "robots-directives"

var (
	cfgFile          string
	enableBotNames   bool
	strictValidation bool
	maxTags          int
	storeBackend     string
	storePath        string
	hashAlgo         string
	logLevel         string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   programName,
	Short: "Edit, order and store robots meta and X-Robots-Tag directives.",
	Long: `robots-directives normalizes robots directive lists and URL pattern rules,
resolves conflicting directives, orders rules for first-match evaluation and
persists them to a file, redis or postgres store.

Stored values written by older editors (colon strings, positional arrays,
preset values) are read and rewritten in the structured form.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd.ErrOrStderr(), err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path, JSON or YAML (e.g., /etc/robots/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&enableBotNames, "enable-bot-names", true, "keep crawler names on directives (off for meta robots fields)")
	rootCmd.PersistentFlags().BoolVar(&strictValidation, "strict", false, "reject unknown directives and missing or unexpected values on save")
	rootCmd.PersistentFlags().IntVar(&maxTags, "max-tags", 0, "maximum number of directives in one list (0 for unlimited)")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "store backend: file, redis, postgres or memory")
	rootCmd.PersistentFlags().StringVar(&storePath, "store-path", "", "root directory of the file store")
	rootCmd.PersistentFlags().StringVar(&hashAlgo, "hash-algo", "", "fingerprint algorithm: blake3 or sha256")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		normalizeCmd,
		addCmd,
		removeCmd,
		orderCmd,
		validateCmd,
		importCmd,
		saveCmd,
		loadCmd,
		catalogCmd,
		versionCmd,
	)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError reads in config file and ENV variables if set, returning any errors.
// This makes it easier to test error cases.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	// Start with default config and apply overrides using method chaining
	configBuilder := config.WithDefault()

	// Override with CLI flag values where provided
	if !enableBotNames {
		configBuilder = configBuilder.WithEnableBotNames(false)
	}

	if strictValidation {
		configBuilder = configBuilder.WithStrictValidation(true)
	}

	if maxTags != 0 {
		configBuilder = configBuilder.WithMaxTags(maxTags)
	}

	if storeBackend != "" {
		configBuilder = configBuilder.WithStoreBackend(storeBackend)
	}

	if storePath != "" {
		configBuilder = configBuilder.WithStorePath(storePath)
	}

	if hashAlgo != "" {
		algo, err := hashutil.ParseHashAlgo(hashAlgo)
		if err != nil {
			return config.Config{}, fmt.Errorf("%w: %s", config.ErrInvalidConfig, err.Error())
		}
		configBuilder = configBuilder.WithHashAlgo(algo)
	}

	if logLevel != "" {
		level, err := config.ParseLogLevel(logLevel)
		if err != nil {
			return config.Config{}, err
		}
		configBuilder = configBuilder.WithLogLevel(level)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// environment is what every command needs besides its arguments.
type environment struct {
	cfg      config.Config
	catalog  catalog.Catalog
	recorder *metadata.Recorder
}

func newEnvironment(cmd *cobra.Command) (environment, error) {
	cfg, err := InitConfigWithError()
	if err != nil {
		return environment{}, err
	}
	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel()}))
	return environment{
		cfg:      cfg,
		catalog:  catalog.Default(),
		recorder: metadata.NewRecorder(uuid.NewString(), logger),
	}, nil
}

// readInput reads the file named by the first argument, or stdin for "-" or
// no argument.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}

func ResetFlags() {
	cfgFile = ""
	enableBotNames = true
	strictValidation = false
	maxTags = 0
	storeBackend = ""
	storePath = ""
	hashAlgo = ""
	logLevel = ""
	directiveSet = ""
	removeBot = ""
	forceRules = false
	renderTags = false
	orderJSON = false
	showPresets = false
}

// ExecuteForTest runs the command line args with stdin, stdout and stderr
// redirected, and returns what was written to stdout.
func ExecuteForTest(stdin io.Reader, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()
	err := rootCmd.Execute()
	return out.String(), err
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetEnableBotNamesForTest(enable bool) {
	enableBotNames = enable
}

func SetStrictValidationForTest(strict bool) {
	strictValidation = strict
}

func SetMaxTagsForTest(max int) {
	maxTags = max
}

func SetStoreBackendForTest(backend string) {
	storeBackend = backend
}

func SetStorePathForTest(path string) {
	storePath = path
}

func SetHashAlgoForTest(algo string) {
	hashAlgo = algo
}

func SetLogLevelForTest(level string) {
	logLevel = level
}
