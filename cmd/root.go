package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mark3labs/tfgen/internal/app"
	"github.com/mark3labs/tfgen/internal/config"
	"github.com/mark3labs/tfgen/internal/prompt"
)

var (
	configFile string
	envFile    string
	debugMode  bool
	forceFlag  bool

	modelFlag     string
	apiKeyEnv     string
	regionFlag    string
	defaultRegion string
	requestFlag   string
	promptFile    string
	outputFlag    string

	maxRetries     int
	retryBaseDelay time.Duration
	retryMaxDelay  time.Duration
	timeoutFlag    time.Duration
	temperature    float32
	baseURL        string
	apiVersion     string

	formatterCmd []string
	builtinFmt   bool
	validateFlag bool
	stripFences  bool
)

var rootCmd = &cobra.Command{
	Use:   "tfgen",
	Short: "Generate Terraform code with Gemini",
	Long: `tfgen asks a Gemini model to write Terraform for the requested
infrastructure, saves the answer to a file and runs terraform fmt on it.

The API key is read from GOOGLE_API_KEY (see --api-key-env). A .env file in
the working directory is loaded first if present.

Examples:
  tfgen
  tfgen --region eu-west-1 --request "a VPC with public and private subnets"
  tfgen -o infra/main.tf --force --strip-fences`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context())
	},
}

// GetRootCommand returns the root command with the version set.
func GetRootCommand(v string) *cobra.Command {
	rootCmd.Version = v
	return rootCmd
}

func init() {
	config.SetDefaults(viper.GetViper())

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default is .tfgen.yml in the working or home directory)")
	flags.StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file to load before reading the API key")
	flags.BoolVar(&debugMode, "debug", false, "enable debug logging")
	flags.StringVarP(&modelFlag, "model", "m", config.DefaultModel, "Gemini model to use")
	flags.StringVar(&apiKeyEnv, "api-key-env", config.DefaultAPIKeyEnv, "environment variable holding the API key")
	flags.StringVar(&baseURL, "base-url", "", "override the Gemini API endpoint")
	flags.StringVar(&apiVersion, "api-version", "", "Gemini API version (default chosen by the client)")

	// Generation flags are persistent too so `tfgen config` shows their
	// effect.
	flags.StringVarP(&regionFlag, "region", "r", "", "AWS region to target (skips the interactive prompt)")
	flags.StringVar(&defaultRegion, "default-region", config.DefaultRegion, "region used when the prompt is left blank")
	flags.StringVar(&requestFlag, "request", config.DefaultRequest, "infrastructure to generate")
	flags.StringVar(&promptFile, "prompt-file", "", "custom prompt template with {{region}} and {{request}} placeholders")
	flags.StringVarP(&outputFlag, "output", "o", config.DefaultOutput, "file to write the generated code to")
	flags.BoolVarP(&forceFlag, "force", "f", false, "overwrite the output file without asking")

	flags.IntVar(&maxRetries, "max-retries", config.DefaultMaxRetries, "maximum number of generation attempts")
	flags.DurationVar(&retryBaseDelay, "retry-base-delay", config.DefaultRetryBase, "initial backoff between attempts (0 retries immediately)")
	flags.DurationVar(&retryMaxDelay, "retry-max-delay", config.DefaultRetryMaxDelay, "upper bound for the backoff")
	flags.DurationVar(&timeoutFlag, "timeout", 0, "time limit for each attempt (0 for none)")
	flags.Float32Var(&temperature, "temperature", 0, "sampling temperature (0 uses the model default)")

	flags.StringSliceVar(&formatterCmd, "formatter", config.DefaultFormatter, "formatter command; the output path is appended")
	flags.BoolVar(&builtinFmt, "builtin-fmt", false, "format in-process when the formatter binary is missing")
	flags.BoolVar(&validateFlag, "validate", true, "check the generated code for HCL syntax errors")
	flags.BoolVar(&stripFences, "strip-fences", false, "keep only the contents of Markdown code fences")

	for _, name := range []string{
		"env-file", "debug", "model", "api-key-env", "base-url", "api-version",
		"region", "default-region", "request", "prompt-file", "output", "force",
		"max-retries", "retry-base-delay", "retry-max-delay", "timeout", "temperature",
		"formatter", "builtin-fmt", "validate", "strip-fences",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

// initConfig loads the dotenv file and the config file before any command
// runs. Values already present in the environment are not overridden by
// the dotenv file.
func initConfig(_ *cobra.Command, _ []string) error {
	config.BindEnv(viper.GetViper())
	path := viper.GetString("env-file")
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	if err := config.InitConfig(viper.GetViper(), configFile, os.Getenv); err != nil {
		return err
	}
	setupLogger(viper.GetBool("debug"))
	return nil
}

func runGenerate(ctx context.Context) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a := app.New(app.Options{
		Config:   cfg,
		Getenv:   os.Getenv,
		Console:  prompt.NewConsole(os.Stdin, os.Stdout),
		NewModel: geminiFactory(cfg),
		Out:      os.Stdout,
		Logger:   logger,
	})
	_, err = a.Run(ctx)
	return err
}
