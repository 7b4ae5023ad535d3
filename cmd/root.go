package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Soheab/normalapi/config"
	"github.com/Soheab/normalapi/filter"
	"github.com/Soheab/normalapi/normalapi"
)

var (
	cfgFile   string
	cfg       *config.Config
	logger    zerolog.Logger
	apiClient *normalapi.Client
	compiler  = filter.NewExprCompiler(filter.WithCache(16))

	// Command flags
	jsonOutput bool
	exprFlag   string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "normalapi",
	Short: "A command line client for the normal-api utility service",
	Long: `normalapi calls the normal-api endpoints from the command line: text
transforms (encode, reverse, emojify, translate), Discord user, invite and
template lookups, top.gg vote checks and image fetches.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if apiClient != nil {
		apiClient.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().StringVarP(&exprFlag, "expr", "e", "", "evaluate an expression against the result and print its value")
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Override output format from command line if specified
	if cmd.Flags().Changed("json") && jsonOutput {
		cfg.Output.Format = "json"
	}

	opts := []normalapi.Option{
		normalapi.WithBaseURL(cfg.API.URL),
		normalapi.WithTimeout(cfg.API.Timeout),
	}
	if cfg.API.UserAgent != "" {
		opts = append(opts, normalapi.WithUserAgent(cfg.API.UserAgent))
	}

	apiClient, err = normalapi.NewClient(logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create normal-api client: %w", err)
	}

	logger.Debug().Str("url", cfg.API.URL).Dur("timeout", cfg.API.Timeout).Msg("normal-api client ready")
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	fd := os.Stderr.Fd()
	terminal := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !terminal,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
