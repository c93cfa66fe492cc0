package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jenian/credcheck/internal/config"
	"github.com/jenian/credcheck/internal/credentials"
	"github.com/jenian/credcheck/internal/envfile"
	"github.com/jenian/credcheck/internal/output"
	"github.com/jenian/credcheck/internal/report"
	"github.com/jenian/credcheck/internal/watch"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	rootCmd = &cobra.Command{
		Use:   "credcheck",
		Short: "Print the Slack and OpenAI credentials seen by the process",
		Long: "Loads .env into the environment (without overriding variables that are already set) " +
			"and prints SLACK_BOT_TOKEN, SLACK_SIGNING_SECRET and OPENAI_API_KEY.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCheck,
	}

	varsCmd = &cobra.Command{
		Use:   "vars",
		Short: "List the environment variables credcheck reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return credentials.Usage(cmd.OutOrStdout())
		},
	}

	initConfigCmd = &cobra.Command{
		Use:   "init-config",
		Short: "Create a " + config.FileName + " file in the current directory",
		Long:  "Creates a " + config.FileName + " file with the default configuration in the current directory.",
		Args:  cobra.NoArgs,
		RunE:  runInitConfig,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "Print the version number of credcheck",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}

	// Flags
	envFile    string
	jsonOutput bool
	debug      bool
	watchMode  bool
)

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "Additional env file to load after the configured ones")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the credentials in JSON format")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false, "Keep running and print again whenever an env file changes")

	rootCmd.AddCommand(varsCmd)
	rootCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(versionCmd)
}

// checker loads env files into the environment and prints the credentials.
// It is kept across runs in watch mode so reloads can undo the previous one.
type checker struct {
	dir     string
	loader  *envfile.Loader
	applier *envfile.Applier
	out     io.Writer
	json    bool
}

func (c *checker) run() {
	vars, sources := c.loader.Load(c.dir)
	if err := c.applier.Apply(vars, sources); err != nil {
		log.WithFields(log.Fields{"err": err}).Warn("Failed to apply env files")
	}

	creds, err := credentials.Lookup()
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Warn("Failed to read credentials")
		creds = &credentials.Credentials{}
	}

	result := report.Build(creds.Fields(), c.applier.Source)
	log.WithFields(log.Fields{"missing": result.Missing()}).Debug("Checked credentials")

	if err := output.Format(c.out, result, c.json); err != nil {
		log.WithFields(log.Fields{"err": err}).Warn("Failed to print credentials")
	}
}

// runCheck never fails because of the environment: problems are logged to
// stderr and the report is printed anyway.
func runCheck(cmd *cobra.Command, args []string) error {
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(log.WarnLevel)

	dir, err := os.Getwd()
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Warn("Cannot determine working directory")
		dir = "."
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Warn("Failed to load " + config.FileName + ", using defaults")
		cfg = config.Default()
	}
	setupLogging(cfg.LogLevel)

	loader := envfile.NewLoader()
	loader.SetEnvFiles(cfg.EnvFiles)
	loader.SetAutoDetect(cfg.AutoDetect)
	if envFile != "" {
		loader.AddEnvFile(envFile)
	}

	c := &checker{
		dir:     dir,
		loader:  loader,
		applier: envfile.NewApplier(),
		out:     cmd.OutOrStdout(),
		json:    jsonOutput,
	}
	c.run()

	if !watchMode {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &watch.Watcher{
		Files:    loader.Files(dir),
		OnChange: c.run,
	}
	if err := w.Run(ctx); err != nil {
		log.WithFields(log.Fields{"err": err}).Warn("Watch mode stopped")
	}
	return nil
}

func setupLogging(level string) {
	if debug {
		log.SetLevel(log.DebugLevel)
		return
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithFields(log.Fields{"level": level}).Warn("Unknown log level, using warn")
		lvl = log.WarnLevel
	}
	log.SetLevel(lvl)
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}

	if _, err := config.WriteTemplate(dir); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s in the current directory\n", config.FileName)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
