// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"

	"fjacquet/pdf-expenses/internal/config"
	"fjacquet/pdf-expenses/internal/container"
	"fjacquet/pdf-expenses/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Log is the shared logger for commands. It is replaced by the
	// container's logger once configuration is loaded.
	Log = logging.GetLogger()

	// AppContainer holds the wired dependencies for the running command.
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "pdf-expenses",
		Short: "A CLI tool to extract expenses from PDF statements and bills.",
		Long: `pdf-expenses extracts candidate expenses from PDF bank statements and bills,
assigns each one a spending category and writes them as CSV.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: initContainer,
	}

	// SharedFlags holds the persistent flags.
	SharedFlags = CommonFlags{}

	// ConfigFile is an explicit configuration file path.
	ConfigFile string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input PDF file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output CSV file (default: stdout)")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate PDF structure before extraction")
	Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Config file (default: ./config.yaml or $HOME/.pdf-expenses/config.yaml)")
}

// Execute runs the root command and releases the container afterwards,
// whether or not the command succeeded.
func Execute(ctx context.Context) error {
	defer Close()
	return Cmd.ExecuteContext(ctx)
}

// Close releases the container's resources. It is safe to call more than once.
func Close() {
	if AppContainer == nil {
		return
	}
	if err := AppContainer.Close(); err != nil {
		Log.WithError(err).Warn("Failed to release resources")
	}
	AppContainer = nil
}

// GetContainer returns the container built for the running command.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the active configuration, or nil before initialization.
func GetConfig() *config.Config {
	if AppContainer == nil {
		return nil
	}
	return AppContainer.GetConfig()
}

func initContainer(cmd *cobra.Command, args []string) error {
	config.LoadEnv(Log)

	cfg, err := config.InitializeConfig(ConfigFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if SharedFlags.Validate {
		cfg.PDF.StrictValidation = true
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	AppContainer = c
	Log = c.GetLogger()
	logging.SetLogger(Log)
	return nil
}
