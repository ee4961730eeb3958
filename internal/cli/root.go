// Package cli holds the command line interface of the backend.
package cli

import (
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the root command with the arguments of the process.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand returns the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "konverty",
		Short:         "Monthly envelope budget that reconciles daily expenses against its checklists",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setup(cmd.ErrOrStderr())
		},
	}

	cmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newReconcileCommand(),
	)

	return cmd
}

// setup loads the .env file and configures gin and the logger.
func setup(output io.Writer) {
	// A missing .env file is fine, the environment is used as is
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: output}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}
