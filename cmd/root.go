package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jsphweid/makampitch/config"
	"github.com/jsphweid/makampitch/constants"
	"github.com/jsphweid/makampitch/logging"
	"github.com/spf13/cobra"
)

var (
	cfg       = config.Default()
	logger    = logging.Discard()
	logCloser io.Closer

	configPath string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "makampitch",
	Short: "Predominant melody from pitch contours",
	Long: `makampitch builds a single pitch track from the candidate pitch contours of a
recording, choosing the longest contours first and trimming the rest.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		return setup(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default $MAKAMPITCH_CONFIG or makampitch.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override logging.format")
}

func setup(cmd *cobra.Command) error {
	path := configPath
	if path == "" {
		path = constants.GetConfigPath()
	}
	loaded, exists, err := config.Load(path)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Logging.Level = logLevel
	}
	if logFormat != "" {
		loaded.Logging.Format = logFormat
	}
	l, closer, err := logging.NewFromConfig(loaded)
	if err != nil {
		return err
	}

	closeLog()
	cfg, logger, logCloser = *loaded, l, closer
	logger.Debug("configuration loaded",
		slog.String("path", path),
		slog.Bool("exists", exists),
		slog.String("command", cmd.Name()),
	)
	return nil
}

// closeLog releases the log files of the current logger.
func closeLog() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	closeLog()
	cobra.CheckErr(err)
}
