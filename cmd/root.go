package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/jsphweid/tunesheet/constants"
	"github.com/jsphweid/tunesheet/midi"
	"github.com/jsphweid/tunesheet/sheet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	settings = constants.Defaults()
	logger   = slog.New(slog.NewTextHandler(io.Discard, nil))
	parser   = sheet.NewParser(logger)
)

var rootCmd = &cobra.Command{
	Use:          "tunesheet",
	Short:        "Compiles tune sheets",
	Long:         `Compiles tune sheets into playable tunes, renders them to midi and serves them over http.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger(os.Stderr, verbose)
		s, err := constants.Load(configPath)
		if err != nil {
			return err
		}
		settings = s
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
}

func setupLogger(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	parser = sheet.NewParser(logger)
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func compileFile(path string) (*sheet.Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read sheet")
	}
	return parser.Compile(path, string(data))
}

func renderOptions() midi.Options {
	return midi.Options{
		BPM:        settings.BPM,
		Velocity:   settings.Velocity,
		Channel:    settings.Channel,
		Resolution: settings.Resolution,
		Seed:       settings.Seed,
	}
}
