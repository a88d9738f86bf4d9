package cmd

import (
	"bytes"
	"context"
	"os"
	"os/signal"

	"github.com/jsphweid/tunesheet/midi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var playPort int

func init() {
	playCmd.Flags().IntVar(&playPort, "port", -1, "midi out port number, defaults to the config")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Plays a sheet on a midi out port",
	Long:  `Plays a sheet in real time on a midi out port. Interrupt to stop.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port := settings.Port
		if playPort >= 0 {
			port = playPort
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return play(ctx, args[0], port)
	},
}

func play(ctx context.Context, src string, port int) error {
	s, err := compileFile(src)
	if err != nil {
		return err
	}
	mf, err := midi.Render(s.Root, renderOptions())
	if err != nil {
		return err
	}

	// timing is read back from the encoded file
	var buf bytes.Buffer
	if _, err := mf.WriteTo(&buf); err != nil {
		return errors.Wrap(err, "could not encode midi")
	}
	mf, err = midi.ReadMidi(&buf)
	if err != nil {
		return err
	}

	defer gomidi.CloseDriver()
	out, err := gomidi.OutPort(port)
	if err != nil {
		return errors.Wrapf(err, "can't find midi out port %v", port)
	}
	logger.Info("playing", "src", src, "port", out.String())

	err = midi.Play(ctx, out, mf)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
