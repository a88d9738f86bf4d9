package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/tunesheet/midi"
	"github.com/jsphweid/tunesheet/util"
	"github.com/spf13/cobra"
)

var (
	renderOut   string
	renderNotes int
	renderSeed  int64
)

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file, defaults to a new file in the output dir")
	renderCmd.Flags().IntVar(&renderNotes, "notes", 0, "only keep the first n note on/off messages")
	renderCmd.Flags().Int64Var(&renderSeed, "seed", 0, "seed for random repeats, overrides the config")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Renders a sheet to a midi file",
	Long:  `Renders a sheet to a standard midi file, resolving random repeats.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := render(args[0], renderOut)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func render(src, out string) (string, error) {
	s, err := compileFile(src)
	if err != nil {
		return "", err
	}

	opts := renderOptions()
	if renderSeed != 0 {
		opts.Seed = renderSeed
	}
	mf, err := midi.Render(s.Root, opts)
	if err != nil {
		return "", err
	}
	if renderNotes > 0 {
		mf = midi.Excerpt(mf, renderNotes)
	}

	if out == "" {
		if err := util.EnsureOutputDir(settings.OutDir); err != nil {
			return "", err
		}
		out = filepath.Join(settings.OutDir, uuid.New().String()+".mid")
	}
	if err := midi.WriteMidiFile(out, mf); err != nil {
		return "", err
	}
	logger.Info("rendered sheet", "src", src, "out", out, "notes", len(midi.ReduceEvents(mf))/2)
	return out, nil
}
