package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/tunesheet/model"
	"github.com/jsphweid/tunesheet/util"
	"github.com/spf13/cobra"
)

var reportMax int

func init() {
	reportCmd.Flags().IntVar(&reportMax, "max", 0, "maximum number of sheets to read, 0 for all")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <file or dir>",
	Short: "Creates a report",
	Long:  `Compiles one sheet or every sheet below a directory and reports the size of each tune.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := util.GatherSheetPaths(args[0], reportMax)
		if err != nil {
			return err
		}
		return report(os.Stdout, paths)
	},
}

func report(w io.Writer, paths []string) error {
	var events, visits []int
	var failed, deepest int
	for i, path := range paths {
		logger.Debug("compiling", "n", i+1, "of", len(paths), "file", path)
		s, err := compileFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%v: %v\n", path, err)
			continue
		}
		st := model.Collect(s.Root)
		events = append(events, st.Events)
		visits = append(visits, st.Visits)
		deepest = util.Max(deepest, st.MaxDepth)
		fmt.Fprintf(w, "%v: %v entries, %v distinct nodes (%v shared), %v events, %v rests, %v repeated blocks, depth %v\n",
			path, s.Root.Len(), st.Distinct, st.Shared, st.Events, st.Rests, st.Repeated, st.MaxDepth)
	}

	if len(paths) > 1 {
		fmt.Fprintf(w, "%v sheets, %v failed, %v events, %v nodes visited, depth %v\n",
			len(paths), failed, util.Sum(events), util.Sum(visits), deepest)
	}
	if failed > 0 {
		return fmt.Errorf("%v of %v sheets failed to compile", failed, len(paths))
	}
	return nil
}
