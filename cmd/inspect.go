package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/tunesheet/model"
	"github.com/jsphweid/tunesheet/sheet"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Lists the declarations of a sheet",
	Long:  `Lists every declared tune of a sheet with its shape and how often the body uses it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := compileFile(args[0])
		if err != nil {
			return err
		}
		inspect(os.Stdout, s)
		return nil
	},
}

func inspect(w io.Writer, s *sheet.Sheet) {
	uses := model.Occurrences(s.Root)

	names := s.Declarations.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "no declarations")
		return
	}
	for _, name := range names {
		n, _ := s.Declarations.Lookup(name)
		st := model.Collect(n)
		fmt.Fprintf(w, "%v: %v, %v events, %v rests, used %v times\n",
			name, n.Kind(), st.Events, st.Rests, uses[n])
	}
}
