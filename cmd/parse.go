package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jsphweid/tunesheet/midi"
	"github.com/jsphweid/tunesheet/model"
	"github.com/spf13/cobra"
)

var (
	parseJSON bool
	parseFreq bool
)

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print the tune as JSON")
	parseCmd.Flags().BoolVar(&parseFreq, "freq", false, "print the frequency of every note")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parses a sheet and prints the tune",
	Long:  `Parses a sheet and prints the resulting tune, either as an indented tree or as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := compileFile(args[0])
		if err != nil {
			return err
		}
		if parseJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(s.Root)
		}
		printTree(os.Stdout, s.Root)
		return nil
	},
}

// printTree writes one line per node. A node met again is printed once more
// but its children are not.
func printTree(w io.Writer, root model.Node) {
	seen := make(map[model.Node]bool)
	model.Walk(root, func(n model.Node, depth int) bool {
		indent := strings.Repeat("  ", depth)
		again := seen[n]
		seen[n] = true

		var line string
		switch v := n.(type) {
		case *model.Event:
			line = "event " + v.String()
			if parseFreq {
				line += fmt.Sprintf(" %.2fHz", midi.Frequency(v.Pitch))
			}
		case *model.Rest:
			line = v.String()
		case *model.Sequence:
			line = "sequence"
			if !v.Repeat().IsZero() {
				line += " " + v.Repeat().String()
			}
			if again {
				line += " (shared)"
			}
		}
		fmt.Fprintf(w, "%s%s\n", indent, line)
		return !again
	})
}
