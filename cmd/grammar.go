package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/tunesheet/grammar"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(grammarCmd)
}

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Prints the sheet grammar",
	Long:  `Prints the grammar sheets are parsed with, in EBNF.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printGrammar(os.Stdout)
	},
}

func printGrammar(w io.Writer) {
	fmt.Fprintln(w, grammar.EBNF())
}
