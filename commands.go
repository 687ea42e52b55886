package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Export the board as a PNG image or a text drawing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		path, err := app.config.GetExportPath(args[0])
		if err != nil {
			return err
		}
		if err := exportBoard(app.board.Notes(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d notes to %s\n", len(app.board.Notes()), path)
		return nil
	},
}

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the notes on the board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		notes := app.board.Notes()
		if listJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(notes)
		}

		out := cmd.OutOrStdout()
		for _, n := range notes {
			pin := ""
			if n.Pinned {
				pin = " [pinned]"
			}
			fmt.Fprintf(out, "%s (%d,%d)%s %s\n", n.ID, n.X, n.Y, pin, n.Preview(40))
		}
		if len(notes) == 0 {
			fmt.Fprintln(os.Stderr, "No notes yet.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
