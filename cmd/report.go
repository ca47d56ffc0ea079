package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/makampitch/file"
	"github.com/jsphweid/makampitch/pitch"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <pitch.json>...",
	Short: "Summarizes extracted pitch tracks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(cmd.OutOrStdout(), args)
	},
}

func report(w io.Writer, paths []string) error {
	var rows [][]string
	for _, path := range paths {
		res, err := file.ReadResult(path)
		if err != nil {
			return err
		}
		_, hz, salience := pitch.Columns(res.Pitch)
		s := pitch.Summarize(hz, salience)
		rows = append(rows, []string{
			path,
			fmt.Sprint(s.Frames),
			fmt.Sprintf("%.1f%%", 100*s.VoicedRatio),
			fmt.Sprint(s.Chunks),
			fmt.Sprintf("%.1f", s.MinHz),
			fmt.Sprintf("%.1f", s.MedianHz),
			fmt.Sprintf("%.1f", s.MaxHz),
			fmt.Sprintf("%.4f", s.MeanSalience),
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"file", "frames", "voiced", "chunks", "min hz", "median hz", "max hz", "mean salience"},
		rows,
	))
	return nil
}
