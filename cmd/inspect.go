package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jsphweid/makampitch/file"
	"github.com/jsphweid/makampitch/midi"
	"github.com/jsphweid/makampitch/util"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <contours.json|melody.mid>",
	Short: "Inspects a contour set or an exported melody",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if ext := strings.ToLower(filepath.Ext(path)); ext == ".mid" || ext == ".midi" {
			return inspectMelody(cmd.OutOrStdout(), path)
		}
		return inspectContours(cmd.OutOrStdout(), path)
	},
}

func inspectContours(w io.Writer, path string) error {
	set, err := file.ReadContourSet(path)
	if err != nil {
		return err
	}
	ex := newExtractor()
	numFrames, err := ex.NumFrames(set.Duration)
	if err != nil {
		return err
	}
	contours := ex.Contours(set, numFrames)

	lengths := make([]int, len(contours))
	var rows [][]string
	for i, c := range contours {
		lengths[i] = c.Len()
		rows = append(rows, []string{
			fmt.Sprint(i),
			fmt.Sprint(c.StartFrame),
			fmt.Sprint(c.Len()),
			fmt.Sprintf("%.2f", stat.Mean(c.Values, nil)),
			fmt.Sprintf("%.4f", stat.Mean(c.Saliences, nil)),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"contour", "start frame", "frames", "mean bin", "mean salience"}, rows))
	fmt.Fprintf(w, "duration: %.3fs, track frames: %v, contour frames: %v\n",
		set.Duration, numFrames, util.Sum(lengths))
	return nil
}

func inspectMelody(w io.Writer, path string) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	var rows [][]string
	for _, n := range midi.ReadMelody(s) {
		rows = append(rows, []string{
			fmt.Sprint(n.Key),
			fmt.Sprintf("%.3f", n.Start),
			fmt.Sprintf("%.3f", n.End),
			fmt.Sprint(n.Velocity),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"key", "start", "end", "velocity"}, rows))
	return nil
}
