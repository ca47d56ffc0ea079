package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/makampitch/extractor"
	"github.com/jsphweid/makampitch/file"
	"github.com/jsphweid/makampitch/midi"
	"github.com/jsphweid/makampitch/model"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	extractOut      string
	extractFormat   string
	extractNoFilter bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "output file (default stdout)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "json", "output format: json, tsv or midi")
	extractCmd.Flags().BoolVar(&extractNoFilter, "no-filter", false, "skip the pitch filter")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <contours.json>",
	Short: "Extracts the pitch track of one contour set",
	Long:  `Extracts the pitch track of one contour set. Use - to read the contour set from stdin.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := readContourSet(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}

		ex := newExtractor()
		if extractNoFilter {
			ex.WithFilter(nil)
		}
		res, err := ex.Run(cmd.Context(), set, args[0])
		if err != nil {
			return err
		}

		if extractOut != "" {
			return writeOutput(extractOut, res, extractFormat)
		}
		return encodeOutput(cmd.OutOrStdout(), res, extractFormat)
	},
}

func newExtractor() *extractor.Extractor {
	return extractor.New(cfg.Extractor, logger)
}

func readContourSet(stdin io.Reader, path string) (model.ContourSet, error) {
	if path == "-" {
		return file.DecodeContourSet(stdin)
	}
	return file.ReadContourSet(path)
}

func writeOutput(path string, res model.Result, format string) error {
	if format == "midi" {
		return midi.WriteMelodyFile(path, res, cfg.Extractor.MinChunkSize)
	}
	return file.WriteResult(path, res, format)
}

func encodeOutput(w io.Writer, res model.Result, format string) error {
	switch format {
	case "json":
		return file.EncodeJSON(w, res)
	case "tsv":
		return file.EncodeTSV(w, res)
	case "midi":
		if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			return fmt.Errorf("refusing to write midi to the terminal, use --out")
		}
		frameDur := float64(res.Settings.HopSize) / float64(res.Settings.SampleRate)
		return midi.WriteMelody(w, midi.Notes(res.Pitch, frameDur, cfg.Extractor.MinChunkSize))
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
