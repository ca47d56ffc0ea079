package file

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jsphweid/makampitch/constants"
	"github.com/jsphweid/makampitch/model"
)

func DecodeContourSet(r io.Reader) (model.ContourSet, error) {
	var set model.ContourSet
	if err := json.NewDecoder(r).Decode(&set); err != nil {
		return set, fmt.Errorf("could not decode contour set: %w", err)
	}
	return set, nil
}

func ReadContourSet(path string) (model.ContourSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.ContourSet{}, fmt.Errorf("could not open contour set: %w", err)
	}
	defer f.Close()
	return DecodeContourSet(f)
}

func ReadResult(path string) (model.Result, error) {
	var res model.Result
	data, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("could not read pitch file: %w", err)
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return res, fmt.Errorf("could not decode pitch file %v: %w", path, err)
	}
	return res, nil
}

func EncodeJSON(w io.Writer, res model.Result) error {
	return json.NewEncoder(w).Encode(res)
}

// EncodeTSV writes one "time\tpitch\tsalience" line per frame.
func EncodeTSV(w io.Writer, res model.Result) error {
	bw := bufio.NewWriter(w)
	for _, row := range res.Pitch {
		line := strings.Join([]string{
			strconv.FormatFloat(row[0], 'f', 6, 64),
			strconv.FormatFloat(row[1], 'f', 4, 64),
			strconv.FormatFloat(row[2], 'g', -1, 64),
		}, "\t")
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// OutputPath is where the pitch file for the contour set at src goes.
func OutputPath(src, outDir, format string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	suffix := constants.JSONSuffix
	switch format {
	case "tsv":
		suffix = constants.TSVSuffix
	case "midi":
		suffix = constants.MidiSuffix
	}
	return filepath.Join(outDir, base+suffix)
}

// WriteResult writes res to path as json or tsv. MIDI output lives in the
// midi package.
func WriteResult(path string, res model.Result, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %v: %w", path, err)
	}
	defer f.Close()

	switch format {
	case "json", "":
		err = EncodeJSON(f, res)
	case "tsv":
		err = EncodeTSV(f, res)
	default:
		err = fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("write failed for %v: %w", path, err)
	}
	return f.Close()
}
