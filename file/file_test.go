package file

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/makampitch/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeContourSet(t *testing.T) {
	body := `{"duration": 1.5, "contours": [{"start_time": 0.25, "bins": [10, 11], "saliences": [0.1, 0.2]}]}`

	set, err := DecodeContourSet(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, model.ContourSet{
		Duration: 1.5,
		Contours: []model.RawContour{{StartTime: 0.25, Bins: []float64{10, 11}, Saliences: []float64{0.1, 0.2}}},
	}, set)

	_, err = DecodeContourSet(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestEncodeTSV(t *testing.T) {
	res := model.Result{Pitch: []model.Row{{0, 0, 0}, {0.0029, 110, 0.5}}}

	var buf bytes.Buffer
	require.NoError(t, EncodeTSV(&buf, res))
	assert.Equal(t, "0.000000\t0.0000\t0\n0.002900\t110.0000\t0.5\n", buf.String())
}

func TestOutputPath(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(filepath.Join("out", "song.pitch.json"), OutputPath("in/song.json", "out", "json"))
	assert.Equal(filepath.Join("out", "song.pitch.tsv"), OutputPath("in/song.json", "out", "tsv"))
	assert.Equal(filepath.Join("out", "song.pitch.mid"), OutputPath("song.json", "out", "midi"))
}

func TestWriteResultJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.pitch.json")
	res := model.Result{
		Pitch:    []model.Row{{0, 110, 0.5}},
		Settings: model.Settings{HopSize: 128, Slug: "makampitch"},
	}
	require.NoError(t, WriteResult(path, res, "json"))

	loaded, err := ReadResult(path)
	require.NoError(t, err)
	assert.Equal(t, res, loaded)

	assert.Error(t, WriteResult(path, res, "xml"))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
