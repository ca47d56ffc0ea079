package midi

import (
	"path/filepath"
	"testing"

	"github.com/jsphweid/makampitch/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(hz ...float64) []model.Row {
	res := make([]model.Row, len(hz))
	for i, p := range hz {
		sal := 0.0
		if p > 0 {
			sal = 1
		}
		res[i] = model.Row{float64(i) * 0.5, p, sal}
	}
	return res
}

func TestNotesSegmentsByKey(t *testing.T) {
	notes := Notes(rows(440, 441, 0, 220, 220, 880), 0.5, 1)

	require.Len(t, notes, 3)
	assert.Equal(t, Note{Key: 69, Start: 0, End: 1, Velocity: 127}, notes[0])
	assert.Equal(t, Note{Key: 57, Start: 1.5, End: 2.5, Velocity: 127}, notes[1])
	assert.Equal(t, uint8(81), notes[2].Key)
}

func TestNotesSkipsShortRuns(t *testing.T) {
	notes := Notes(rows(440, 0, 220, 220, 220), 0.5, 2)

	require.Len(t, notes, 1)
	assert.Equal(t, uint8(57), notes[0].Key)
}

func TestMelodyFileReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.pitch.mid")
	res := model.Result{
		Pitch:    rows(440, 440, 0, 0, 220, 220),
		Settings: model.Settings{HopSize: 1, SampleRate: 2},
	}
	require.NoError(t, WriteMelodyFile(path, res, 1))

	s, err := ReadMidiFile(path)
	require.NoError(t, err)

	notes := ReadMelody(s)
	require.Len(t, notes, 2)
	assert.Equal(t, uint8(69), notes[0].Key)
	assert.InDelta(t, 0.0, notes[0].Start, 1e-3)
	assert.InDelta(t, 1.0, notes[0].End, 1e-3)
	assert.Equal(t, uint8(57), notes[1].Key)
	assert.InDelta(t, 2.0, notes[1].Start, 1e-3)
	assert.InDelta(t, 3.0, notes[1].End, 1e-3)
}

func TestReadMidiFileMissing(t *testing.T) {
	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "absent.mid"))
	assert.Error(t, err)
}
