package extractor

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/jsphweid/makampitch/config"
	"github.com/jsphweid/makampitch/contour"
	"github.com/jsphweid/makampitch/model"
	"github.com/jsphweid/makampitch/pitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// one frame per 0.25s keeps the numbers readable
func testConfig() config.Extractor {
	cfg := config.Default().Extractor
	cfg.SampleRate = 4
	cfg.HopSize = 1
	cfg.FilterPitch = false
	return cfg
}

func TestStartFrameRounds(t *testing.T) {
	e := New(config.Default().Extractor, nil)

	assert := assert.New(t)
	assert.Equal(0, e.StartFrame(0, 1000))
	assert.Equal(345, e.StartFrame(1, 1000))
	assert.Equal(1, e.StartFrame(0.0015, 1000))
	assert.Equal(1000, e.StartFrame(10, 1000))
	assert.Equal(1000, e.StartFrame(1e17, 1000))

	n, err := e.NumFrames(1)
	require.NoError(t, err)
	assert.Equal(345, n)
}

func TestRunBuildsRows(t *testing.T) {
	set := model.ContourSet{
		Duration: 2.5,
		Contours: []model.RawContour{
			{StartTime: 0, Bins: []float64{160, 160, 160, 160, 160}, Saliences: []float64{1, 1, 1, 1, 1}},
			{StartTime: 0.5, Bins: []float64{320, 320, 320, 320, 320}, Saliences: []float64{2, 2, 2, 2, 2}},
		},
	}

	res, err := New(testConfig(), nil).Run(context.Background(), set, "song.json")
	require.NoError(t, err)
	require.Len(t, res.Pitch, 10)

	_, hz, sal := pitch.Columns(res.Pitch)
	assert := assert.New(t)
	assert.InDeltaSlice([]float64{110, 110, 110, 110, 110, 220, 220, 0, 0, 0}, hz, 1e-9)
	assert.Equal([]float64{1, 1, 1, 1, 1, 2, 2, 0, 0, 0}, sal)
	assert.Equal(0.75, res.Pitch[3][0])

	assert.Equal("Hz", res.Settings.PitchUnit)
	assert.Equal("makampitch", res.Settings.Slug)
	assert.Equal("song.json", res.Settings.Source)
	assert.False(res.Settings.FilterPitch)
}

func TestRunAppliesFilter(t *testing.T) {
	cfg := testConfig()
	cfg.FilterPitch = true
	cfg.MinChunkSize = 3
	cfg.ConfidenceThreshold = 0
	set := model.ContourSet{
		Duration: 2,
		Contours: []model.RawContour{
			{StartTime: 0, Bins: []float64{160, 160, 160}, Saliences: []float64{1, 1, 1}},
			{StartTime: 1.5, Bins: []float64{160, 160}, Saliences: []float64{1, 1}},
		},
	}

	res, err := New(cfg, nil).Run(context.Background(), set, "")
	require.NoError(t, err)

	_, hz, _ := pitch.Columns(res.Pitch)
	assert.InDeltaSlice(t, []float64{110, 110, 110, 0, 0, 0, 0, 0}, hz, 1e-9)
	assert.True(t, res.Settings.FilterPitch)
}

func TestRunRejectsBadContours(t *testing.T) {
	set := model.ContourSet{
		Duration: 1,
		Contours: []model.RawContour{{StartTime: 0, Bins: []float64{1, 2}, Saliences: []float64{1}}},
	}

	_, err := New(testConfig(), nil).Run(context.Background(), set, "bad.json")
	assert.ErrorIs(t, err, model.ErrLengthMismatch)

	set.Contours[0] = model.RawContour{}
	_, err = New(testConfig(), nil).Run(context.Background(), set, "bad.json")
	assert.ErrorIs(t, err, model.ErrEmptyContour)

	set.Contours[0] = model.RawContour{StartTime: math.Inf(1), Bins: []float64{1}, Saliences: []float64{1}}
	_, err = New(testConfig(), nil).Run(context.Background(), set, "bad.json")
	assert.ErrorIs(t, err, model.ErrNotFinite)

	_, err = New(testConfig(), nil).Run(context.Background(), model.ContourSet{Duration: math.NaN()}, "bad.json")
	assert.ErrorIs(t, err, model.ErrNotFinite)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig(), nil).Run(ctx, model.ContourSet{Duration: 1}, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunEmptySet(t *testing.T) {
	res, err := New(testConfig(), nil).Run(context.Background(), model.ContourSet{Duration: 1}, "")
	require.NoError(t, err)

	_, hz, _ := pitch.Columns(res.Pitch)
	assert.Equal(t, []float64{0, 0, 0, 0}, hz)
}

func TestRunIgnoresContoursFarPastTheEnd(t *testing.T) {
	set := model.ContourSet{
		Duration: 1,
		Contours: []model.RawContour{
			{StartTime: 1e17, Bins: []float64{10}, Saliences: []float64{1}},
			{StartTime: 0.25, Bins: []float64{160, 160}, Saliences: []float64{1, 1}},
			{StartTime: 1e300, Bins: []float64{10, 10, 10}, Saliences: []float64{1, 1, 1}},
		},
	}

	res, err := New(testConfig(), nil).Run(context.Background(), set, "")
	require.NoError(t, err)

	_, hz, _ := pitch.Columns(res.Pitch)
	assert.InDeltaSlice(t, []float64{0, 110, 110, 0}, hz, 1e-9)
}

func TestRunRejectsOverlongRecordings(t *testing.T) {
	for name, duration := range map[string]float64{
		"too many frames": 1e12,
		"int overflow":    3e16,
		"float overflow":  1e308,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := New(testConfig(), nil).Run(context.Background(), model.ContourSet{Duration: duration}, "")
			assert.ErrorIs(t, err, ErrTooLong)
		})
	}

	cfg := testConfig()
	cfg.MaxFrames = 10
	_, err := New(cfg, nil).Run(context.Background(), model.ContourSet{Duration: 2.5}, "")
	require.NoError(t, err)
	_, err = New(cfg, nil).Run(context.Background(), model.ContourSet{Duration: 2.75}, "")
	assert.ErrorIs(t, err, ErrTooLong)
}

func TestContoursCapKeepsSelection(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	e := New(testConfig(), nil)
	const numFrames = 20

	for round := 0; round < 200; round++ {
		var set model.ContourSet
		var exact []model.Contour
		n := 1 + r.Intn(10)
		for i := 0; i < n; i++ {
			start := r.Intn(200)
			rc := model.RawContour{StartTime: float64(start) / 4}
			length := 1 + r.Intn(8)
			for j := 0; j < length; j++ {
				rc.Bins = append(rc.Bins, float64(1+r.Intn(400)))
				rc.Saliences = append(rc.Saliences, r.Float64())
			}
			set.Contours = append(set.Contours, rc)
			exact = append(exact, model.Contour{StartFrame: start, Values: rc.Bins, Saliences: rc.Saliences})
		}

		want := contour.NewSelector(nil).Select(exact, numFrames).Track
		got := contour.NewSelector(nil).Select(e.Contours(set, numFrames), numFrames).Track
		require.Equal(t, want, got, "round %d", round)
	}
}
