package pitch

import (
	"github.com/jsphweid/makampitch/util"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Frames       int
	Voiced       int
	VoicedRatio  float64
	Chunks       int
	MinHz        float64
	MaxHz        float64
	MedianHz     float64
	MeanSalience float64
}

// Summarize describes the voiced part of a Hertz track.
func Summarize(hz, salience []float64) Summary {
	s := Summary{Frames: len(hz)}
	s.Voiced = util.CountNonZero(hz)
	if s.Voiced == 0 {
		return s
	}
	voiced := util.FilterZeros(hz)

	s.VoicedRatio = float64(s.Voiced) / float64(s.Frames)
	s.Chunks = len(splitChunks(hz))
	s.MinHz = floats.Min(voiced)
	s.MaxHz = floats.Max(voiced)

	sorted := append([]float64(nil), voiced...)
	floats.Argsort(sorted, make([]int, len(sorted)))
	s.MedianHz = stat.Quantile(0.5, stat.Empirical, sorted, nil)

	var voicedSalience []float64
	for i, p := range hz {
		if p != 0 {
			voicedSalience = append(voicedSalience, salience[i])
		}
	}
	s.MeanSalience = stat.Mean(voicedSalience, nil)
	return s
}
