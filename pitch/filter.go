package pitch

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// octaveJump is the frame to frame ratio treated as an octave error.
const octaveJump = 1.9

type Filter interface {
	Apply(hz, salience []float64) []float64
}

// ChunkFilter removes short or weak voiced chunks from a Hertz track. A
// chunk is a run of voiced frames without octave jumps. Chunks shorter than
// MinChunkSize are removed, as are chunks whose mean salience is below the
// best chunk's mean divided by ConfidenceThreshold.
type ChunkFilter struct {
	ConfidenceThreshold float64
	MinChunkSize        int
}

type chunk struct {
	start, end int
}

func splitChunks(hz []float64) []chunk {
	var chunks []chunk
	start := -1
	for i, p := range hz {
		switch {
		case p == 0:
			if start >= 0 {
				chunks = append(chunks, chunk{start, i})
				start = -1
			}
		case start < 0:
			start = i
		default:
			ratio := p / hz[i-1]
			if ratio > octaveJump || ratio < 1/octaveJump {
				chunks = append(chunks, chunk{start, i})
				start = i
			}
		}
	}
	if start >= 0 {
		chunks = append(chunks, chunk{start, len(hz)})
	}
	return chunks
}

func (f ChunkFilter) Apply(hz, salience []float64) []float64 {
	out := append([]float64(nil), hz...)
	chunks := splitChunks(hz)
	if len(chunks) == 0 {
		return out
	}

	confidences := make([]float64, len(chunks))
	for i, c := range chunks {
		confidences[i] = stat.Mean(salience[c.start:c.end], nil)
	}
	minConfidence := 0.0
	if f.ConfidenceThreshold > 0 {
		minConfidence = floats.Max(confidences) / f.ConfidenceThreshold
	}

	for i, c := range chunks {
		if c.end-c.start >= f.MinChunkSize && confidences[i] >= minConfidence {
			continue
		}
		for j := c.start; j < c.end; j++ {
			out[j] = 0
		}
	}
	return out
}
