// Package contour turns overlapping candidate contours into a single
// monophonic track. Contours are chosen longest first; every pick trims the
// remaining candidates to the frames it did not claim.
package contour

import (
	"log/slog"
	"math"

	"github.com/jsphweid/makampitch/logging"
	"github.com/jsphweid/makampitch/model"
)

type Selection struct {
	// Order holds the chosen contours, trimmed, in the order they were picked.
	Order []model.Contour
	Track model.Track

	Iterations int
	Dropped    int
	Clipped    int
}

type Selector struct {
	logger *slog.Logger
}

func NewSelector(logger *slog.Logger) *Selector {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Selector{logger: logger}
}

// NumFrames is the length of the output track for a recording of the given
// duration in seconds. The frame count must fit in an int; callers taking
// untrusted durations bound it first.
func NumFrames(duration, frameRate float64) int {
	n := int(math.Ceil(duration * frameRate))
	if n < 0 {
		return 0
	}
	return n
}

// Select runs the selection with a silent selector and returns the
// assembled pitch and salience arrays.
func Select(contours []model.Contour, duration, frameRate float64) (pitch, salience []float64) {
	sel := NewSelector(nil).Select(contours, NumFrames(duration, frameRate))
	return sel.Track.Pitch, sel.Track.Salience
}

func (s *Selector) Select(contours []model.Contour, numFrames int) Selection {
	var sel Selection
	ws := newWorkingSet(contours)
	for !ws.empty() {
		c := ws.extractLongest()
		sel.Order = append(sel.Order, c)
		sel.Iterations++

		dropped := ws.trimAll(rangeOf(c))
		if dropped > 0 {
			s.logger.Debug("dropped fully overlapped contours",
				slog.Int("count", dropped),
				slog.Int("claimed_start", c.StartFrame),
				slog.Int("claimed_end", c.End()),
			)
		}
		sel.Dropped += dropped
	}

	sel.Track, sel.Clipped = s.assemble(sel.Order, numFrames)
	return sel
}

// assemble writes the contours into a zeroed track in selection order.
// Contours running past the end are clipped.
func (s *Selector) assemble(order []model.Contour, numFrames int) (model.Track, int) {
	track := model.NewTrack(numFrames)
	var clipped int
	for _, c := range order {
		if c.End() <= numFrames {
			copy(track.Pitch[c.StartFrame:c.End()], c.Values)
			copy(track.Salience[c.StartFrame:c.End()], c.Saliences)
			continue
		}

		var usable int
		if c.StartFrame < numFrames {
			usable = numFrames - c.StartFrame
			copy(track.Pitch[c.StartFrame:], c.Values[:usable])
			copy(track.Salience[c.StartFrame:], c.Saliences[:usable])
		}
		clipped++
		s.logger.Info("contour exceeds the audio length, trimming",
			slog.Int("start_frame", c.StartFrame),
			slog.Int("length", c.Len()),
			slog.Int("num_frames", numFrames),
			slog.Int("usable", usable),
		)
	}
	return track, clipped
}
