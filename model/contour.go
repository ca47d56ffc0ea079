package model

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyContour   = errors.New("contour has no frames")
	ErrLengthMismatch = errors.New("contour values and saliences differ in length")
	ErrNegativeStart  = errors.New("contour starts before frame 0")
	ErrNotFinite      = errors.New("value is not a finite number")
)

// Contour is a candidate melodic fragment covering the frames
// [StartFrame, StartFrame+Len()).
type Contour struct {
	StartFrame int
	Values     []float64
	Saliences  []float64
}

func (c Contour) Len() int {
	return len(c.Values)
}

// End is the first frame after the contour.
func (c Contour) End() int {
	return c.StartFrame + len(c.Values)
}

func (c Contour) Validate() error {
	if c.StartFrame < 0 {
		return fmt.Errorf("start frame %d: %w", c.StartFrame, ErrNegativeStart)
	}
	if len(c.Values) == 0 {
		return ErrEmptyContour
	}
	if len(c.Values) != len(c.Saliences) {
		return fmt.Errorf("%d values, %d saliences: %w", len(c.Values), len(c.Saliences), ErrLengthMismatch)
	}
	return nil
}

// RawContour is a contour as emitted by the tracking stage, positioned in
// seconds rather than frames.
type RawContour struct {
	StartTime float64   `json:"start_time"`
	Bins      []float64 `json:"bins"`
	Saliences []float64 `json:"saliences"`
}

// ContourSet is everything the tracking stage hands over for one recording.
type ContourSet struct {
	Duration float64      `json:"duration"`
	Contours []RawContour `json:"contours"`
}

func (s ContourSet) Validate() error {
	if !finite(s.Duration) {
		return fmt.Errorf("duration: %w", ErrNotFinite)
	}
	if s.Duration < 0 {
		return fmt.Errorf("negative duration %v", s.Duration)
	}
	for i, rc := range s.Contours {
		if !finite(rc.StartTime) {
			return fmt.Errorf("contour %d: start time: %w", i, ErrNotFinite)
		}
		if rc.StartTime < 0 {
			return fmt.Errorf("contour %d: start time %v: %w", i, rc.StartTime, ErrNegativeStart)
		}
		if len(rc.Bins) == 0 {
			return fmt.Errorf("contour %d: %w", i, ErrEmptyContour)
		}
		if len(rc.Bins) != len(rc.Saliences) {
			return fmt.Errorf("contour %d: %d bins, %d saliences: %w", i, len(rc.Bins), len(rc.Saliences), ErrLengthMismatch)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
