// Package extractor runs contour selection for one recording and turns the
// assembled track into a time stamped Hertz pitch track.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/jsphweid/makampitch/config"
	"github.com/jsphweid/makampitch/constants"
	"github.com/jsphweid/makampitch/contour"
	"github.com/jsphweid/makampitch/logging"
	"github.com/jsphweid/makampitch/model"
	"github.com/jsphweid/makampitch/pitch"
)

var ErrTooLong = errors.New("recording exceeds extractor.max_frames")

type Extractor struct {
	cfg      config.Extractor
	selector *contour.Selector
	filter   pitch.Filter
	logger   *slog.Logger
}

func New(cfg config.Extractor, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = logging.Discard()
	}
	e := &Extractor{
		cfg:      cfg,
		selector: contour.NewSelector(logger),
		logger:   logger,
	}
	if cfg.FilterPitch {
		e.filter = pitch.ChunkFilter{
			ConfidenceThreshold: cfg.ConfidenceThreshold,
			MinChunkSize:        cfg.MinChunkSize,
		}
	}
	return e
}

// WithFilter replaces the post selection filter. nil disables filtering.
func (e *Extractor) WithFilter(f pitch.Filter) *Extractor {
	e.filter = f
	return e
}

// StartFrame converts a non-negative contour start time in seconds to a
// frame index. Anything at or past limit comes back as limit.
func (e *Extractor) StartFrame(startTime float64, limit int) int {
	f := math.Round(startTime * float64(e.cfg.SampleRate) / float64(e.cfg.HopSize))
	if !(f < float64(limit)) {
		return limit
	}
	return int(f)
}

// NumFrames is the output track length for a recording of duration seconds.
func (e *Extractor) NumFrames(duration float64) (int, error) {
	f := math.Ceil(duration * e.cfg.FrameRate())
	if !(f <= float64(e.cfg.MaxFrames)) {
		return 0, fmt.Errorf("%v seconds is %v frames: %w", duration, f, ErrTooLong)
	}
	return contour.NumFrames(duration, e.cfg.FrameRate()), nil
}

// Contours positions the raw contours on a track of numFrames frames.
//
// Start frames are capped at numFrames plus the total contour length. A chain
// of overlapping contours that starts inside the track ends before that
// point, so capped contours never touch anything that writes to the track.
func (e *Extractor) Contours(set model.ContourSet, numFrames int) []model.Contour {
	var total int
	for _, rc := range set.Contours {
		total += len(rc.Bins)
	}

	res := make([]model.Contour, len(set.Contours))
	for i, rc := range set.Contours {
		res[i] = model.Contour{
			StartFrame: e.StartFrame(rc.StartTime, numFrames+total),
			Values:     rc.Bins,
			Saliences:  rc.Saliences,
		}
	}
	return res
}

func (e *Extractor) Settings(source string) model.Settings {
	return model.Settings{
		HopSize:                   e.cfg.HopSize,
		FrameSize:                 e.cfg.FrameSize,
		PitchUnit:                 constants.PitchUnit,
		BinResolution:             e.cfg.BinResolution,
		MinFrequency:              e.cfg.MinFrequency,
		MaxFrequency:              e.cfg.MaxFrequency,
		MagnitudeThreshold:        e.cfg.MagnitudeThreshold,
		SampleRate:                e.cfg.SampleRate,
		PeakDistributionThreshold: e.cfg.PeakDistributionThreshold,
		FilterPitch:               e.filter != nil,
		ConfidenceThreshold:       e.cfg.ConfidenceThreshold,
		MinChunkSize:              e.cfg.MinChunkSize,
		Version:                   constants.Version,
		Slug:                      constants.Slug,
		Citation:                  constants.Citation,
		Source:                    source,
	}
}

// Run selects contours from set and returns the pitch rows with the
// settings used to make them.
func (e *Extractor) Run(ctx context.Context, set model.ContourSet, source string) (model.Result, error) {
	if err := ctx.Err(); err != nil {
		return model.Result{}, err
	}
	if err := set.Validate(); err != nil {
		return model.Result{}, fmt.Errorf("invalid contour set %v: %w", source, err)
	}

	numFrames, err := e.NumFrames(set.Duration)
	if err != nil {
		return model.Result{}, fmt.Errorf("%v: %w", source, err)
	}
	sel := e.selector.Select(e.Contours(set, numFrames), numFrames)
	e.logger.Debug("contour selection finished",
		slog.String("source", source),
		slog.Int("candidates", len(set.Contours)),
		slog.Int("selected", len(sel.Order)),
		slog.Int("dropped", sel.Dropped),
		slog.Int("clipped", sel.Clipped),
		slog.Int("num_frames", numFrames),
	)

	hz := pitch.BinsToHz(sel.Track.Pitch, e.cfg.BinResolution)
	if e.filter != nil {
		hz = e.filter.Apply(hz, sel.Track.Salience)
	}
	times := pitch.TimeStamps(numFrames, e.cfg.HopSize, e.cfg.SampleRate)

	return model.Result{
		Pitch:    pitch.Rows(times, hz, sel.Track.Salience),
		Settings: e.Settings(source),
	}, nil
}
