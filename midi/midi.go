package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jsphweid/makampitch/model"
	"github.com/jsphweid/makampitch/pitch"
	"github.com/jsphweid/makampitch/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerQuarter = 960
	tempoBPM        = 120
	ticksPerSecond  = ticksPerQuarter * tempoBPM / 60
)

// Note is one melody note, times in seconds.
type Note struct {
	Key      uint8
	Start    float64
	End      float64
	Velocity uint8
}

func toTicks(seconds float64) uint32 {
	return uint32(math.Round(seconds * ticksPerSecond))
}

func velocity(mean, max float64) uint8 {
	if max <= 0 {
		return 64
	}
	return uint8(1 + math.Round(126*util.Min(mean/max, 1)))
}

// Notes segments pitch rows into notes. Consecutive voiced frames rounding
// to the same MIDI key form one note; notes shorter than minFrames frames
// are skipped. frameDur is the hop in seconds.
func Notes(rows []model.Row, frameDur float64, minFrames int) []Note {
	var notes []Note
	_, hz, salience := pitch.Columns(rows)

	var maxSalience float64
	for _, s := range salience {
		maxSalience = math.Max(maxSalience, s)
	}

	flush := func(key int, start, end int) {
		if key < 0 || end-start < minFrames {
			return
		}
		var sum float64
		for _, s := range salience[start:end] {
			sum += s
		}
		notes = append(notes, Note{
			Key:      uint8(key),
			Start:    rows[start][0],
			End:      rows[end-1][0] + frameDur,
			Velocity: velocity(sum/float64(end-start), maxSalience),
		})
	}

	key, start := -1, 0
	for i, p := range hz {
		k := -1
		if p > 0 {
			k = int(math.Round(pitch.HzToMidi(p)))
			if k < 0 || k > 127 {
				k = -1
			}
		}
		if k != key {
			flush(key, start, i)
			key, start = k, i
		}
	}
	flush(key, start, len(hz))
	return notes
}

// WriteMelody writes notes as a single track SMF.
func WriteMelody(w io.Writer, notes []Note) error {
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(tempoBPM))

	var cursor uint32
	for _, n := range notes {
		on, off := toTicks(n.Start), toTicks(n.End)
		if on < cursor {
			on = cursor
		}
		if off <= on {
			off = on + 1
		}
		tr.Add(on-cursor, gomidi.NoteOn(0, n.Key, n.Velocity))
		tr.Add(off-on, gomidi.NoteOff(0, n.Key))
		cursor = off
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	if err := s.Add(tr); err != nil {
		return fmt.Errorf("could not add melody track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("could not write midi: %w", err)
	}
	return nil
}

// WriteMelodyFile writes the melody of res to path.
func WriteMelodyFile(path string, res model.Result, minFrames int) error {
	frameDur := float64(res.Settings.HopSize) / float64(res.Settings.SampleRate)
	var buf bytes.Buffer
	if err := WriteMelody(&buf, Notes(res.Pitch, frameDur, minFrames)); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("error reading midi file... %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("error parsing midi file... %w", err)
	}
	return res, nil
}

// ReadMelody recovers the notes of a melody written by WriteMelody.
func ReadMelody(s *smf.SMF) []Note {
	var notes []Note
	for _, events := range s.Tracks {
		var absTicks int64
		open := map[uint8]Note{}
		for _, event := range events {
			absTicks += int64(event.Delta)
			seconds := float64(s.TimeAt(absTicks)) / 1e6
			var channel, key, vel uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &vel) && vel > 0:
				open[key] = Note{Key: key, Start: seconds, Velocity: vel}
			case event.Message.GetNoteOff(&channel, &key, &vel),
				event.Message.GetNoteOn(&channel, &key, &vel):
				if n, ok := open[key]; ok {
					n.End = seconds
					notes = append(notes, n)
					delete(open, key)
				}
			}
		}
	}
	return notes
}
