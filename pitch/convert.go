// Package pitch converts an assembled bin track into Hertz, time stamps it,
// and cleans it up afterwards.
package pitch

import (
	"math"

	"github.com/jsphweid/makampitch/constants"
	"github.com/jsphweid/makampitch/model"
)

// BinToHz converts a salience bin to Hertz. Bin 0 is reserved for unvoiced
// frames and maps to 0.
func BinToHz(bin, binResolution float64) float64 {
	if bin == 0 {
		return 0
	}
	return constants.ReferenceFrequency * math.Pow(2, binResolution*bin/1200)
}

func BinsToHz(bins []float64, binResolution float64) []float64 {
	res := make([]float64, len(bins))
	for i, b := range bins {
		res[i] = BinToHz(b, binResolution)
	}
	return res
}

// HzToMidi returns the fractional MIDI note number of hz (A4 = 69).
func HzToMidi(hz float64) float64 {
	return 69 + 12*math.Log2(hz/440)
}

func TimeStamps(n, hopSize, sampleRate int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = float64(i*hopSize) / float64(sampleRate)
	}
	return res
}

// Rows zips the three columns into [time, pitch, salience] rows.
func Rows(times, hz, salience []float64) []model.Row {
	rows := make([]model.Row, len(hz))
	for i := range hz {
		rows[i] = model.Row{times[i], hz[i], salience[i]}
	}
	return rows
}

// Columns splits rows back into time, pitch and salience columns.
func Columns(rows []model.Row) (times, hz, salience []float64) {
	times = make([]float64, len(rows))
	hz = make([]float64, len(rows))
	salience = make([]float64, len(rows))
	for i, r := range rows {
		times[i], hz[i], salience[i] = r[0], r[1], r[2]
	}
	return times, hz, salience
}
