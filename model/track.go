package model

// Track is the assembled monophonic estimate, one entry per frame.
// Zero pitch means unvoiced.
type Track struct {
	Pitch    []float64
	Salience []float64
}

func NewTrack(numFrames int) Track {
	return Track{
		Pitch:    make([]float64, numFrames),
		Salience: make([]float64, numFrames),
	}
}

func (t Track) Len() int {
	return len(t.Pitch)
}

type Settings struct {
	HopSize                   int     `json:"hopSize"`
	FrameSize                 int     `json:"frameSize"`
	PitchUnit                 string  `json:"pitchUnit"`
	BinResolution             float64 `json:"binResolution"`
	MinFrequency              float64 `json:"minFrequency"`
	MaxFrequency              float64 `json:"maxFrequency"`
	MagnitudeThreshold        float64 `json:"magnitudeThreshold"`
	SampleRate                int     `json:"sampleRate"`
	PeakDistributionThreshold float64 `json:"peakDistributionThreshold"`
	FilterPitch               bool    `json:"filterPitch"`
	ConfidenceThreshold       float64 `json:"confidenceThreshold"`
	MinChunkSize              int     `json:"minChunkSize"`
	Version                   string  `json:"version"`
	Slug                      string  `json:"slug"`
	Citation                  string  `json:"citation"`
	Source                    string  `json:"source,omitempty"`
}

// Row is one frame of output: time (s), pitch (Hz), salience.
type Row = [3]float64

type Result struct {
	Pitch    []Row    `json:"pitch"`
	Settings Settings `json:"settings"`
}
