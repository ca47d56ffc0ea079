package constants

import "os"

func GetOutputDir() string {
	path := os.Getenv("OUTPUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

// GetContourDir is where batch and watch look for contour sets when no
// directory is given on the command line.
func GetContourDir() string {
	path := os.Getenv("CONTOUR_PATH")
	if path != "" {
		return path
	}
	return "./contours"
}

func GetConfigPath() string {
	path := os.Getenv("MAKAMPITCH_CONFIG")
	if path != "" {
		return path
	}
	return "makampitch.toml"
}

const (
	Version   = "0.6"
	Slug      = "makampitch"
	PitchUnit = "Hz"

	// pitch bins are counted in cents above this frequency
	ReferenceFrequency = 55.0

	Citation = "Atlı, H. S., Uyar, B., Şentürk, S., Bozkurt, B., and Serra, X. (2014). " +
		"Audio feature extraction for exploring Turkish makam music. In Proceedings of 3rd " +
		"International Conference on Audio Technologies for Music and Media, Ankara, Turkey."
)

// suffixes written next to each contour set
const (
	JSONSuffix = ".pitch.json"
	TSVSuffix  = ".pitch.tsv"
	MidiSuffix = ".pitch.mid"
)
