package config

const (
	defaultHopSize                   = 128
	defaultFrameSize                 = 2048
	defaultSampleRate                = 44100
	defaultBinResolution             = 7.5
	defaultMinFrequency              = 55
	defaultMaxFrequency              = 1760
	defaultMagnitudeThreshold        = 0
	defaultPeakDistributionThreshold = 1.4
	defaultFilterPitch               = true
	defaultConfidenceThreshold       = 36
	defaultMinChunkSize              = 50
	defaultMaxFrames                 = 1 << 24
	defaultLogFormat                 = "console"
	defaultLogLevel                  = "info"
	defaultServerBind                = "127.0.0.1:8080"
	defaultBatchWorkers              = 4
	defaultOutputFormat              = "json"
	defaultWatchDelayMS              = 500
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Extractor: Extractor{
			HopSize:                   defaultHopSize,
			FrameSize:                 defaultFrameSize,
			SampleRate:                defaultSampleRate,
			BinResolution:             defaultBinResolution,
			MinFrequency:              defaultMinFrequency,
			MaxFrequency:              defaultMaxFrequency,
			MagnitudeThreshold:        defaultMagnitudeThreshold,
			PeakDistributionThreshold: defaultPeakDistributionThreshold,
			FilterPitch:               defaultFilterPitch,
			ConfidenceThreshold:       defaultConfidenceThreshold,
			MinChunkSize:              defaultMinChunkSize,
			MaxFrames:                 defaultMaxFrames,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Server: Server{
			Bind:           defaultServerBind,
			AllowedOrigins: []string{"*"},
		},
		Batch: Batch{
			Workers:      defaultBatchWorkers,
			OutputFormat: defaultOutputFormat,
			WatchDelayMS: defaultWatchDelayMS,
		},
	}
}
