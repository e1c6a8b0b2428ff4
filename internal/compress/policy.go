package compress

// ImagePolicy bounds image dimensions and sets the re-encode quality.
// Images are fit into MaxWidth x MaxHeight preserving aspect ratio and are
// never upscaled.
type ImagePolicy struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// VideoPolicy describes the fixed transcode target. SizeThreshold gates the
// transcode entirely: clips at or below it are stored as-is to avoid paying
// ffmpeg startup latency on small files.
type VideoPolicy struct {
	Codec         string
	AudioCodec    string
	CRF           int
	Preset        string
	MaxHeight     int
	MaxBitrate    string
	SizeThreshold int64
}

// Policies is the immutable per-MIME-category configuration, built once at
// startup and passed by reference into the pipeline.
type Policies struct {
	Image ImagePolicy
	Video VideoPolicy
}

func DefaultPolicies() Policies {
	return Policies{
		Image: ImagePolicy{
			MaxWidth:  1200,
			MaxHeight: 1200,
			Quality:   80,
		},
		Video: VideoPolicy{
			Codec:         "libx264",
			AudioCodec:    "aac",
			CRF:           28,
			Preset:        "veryfast",
			MaxHeight:     720,
			MaxBitrate:    "1M",
			SizeThreshold: 5 << 20,
		},
	}
}
