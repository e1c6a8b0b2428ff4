package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr string

	// Upload limits enforced before any compression or storage work.
	MaxFileBytes       int64
	MaxFilesPerRequest int

	// Video transcoding.
	FFmpegPath         string
	TranscodeTimeout   time.Duration
	VideoSizeThreshold int64

	Storage StorageConfig
}

type StorageConfig struct {
	// Backend selects the object store implementation: "minio" or "local".
	Backend string

	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string

	// Local backend only.
	LocalDir string
}

func Load() (*Config, error) {
	maxFileBytes, err := getEnvInt64("MEDIA_MAX_FILE_BYTES", 20<<20)
	if err != nil {
		return nil, fmt.Errorf("invalid MEDIA_MAX_FILE_BYTES: %w", err)
	}

	maxFiles, err := getEnvInt("MEDIA_MAX_FILES_PER_REQUEST", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid MEDIA_MAX_FILES_PER_REQUEST: %w", err)
	}

	videoThreshold, err := getEnvInt64("MEDIA_VIDEO_SIZE_THRESHOLD", 5<<20)
	if err != nil {
		return nil, fmt.Errorf("invalid MEDIA_VIDEO_SIZE_THRESHOLD: %w", err)
	}

	transcodeTimeout := 2 * time.Minute
	if v := getEnv("MEDIA_TRANSCODE_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MEDIA_TRANSCODE_TIMEOUT: %w", err)
		}
		transcodeTimeout = d
	}

	useSSL, err := strconv.ParseBool(getEnv("STORAGE_USE_SSL", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_USE_SSL: %w", err)
	}

	return &Config{
		HTTPAddr:           getEnv("MEDIA_HTTP_ADDR", ":8080"),
		MaxFileBytes:       maxFileBytes,
		MaxFilesPerRequest: maxFiles,
		FFmpegPath:         getEnv("MEDIA_FFMPEG_PATH", "ffmpeg"),
		TranscodeTimeout:   transcodeTimeout,
		VideoSizeThreshold: videoThreshold,
		Storage: StorageConfig{
			Backend:       getEnv("STORAGE_BACKEND", "minio"),
			Endpoint:      getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:     getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:        getEnv("STORAGE_BUCKET", "media"),
			UseSSL:        useSSL,
			PublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", "http://localhost:9000/media"),
			LocalDir:      getEnv("STORAGE_LOCAL_DIR", "/var/media"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(v)
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.ParseInt(v, 10, 64)
}
