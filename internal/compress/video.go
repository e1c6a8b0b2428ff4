package compress

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/connectsphere/media-pipeline/internal/domain"
)

// Runner is the external transcoding boundary. Real deployments shell out to
// ffmpeg; tests substitute a fake to assert invocation counts.
type Runner interface {
	Transcode(ctx context.Context, inputPath, outputPath string, policy VideoPolicy) error
}

// FFmpegRunner invokes the ffmpeg binary with the fixed policy arguments and
// an explicit timeout around the call.
type FFmpegRunner struct {
	Binary  string
	Timeout time.Duration
}

func NewFFmpegRunner(binary string, timeout time.Duration) *FFmpegRunner {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpegRunner{Binary: binary, Timeout: timeout}
}

func (r *FFmpegRunner) Transcode(ctx context.Context, inputPath, outputPath string, policy VideoPolicy) error {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.Binary, transcodeArgs(inputPath, outputPath, policy)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, truncate(out, 512))
	}
	return nil
}

// transcodeArgs builds the fixed argument list for one transcode: H.264 at a
// constant rate factor, height capped without breaking the aspect ratio, a
// bitrate ceiling, and a streaming-friendly moov placement.
func transcodeArgs(inputPath, outputPath string, policy VideoPolicy) []string {
	args := []string{
		"-y",
		"-i", inputPath,
		"-c:v", policy.Codec,
		"-crf", strconv.Itoa(policy.CRF),
		"-preset", policy.Preset,
		"-vf", fmt.Sprintf("scale=-2:'min(%d,ih)'", policy.MaxHeight),
	}
	if policy.MaxBitrate != "" {
		args = append(args, "-maxrate", policy.MaxBitrate, "-bufsize", policy.MaxBitrate)
	}
	args = append(args,
		"-c:a", policy.AudioCodec,
		"-movflags", "+faststart",
		outputPath,
	)
	return args
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}

// compressVideo transcodes clips above the policy size threshold. ffmpeg works
// on files, not buffers, so the record's bytes round-trip through uniquely
// named temp files which are removed on every exit path. Any transcode
// failure keeps the original bytes.
func (e *Engine) compressVideo(ctx context.Context, rec *domain.FileRecord) {
	policy := e.policies.Video
	if int64(len(rec.Bytes)) <= policy.SizeThreshold {
		return
	}

	stamp := uuid.New().String()
	inputPath := filepath.Join(os.TempDir(), "transcode-"+stamp+"-in"+extensionFor(rec))
	outputPath := filepath.Join(os.TempDir(), "transcode-"+stamp+"-out.mp4")
	defer os.Remove(inputPath)
	defer os.Remove(outputPath)

	if err := os.WriteFile(inputPath, rec.Bytes, 0600); err != nil {
		e.logger.Warn("transcode input write failed, storing original", "file", rec.OriginalName, "error", err)
		return
	}

	if err := e.runner.Transcode(ctx, inputPath, outputPath, policy); err != nil {
		e.logger.Warn("transcode failed, storing original", "file", rec.OriginalName, "error", err)
		return
	}

	out, err := os.ReadFile(outputPath)
	if err != nil {
		e.logger.Warn("transcode output read failed, storing original", "file", rec.OriginalName, "error", err)
		return
	}

	rec.Bytes = out
	rec.MimeType = "video/mp4"
	rec.SizeBytes = int64(len(out))
}

func extensionFor(rec *domain.FileRecord) string {
	if ext := filepath.Ext(rec.OriginalName); ext != "" {
		return ext
	}
	return ".mp4"
}
