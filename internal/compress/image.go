package compress

import (
	"bytes"

	"github.com/disintegration/imaging"

	"github.com/connectsphere/media-pipeline/internal/domain"

	// Registers the WebP decoder so imaging.Decode handles image/webp parts.
	_ "golang.org/x/image/webp"
)

// compressImage fits the image into the policy bounding box (never upscaling)
// and re-encodes it as JPEG at the policy quality. On decode or encode failure
// the original bytes are kept.
func (e *Engine) compressImage(rec *domain.FileRecord) {
	policy := e.policies.Image

	img, err := imaging.Decode(bytes.NewReader(rec.Bytes), imaging.AutoOrientation(true))
	if err != nil {
		e.logger.Warn("image decode failed, storing original", "file", rec.OriginalName, "error", err)
		return
	}

	bounds := img.Bounds()
	if bounds.Dx() > policy.MaxWidth || bounds.Dy() > policy.MaxHeight {
		img = imaging.Fit(img, policy.MaxWidth, policy.MaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(policy.Quality)); err != nil {
		e.logger.Warn("image encode failed, storing original", "file", rec.OriginalName, "error", err)
		return
	}

	rec.Bytes = buf.Bytes()
	rec.MimeType = "image/jpeg"
	rec.SizeBytes = int64(buf.Len())
}
