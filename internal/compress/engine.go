// Package compress implements the per-MIME-category transforms applied to
// uploaded files before they are written to the object store. Every transform
// is best-effort: a failed decode, encode, or transcode leaves the record's
// original bytes untouched and is never surfaced to the caller.
package compress

import (
	"context"
	"log/slog"
	"strings"

	"github.com/connectsphere/media-pipeline/internal/domain"
)

type category int

const (
	categoryPassThrough category = iota
	categoryImage
	categoryVideo
	categoryDocument
)

// Engine applies the transform selected by a record's MIME type, in place.
type Engine struct {
	policies Policies
	runner   Runner
	logger   *slog.Logger
}

func NewEngine(policies Policies, runner Runner, logger *slog.Logger) *Engine {
	return &Engine{
		policies: policies,
		runner:   runner,
		logger:   logger,
	}
}

// Compress replaces rec.Bytes with the transformed payload. It always leaves
// the record with a valid buffer: on any transform failure the original bytes
// are kept and the failure is only logged.
func (e *Engine) Compress(ctx context.Context, rec *domain.FileRecord) {
	switch categorize(rec.MimeType) {
	case categoryImage:
		e.compressImage(rec)
	case categoryVideo:
		e.compressVideo(ctx, rec)
	case categoryDocument:
		e.compressDocument(rec)
	default:
		// Audio and anything else on the allow-list is stored unmodified.
	}
}

func categorize(mimeType string) category {
	switch {
	case mimeType == "image/gif":
		// Re-encoding would drop animation frames.
		return categoryPassThrough
	case strings.HasPrefix(mimeType, "image/"):
		return categoryImage
	case strings.HasPrefix(mimeType, "video/"):
		return categoryVideo
	case mimeType == "application/pdf":
		return categoryDocument
	default:
		return categoryPassThrough
	}
}
