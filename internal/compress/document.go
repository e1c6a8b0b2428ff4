package compress

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/connectsphere/media-pipeline/internal/domain"
)

// compressDocument rewrites the PDF with duplicate objects removed and
// redundant streams compacted. A malformed document is stored as-is.
func (e *Engine) compressDocument(rec *domain.FileRecord) {
	var buf bytes.Buffer
	if err := api.Optimize(bytes.NewReader(rec.Bytes), &buf, nil); err != nil {
		e.logger.Warn("pdf optimize failed, storing original", "file", rec.OriginalName, "error", err)
		return
	}

	// Optimization occasionally grows pathological documents; keep the
	// smaller of the two.
	if buf.Len() >= len(rec.Bytes) {
		return
	}

	rec.Bytes = buf.Bytes()
	rec.SizeBytes = int64(buf.Len())
}
