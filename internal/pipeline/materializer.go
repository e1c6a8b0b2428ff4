package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/connectsphere/media-pipeline/internal/domain"
	"github.com/connectsphere/media-pipeline/internal/storage"
)

// materialize writes the record's bytes to the object store under a fresh key
// and records the resulting reference. On success the buffer is released —
// the memory-control invariant that keeps large sequential batches tractable.
func materialize(ctx context.Context, store storage.Store, rec *domain.FileRecord, ns Namespace) error {
	key := objectKey(ns, rec)

	err := store.Upload(ctx, key, bytes.NewReader(rec.Bytes), int64(len(rec.Bytes)), rec.MimeType)
	if err != nil {
		return &StorageWriteError{Key: key, Err: err}
	}

	rec.StorageKey = key
	rec.PublicURL = store.PublicURL(key)
	rec.Bytes = nil
	return nil
}

// objectKey derives a unique key: namespace prefix, a timestamp plus a random
// disambiguator, and an extension matching the stored content type.
func objectKey(ns Namespace, rec *domain.FileRecord) string {
	return fmt.Sprintf("%s%d-%d%s", ns, time.Now().UnixNano(), uuid.New().ID(), extension(rec))
}

func extension(rec *domain.FileRecord) string {
	switch rec.MimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "video/mp4":
		return ".mp4"
	case "video/quicktime":
		return ".mov"
	case "video/webm":
		return ".webm"
	case "application/pdf":
		return ".pdf"
	case "audio/mpeg":
		return ".mp3"
	case "audio/ogg":
		return ".ogg"
	case "audio/wav":
		return ".wav"
	}
	if ext := strings.ToLower(filepath.Ext(rec.OriginalName)); ext != "" {
		return ext
	}
	return ".bin"
}
