package pipeline

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"

	"github.com/connectsphere/media-pipeline/internal/domain"
)

// Acceptor parses a multipart form into an UploadBatch, enforcing size, count,
// and MIME constraints before any compression or storage work runs. Rejection
// is total: one bad file fails the whole request.
type Acceptor struct {
	maxFileBytes int64
	maxFiles     int
}

func NewAcceptor(maxFileBytes int64, maxFiles int) *Acceptor {
	return &Acceptor{
		maxFileBytes: maxFileBytes,
		maxFiles:     maxFiles,
	}
}

// Accept walks the preset's fields in order, validating every part and
// buffering its bytes. On success the returned batch is a flat ordered list
// with each record tagged by its field role.
func (a *Acceptor) Accept(form *multipart.Form, preset Preset) (*domain.UploadBatch, error) {
	batch := &domain.UploadBatch{}
	total := 0

	for _, field := range preset.Fields {
		headers := form.File[field.Role]

		if len(headers) == 0 {
			if field.Required {
				return nil, &ValidationError{
					Kind:   MissingFile,
					Role:   field.Role,
					Detail: "no file provided",
				}
			}
			continue
		}

		if len(headers) > field.MaxCount {
			return nil, &ValidationError{
				Kind:   TooMany,
				Role:   field.Role,
				Detail: fmt.Sprintf("%d files exceeds limit of %d", len(headers), field.MaxCount),
			}
		}

		total += len(headers)
		if total > a.maxFiles {
			return nil, &ValidationError{
				Kind:   TooMany,
				Role:   field.Role,
				Detail: fmt.Sprintf("request exceeds limit of %d files", a.maxFiles),
			}
		}

		for _, fh := range headers {
			rec, err := a.acceptOne(fh, field)
			if err != nil {
				return nil, err
			}
			batch.Files = append(batch.Files, rec)
		}
	}

	return batch, nil
}

func (a *Acceptor) acceptOne(fh *multipart.FileHeader, field FieldSpec) (*domain.FileRecord, error) {
	if fh.Size > a.maxFileBytes {
		return nil, &ValidationError{
			Kind:   TooLarge,
			Role:   field.Role,
			Detail: fmt.Sprintf("%d bytes exceeds limit of %d", fh.Size, a.maxFileBytes),
		}
	}

	src, err := fh.Open()
	if err != nil {
		return nil, &ValidationError{
			Kind:   InvalidType,
			Role:   field.Role,
			Detail: fmt.Sprintf("unreadable part: %v", err),
		}
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, a.maxFileBytes+1))
	if err != nil {
		return nil, &ValidationError{
			Kind:   InvalidType,
			Role:   field.Role,
			Detail: fmt.Sprintf("unreadable part: %v", err),
		}
	}
	if int64(len(data)) > a.maxFileBytes {
		return nil, &ValidationError{
			Kind:   TooLarge,
			Role:   field.Role,
			Detail: fmt.Sprintf("body exceeds limit of %d bytes", a.maxFileBytes),
		}
	}

	// Sniff the real content type; the declared part header is only a hint
	// and is ignored when the bytes say otherwise.
	detected := mimetype.Detect(data)
	allowed := field.Allowed
	if allowed == nil {
		allowed = globalAllowedMIME
	}
	mimeType, ok := matchAllowed(detected, allowed)
	if !ok {
		return nil, &ValidationError{
			Kind:   InvalidType,
			Role:   field.Role,
			Detail: fmt.Sprintf("type %s is not allowed", detected.String()),
		}
	}

	return &domain.FileRecord{
		Role:         field.Role,
		OriginalName: fh.Filename,
		MimeType:     mimeType,
		SizeBytes:    int64(len(data)),
		Bytes:        data,
	}, nil
}

// matchAllowed returns the canonical allow-list entry the detected type
// matches, so records carry the allow-list's spelling of the MIME type.
func matchAllowed(detected *mimetype.MIME, allowed []string) (string, bool) {
	for _, m := range allowed {
		if detected.Is(m) {
			return m, true
		}
	}
	return "", false
}
