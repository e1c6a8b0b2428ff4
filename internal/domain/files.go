package domain

// FileRecord tracks one uploaded file from acceptance through compression to
// durable storage. Bytes is populated by the acceptor, replaced in place by the
// compression engine, and released by the materializer once StorageKey and
// PublicURL are set.
type FileRecord struct {
	Role         string
	OriginalName string
	MimeType     string
	SizeBytes    int64
	Bytes        []byte
	StorageKey   string
	PublicURL    string
}

// Materialized reports whether the record has been durably written.
func (f *FileRecord) Materialized() bool {
	return f.StorageKey != "" && f.PublicURL != ""
}

// UploadBatch is the ordered set of files accepted for one request.
// Records keep their multipart field name in Role, so a batch built from
// several named groups is still one flat list the orchestrator can walk
// with a single code path.
type UploadBatch struct {
	Files []*FileRecord
}

// ByRole returns the records tagged with the given role, in upload order.
func (b *UploadBatch) ByRole(role string) []*FileRecord {
	var out []*FileRecord
	for _, f := range b.Files {
		if f.Role == role {
			out = append(out, f)
		}
	}
	return out
}
