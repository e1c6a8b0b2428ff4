package pipeline

import "fmt"

// ValidationKind distinguishes the ways a multipart request can be rejected
// before any compression or storage work starts.
type ValidationKind int

const (
	// InvalidType means the sniffed MIME type is not on the field's allow-list.
	InvalidType ValidationKind = iota
	// TooLarge means a single file exceeded the per-file byte cap.
	TooLarge
	// TooMany means a field carried more files than its declared maximum, or
	// the request as a whole exceeded the global file cap.
	TooMany
	// MissingFile means a required field had no file part.
	MissingFile
)

// ValidationError rejects the whole request; no file in the batch is
// processed when any file fails validation.
type ValidationError struct {
	Kind   ValidationKind
	Role   string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("upload validation failed for %q: %s", e.Role, e.Detail)
}

// StorageWriteError is fatal to the batch: the orchestrator stops at the
// failing file and reports this single error for the request.
type StorageWriteError struct {
	Key string
	Err error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("store write for %q failed: %v", e.Key, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}
