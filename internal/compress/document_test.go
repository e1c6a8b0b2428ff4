package compress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/connectsphere/media-pipeline/internal/domain"
)

func TestCompressDocumentFallbackOnMalformedPDF(t *testing.T) {
	engine := testEngine(t, DefaultPolicies(), nil)

	original := []byte("%PDF-1.7 but the rest is garbage")
	rec := &domain.FileRecord{
		OriginalName: "statement.pdf",
		MimeType:     "application/pdf",
		Bytes:        append([]byte(nil), original...),
	}

	engine.Compress(context.Background(), rec)

	require.Equal(t, original, rec.Bytes)
	require.Equal(t, "application/pdf", rec.MimeType)
}

func TestCompressAudioPassesThrough(t *testing.T) {
	engine := testEngine(t, DefaultPolicies(), nil)

	original := []byte("ID3 fake mp3 frames")
	rec := &domain.FileRecord{
		MimeType: "audio/mpeg",
		Bytes:    append([]byte(nil), original...),
	}

	engine.Compress(context.Background(), rec)

	require.Equal(t, original, rec.Bytes)
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		mime string
		want category
	}{
		{"image/jpeg", categoryImage},
		{"image/png", categoryImage},
		{"image/webp", categoryImage},
		{"image/gif", categoryPassThrough},
		{"video/mp4", categoryVideo},
		{"video/quicktime", categoryVideo},
		{"application/pdf", categoryDocument},
		{"audio/mpeg", categoryPassThrough},
		{"application/octet-stream", categoryPassThrough},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, categorize(tc.mime), "mime %s", tc.mime)
	}
}
