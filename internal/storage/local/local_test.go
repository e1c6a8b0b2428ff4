package local

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadWritesUnderNamespace(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080/media/")
	require.NoError(t, err)

	data := []byte("payload")
	err = store.Upload(context.Background(), "profile-pictures/123-456.jpg", bytes.NewReader(data), int64(len(data)), "image/jpeg")
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, "profile-pictures", "123-456.jpg"))
	require.NoError(t, err)
	require.Equal(t, data, written)
}

func TestPublicURLJoinsKey(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080/media/")
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8080/media/videos/1-2.mp4", store.PublicURL("videos/1-2.mp4"))
}

func TestDeleteRemovesObject(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080")
	require.NoError(t, err)

	data := []byte("x")
	require.NoError(t, store.Upload(context.Background(), "uploads/1-1.bin", bytes.NewReader(data), 1, "application/octet-stream"))
	require.NoError(t, store.Delete(context.Background(), "uploads/1-1.bin"))

	_, err = os.Stat(filepath.Join(dir, "uploads", "1-1.bin"))
	require.True(t, os.IsNotExist(err))

	require.Error(t, store.Delete(context.Background(), "uploads/1-1.bin"))
}
