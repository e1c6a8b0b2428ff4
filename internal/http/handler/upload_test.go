package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/connectsphere/media-pipeline/internal/compress"
	"github.com/connectsphere/media-pipeline/internal/pipeline"
	"github.com/connectsphere/media-pipeline/internal/storage/local"
)

type stubRunner struct{ calls int }

func (r *stubRunner) Transcode(ctx context.Context, in, out string, p compress.VideoPolicy) error {
	r.calls++
	return errors.New("no ffmpeg in tests")
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubRunner) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := local.NewLocalStore(t.TempDir(), "http://localhost:8080/media")
	require.NoError(t, err)

	runner := &stubRunner{}
	engine := compress.NewEngine(compress.DefaultPolicies(), runner, logger)
	orchestrator := pipeline.NewOrchestrator(engine, store, logger)
	acceptor := pipeline.NewAcceptor(20<<20, 10)

	router := gin.New()
	uploadHandler := NewUploadHandler(acceptor, orchestrator, logger)
	router.POST("/profile/picture", uploadHandler.Upload("profile"))
	router.POST("/posts/media", uploadHandler.Upload("post"))
	return router, runner
}

func multipartBody(t *testing.T, files map[string][][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for field, payloads := range files {
		for i, data := range payloads {
			fw, err := w.CreateFormFile(field, fmt.Sprintf("%s-%d.bin", field, i))
			require.NoError(t, err)
			_, err = fw.Write(data)
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 32))))
	return buf.Bytes()
}

func TestUploadProfilePicture(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := multipartBody(t, map[string][][]byte{
		"profilePicture": {smallPNG(t)},
	})
	req := httptest.NewRequest(http.MethodPost, "/profile/picture", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Files, 1)
	require.Equal(t, "profilePicture", resp.Files[0].Role)
	require.Regexp(t, `^profile-pictures/`, resp.Files[0].StorageKey)
	require.Regexp(t, `^http://localhost:8080/media/profile-pictures/`, resp.Files[0].URL)
	require.Equal(t, "image/jpeg", resp.Files[0].ContentType)
}

func TestUploadRejectsTooManyPostMedia(t *testing.T) {
	router, _ := newTestRouter(t)

	payloads := make([][]byte, 11)
	for i := range payloads {
		payloads[i] = smallPNG(t)
	}
	body, contentType := multipartBody(t, map[string][][]byte{"media": payloads})
	req := httptest.NewRequest(http.MethodPost, "/posts/media", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "Upload rejected", resp.Error)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := local.NewLocalStore(t.TempDir(), "http://localhost:8080/media")
	require.NoError(t, err)

	engine := compress.NewEngine(compress.DefaultPolicies(), &stubRunner{}, logger)
	orchestrator := pipeline.NewOrchestrator(engine, store, logger)
	acceptor := pipeline.NewAcceptor(64, 10)

	router := gin.New()
	router.POST("/profile/picture", NewUploadHandler(acceptor, orchestrator, logger).Upload("profile"))

	body, contentType := multipartBody(t, map[string][][]byte{
		"profilePicture": {smallPNG(t)},
	})
	req := httptest.NewRequest(http.MethodPost, "/profile/picture", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestUploadRejectsNonMultipartRequest(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/profile/picture", bytes.NewBufferString("not multipart"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}
