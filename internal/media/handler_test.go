package media

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gochat/internal/common"
	"gochat/internal/dbmongo"
)

// closeRecorder counts Close calls on a download stream.
type closeRecorder struct {
	io.Reader
	closed int
}

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

type fakeStorage struct {
	uploaded    *dbmongo.MediaFile
	uploadErr   error
	stream      *closeRecorder
	file        *dbmongo.MediaFile
	downloadErr error
}

func (f *fakeStorage) UploadFile(_ context.Context, filename, mimeType string, uploaderID uint64, content io.Reader) (*dbmongo.MediaFile, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	io.Copy(io.Discard, content)
	return f.uploaded, nil
}

func (f *fakeStorage) DownloadFile(_ context.Context, fileID string) (io.ReadCloser, *dbmongo.MediaFile, error) {
	if f.downloadErr != nil {
		return nil, nil, f.downloadErr
	}
	return f.stream, f.file, nil
}

func newMediaRouter(storage Storage) *mux.Router {
	router := mux.NewRouter()
	h := NewHandler(storage)
	h.RegisterUpload(router)
	h.RegisterDownload(router)
	return router
}

func TestHandler_Download(t *testing.T) {
	t.Run("streams the file and closes the storage stream", func(t *testing.T) {
		stream := &closeRecorder{Reader: strings.NewReader("file-bytes")}
		storage := &fakeStorage{
			stream: stream,
			file:   &dbmongo.MediaFile{ID: "abc", Filename: "pic.png", Size: 10},
		}
		router := newMediaRouter(storage)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/abc", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, "10", rec.Header().Get("Content-Length"))
		assert.Equal(t, "file-bytes", rec.Body.String())
		assert.Equal(t, 1, stream.closed)
	})

	t.Run("missing file is a 404", func(t *testing.T) {
		router := newMediaRouter(&fakeStorage{downloadErr: assert.AnError})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_Upload(t *testing.T) {
	multipartBody := func(t *testing.T) (*bytes.Buffer, string) {
		t.Helper()
		body := &bytes.Buffer{}
		mw := multipart.NewWriter(body)
		part, err := mw.CreateFormFile("file", "pic.png")
		require.NoError(t, err)
		part.Write([]byte("file-bytes"))
		require.NoError(t, mw.Close())
		return body, mw.FormDataContentType()
	}

	t.Run("returns the media url", func(t *testing.T) {
		storage := &fakeStorage{uploaded: &dbmongo.MediaFile{ID: "abc"}}
		router := newMediaRouter(storage)

		body, contentType := multipartBody(t)
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(context.WithValue(req.Context(), common.CtxUserID, uint64(1)))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "/media/abc", resp["file_url"])
	})

	t.Run("unauthenticated upload is a 401", func(t *testing.T) {
		router := newMediaRouter(&fakeStorage{})

		body, contentType := multipartBody(t)
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing file field is a 400", func(t *testing.T) {
		router := newMediaRouter(&fakeStorage{})

		req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("not multipart"))
		req = req.WithContext(context.WithValue(req.Context(), common.CtxUserID, uint64(1)))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
