package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"gochat/internal/common"
	"gochat/internal/dbmongo"
)

const maxUploadSize = 64 << 20 // 64 MiB

// Storage is the attachment store the handler serves from.
type Storage interface {
	UploadFile(ctx context.Context, filename, mimeType string, uploaderID uint64, content io.Reader) (*dbmongo.MediaFile, error)
	DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, *dbmongo.MediaFile, error)
}

// Handler serves message attachment upload and download.
type Handler struct {
	storage Storage
}

func NewHandler(storage Storage) *Handler {
	return &Handler{storage: storage}
}

// RegisterUpload mounts POST /upload on an authenticated router.
func (h *Handler) RegisterUpload(r *mux.Router) {
	r.HandleFunc("/upload", h.Upload).Methods(http.MethodPost)
}

// RegisterDownload mounts GET /media/{fileId} on a public router.
func (h *Handler) RegisterDownload(r *mux.Router) {
	r.HandleFunc("/media/{fileId}", h.Download).Methods(http.MethodGet)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "user not authenticated", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	uploaded, err := h.storage.UploadFile(r.Context(), header.Filename, mimeType, userID, file)
	if err != nil {
		log.Printf("upload from user %d: %v", userID, err)
		http.Error(w, "upload failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"file_url": "/media/" + uploaded.ID,
	})
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["fileId"]

	fileReader, mediaFile, err := h.storage.DownloadFile(r.Context(), fileID)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer fileReader.Close()

	w.Header().Set("Content-Type", contentTypeFor(mediaFile.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", mediaFile.Size))

	if _, err := io.Copy(w, fileReader); err != nil {
		log.Printf("streaming file %s: %v", fileID, err)
	}
}

func contentTypeFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".mp3":
		return "audio/mpeg"
	case ".ogg":
		return "audio/ogg"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}
