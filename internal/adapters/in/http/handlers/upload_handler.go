// internal/adapters/in/http/handlers/upload_handler.go
package handlers

import (
	"io"
	"log"
	"net/http"

	"solanaforge/internal/application/pipeline"
	tokendom "solanaforge/internal/domain/token"
)

// metadata JSON の上限（1MB）。通常は数 KB。
const maxMetadataBytes = 1 << 20

// UploadHandler exposes the two upload stages as standalone endpoints so the
// frontend can pre-upload assets before submitting a creation request.
type UploadHandler struct {
	assets   pipeline.AssetStore
	metadata pipeline.MetadataStore
}

func NewUploadHandler(assets pipeline.AssetStore, metadata pipeline.MetadataStore) http.Handler {
	return &UploadHandler{assets: assets, metadata: metadata}
}

func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/upload-image":
		h.uploadImage(w, r)
		return
	case r.Method == http.MethodPost && r.URL.Path == "/api/upload-metadata":
		h.uploadMetadata(w, r)
		return
	case r.URL.Path == "/api/upload-image" || r.URL.Path == "/api/upload-metadata":
		methodNotAllowed(w)
		return
	default:
		http.NotFound(w, r)
	}
}

// POST /api/upload-image（multipart, field name: "image"）
func (h *UploadHandler) uploadImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.assets == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "asset store is not configured"})
		return
	}

	if err := r.ParseMultipartForm(maxCreateFormBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "image file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read image"})
		return
	}

	url, err := h.assets.UploadAsset(ctx, tokendom.Asset{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		log.Printf("[upload_handler] image upload failed file=%s err=%v", header.Filename, err)
		writeTokenError(w, tokendom.WrapAssetUpload(err))
		return
	}

	log.Printf("[upload_handler] image uploaded file=%s url=%s", header.Filename, url)
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// POST /api/upload-metadata（application/json をそのまま永続化）
func (h *UploadHandler) uploadMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.metadata == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "metadata store is not configured"})
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxMetadataBytes))
	if err != nil || len(raw) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "metadata body is required"})
		return
	}

	url, err := h.metadata.UploadMetadata(ctx, raw)
	if err != nil {
		log.Printf("[upload_handler] metadata upload failed err=%v", err)
		writeTokenError(w, tokendom.WrapMetadataUpload(err))
		return
	}

	log.Printf("[upload_handler] metadata uploaded url=%s", url)
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
