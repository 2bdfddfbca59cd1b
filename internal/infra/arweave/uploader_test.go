package arweave

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	tokendom "solanaforge/internal/domain/token"
)

func pngAsset() tokendom.Asset {
	return tokendom.Asset{
		FileName:    "summer.png",
		ContentType: "image/png",
		Data:        []byte{0x89, 0x50, 0x4e, 0x47},
	}
}

// /upload/image に multipart の "image" パートが届くこと、gateway URL が
// そのまま返ることを確認する。
func TestUploadAsset(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload/image", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		require.Equal(t, "summer.png", hdr.Filename)

		data, err := io.ReadAll(f)
		require.NoError(t, err)
		require.Equal(t, pngAsset().Data, data)

		json.NewEncoder(w).Encode(map[string]string{"url": "https://gateway.irys.xyz/abc123"})
	}))
	defer srv.Close()

	u := NewHTTPUploader(srv.URL, "test-key")
	url, err := u.UploadAsset(context.Background(), pngAsset())
	require.NoError(t, err)
	require.Equal(t, "https://gateway.irys.xyz/abc123", url)
}

func TestUploadAsset_EmptyFileNameDefaults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		require.Equal(t, "asset.png", hdr.Filename)
		json.NewEncoder(w).Encode(map[string]string{"url": "https://gateway.irys.xyz/x"})
	}))
	defer srv.Close()

	asset := pngAsset()
	asset.FileName = "  "

	u := NewHTTPUploader(srv.URL, "")
	_, err := u.UploadAsset(context.Background(), asset)
	require.NoError(t, err)
}

func TestUploadAsset_EmptyData(t *testing.T) {
	t.Parallel()

	u := NewHTTPUploader("https://example.invalid", "")
	_, err := u.UploadAsset(context.Background(), tokendom.Asset{FileName: "a.png"})
	require.Error(t, err)
}

func TestUploadAsset_NotConfigured(t *testing.T) {
	t.Parallel()

	u := NewHTTPUploader("", "")
	_, err := u.UploadAsset(context.Background(), pngAsset())
	require.ErrorContains(t, err, "not configured")
}

// /upload/json には呼び出し側のエンコード済み JSON がそのまま届く。
func TestUploadMetadata(t *testing.T) {
	t.Parallel()

	doc := []byte(`{"name":"Sol Summer","symbol":"SUMR"}`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload/json", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Equal(t, doc, body)

		json.NewEncoder(w).Encode(map[string]string{"url": "https://gateway.irys.xyz/meta456"})
	}))
	defer srv.Close()

	u := NewHTTPUploader(srv.URL+"/", "")
	url, err := u.UploadMetadata(context.Background(), doc)
	require.NoError(t, err)
	require.Equal(t, "https://gateway.irys.xyz/meta456", url)
}

// 旧 uploader は {"uri": ...} を返していた。後方互換で読めること。
func TestUploadMetadata_LegacyURIField(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"uri": "https://arweave.net/legacy"})
	}))
	defer srv.Close()

	u := NewHTTPUploader(srv.URL, "")
	url, err := u.UploadMetadata(context.Background(), []byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, "https://arweave.net/legacy", url)
}

func TestUploadMetadata_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bundlr out of funds", http.StatusBadGateway)
	}))
	defer srv.Close()

	u := NewHTTPUploader(srv.URL, "")
	_, err := u.UploadMetadata(context.Background(), []byte(`{}`))
	require.ErrorContains(t, err, "status=502")
}

func TestUploadMetadata_EmptyURLInResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"url": ""})
	}))
	defer srv.Close()

	u := NewHTTPUploader(srv.URL, "")
	_, err := u.UploadMetadata(context.Background(), []byte(`{}`))
	require.ErrorContains(t, err, "empty url")
}
