package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	netdom "solanaforge/internal/domain/network"
	walletdom "solanaforge/internal/domain/wallet"
)

func imageForm(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "coin.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadImage_HTTP(t *testing.T) {
	t.Parallel()

	h := NewUploadHandler(&fakeAssets{url: "https://gateway.irys.xyz/abc"}, &fakeMetadata{})

	body, ct := imageForm(t)
	req := httptest.NewRequest(http.MethodPost, "/api/upload-image", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var res map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "https://gateway.irys.xyz/abc", res["url"])
}

// store 側の失敗は 502 に落とす（上流ストレージ起因のため）。
func TestUploadImage_HTTP_StoreFailure(t *testing.T) {
	t.Parallel()

	h := NewUploadHandler(&fakeAssets{err: errors.New("irys 503")}, &fakeMetadata{})

	body, ct := imageForm(t)
	req := httptest.NewRequest(http.MethodPost, "/api/upload-image", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestUploadMetadata_HTTP(t *testing.T) {
	t.Parallel()

	h := NewUploadHandler(&fakeAssets{}, &fakeMetadata{url: "https://gateway.irys.xyz/meta"})

	req := httptest.NewRequest(http.MethodPost, "/api/upload-metadata",
		strings.NewReader(`{"name":"Sol Summer"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var res map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "https://gateway.irys.xyz/meta", res["url"])
}

func TestUploadMetadata_HTTP_EmptyBody(t *testing.T) {
	t.Parallel()

	h := NewUploadHandler(&fakeAssets{}, &fakeMetadata{})

	req := httptest.NewRequest(http.MethodPost, "/api/upload-metadata", strings.NewReader(""))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpload_HTTP_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := NewUploadHandler(&fakeAssets{}, &fakeMetadata{})

	req := httptest.NewRequest(http.MethodGet, "/api/upload-image", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

// ============================================================
// Wallet handler
// ============================================================

type rejectingSession struct {
	fakeSession
}

func (rejectingSession) Connect(context.Context) (string, error) {
	return "", walletdom.ErrUserRejected
}

func TestWalletStatus_HTTP(t *testing.T) {
	t.Parallel()

	h := NewWalletHandler(&fakeSession{address: "addr1", balance: 2.5}, netdom.Devnet)

	req := httptest.NewRequest(http.MethodGet, "/api/wallet", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var res struct {
		Connected bool    `json:"connected"`
		Address   string  `json:"address"`
		Balance   float64 `json:"balance"`
		Network   string  `json:"network"`
		Explorer  string  `json:"explorer"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.True(t, res.Connected)
	require.Equal(t, "addr1", res.Address)
	require.InDelta(t, 2.5, res.Balance, 1e-9)
	require.Equal(t, "devnet", res.Network)
	require.Contains(t, res.Explorer, "explorer.solana.com/address/addr1")
}

func TestWalletConnect_HTTP_UserRejected(t *testing.T) {
	t.Parallel()

	h := NewWalletHandler(&rejectingSession{}, netdom.Devnet)

	req := httptest.NewRequest(http.MethodPost, "/api/wallet/connect", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestWalletDisconnect_HTTP(t *testing.T) {
	t.Parallel()

	h := NewWalletHandler(&fakeSession{address: "addr1"}, netdom.Devnet)

	req := httptest.NewRequest(http.MethodPost, "/api/wallet/disconnect", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"connected":false`)
}
