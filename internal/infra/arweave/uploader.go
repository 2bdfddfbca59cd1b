// internal/infra/arweave/uploader.go
package arweave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	tokendom "solanaforge/internal/domain/token"
)

// Irys Uploader (Cloud Run) などの HTTP API を叩く実装。
// pipeline.AssetStore と pipeline.MetadataStore の両方を満たす。
type HTTPUploader struct {
	client  *http.Client
	baseURL string // 例: "https://forge-irys-uploader-xxxx.run.app"
	apiKey  string // 認証が必要な場合に使用
}

// NewHTTPUploader は Arweave/Irys 用の HTTP uploader を生成します。
func NewHTTPUploader(baseURL, apiKey string) *HTTPUploader {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")

	return &HTTPUploader{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// UploadAsset は画像バイナリを multipart で /upload/image に送り、
// gateway URL（例: https://gateway.irys.xyz/xxxx）を返します。
func (u *HTTPUploader) UploadAsset(ctx context.Context, asset tokendom.Asset) (string, error) {
	if len(asset.Data) == 0 {
		return "", fmt.Errorf("asset data is empty")
	}
	if u.baseURL == "" {
		return "", fmt.Errorf("baseURL is empty; irys endpoint not configured")
	}

	log.Printf("[arweave] UploadAsset start name=%q size=%d", asset.FileName, len(asset.Data))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fileName := strings.TrimSpace(asset.FileName)
	if fileName == "" {
		fileName = "asset.png"
	}
	fw, err := mw.CreateFormFile("image", fileName)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(asset.Data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/upload/image", &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}

	url, err := u.do(req)
	if err != nil {
		log.Printf("[arweave] UploadAsset FAILED err=%v", err)
		return "", err
	}

	log.Printf("[arweave] UploadAsset OK url=%s", url)
	return url, nil
}

// UploadMetadata は metadata JSON を /upload/json に送り、その URL を返します。
// 呼び出し側がエンコード済みの []byte を渡してくる前提です。
func (u *HTTPUploader) UploadMetadata(ctx context.Context, doc []byte) (string, error) {
	if len(doc) == 0 {
		return "", fmt.Errorf("metadata document is empty")
	}
	if u.baseURL == "" {
		return "", fmt.Errorf("baseURL is empty; irys endpoint not configured")
	}

	log.Printf("[arweave] UploadMetadata start len=%d", len(doc))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/upload/json", bytes.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}

	url, err := u.do(req)
	if err != nil {
		log.Printf("[arweave] UploadMetadata FAILED err=%v", err)
		return "", err
	}

	log.Printf("[arweave] UploadMetadata OK url=%s", url)
	return url, nil
}

// do は upload 系エンドポイント共通のレスポンス処理。
// 期待形: {"url": "https://gateway.irys.xyz/xxxx"}（後方互換で "uri" も許容）
func (u *HTTPUploader) do(req *http.Request) (string, error) {
	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload failed: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var res struct {
		URL string `json:"url"`
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	out := strings.TrimSpace(res.URL)
	if out == "" {
		out = strings.TrimSpace(res.URI)
	}
	if out == "" {
		return "", fmt.Errorf("upload response has empty url")
	}
	return out, nil
}
