// internal/adapters/out/gcs/tokenAsset_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"solanaforge/internal/application/pipeline"
	tokendom "solanaforge/internal/domain/token"
)

// TokenAssetRepositoryGCS
//   - トークン画像の実体（バイナリ）を GCS に保存するためのアダプタ。
//   - pipeline.AssetStore を満たします（Irys uploader の代替実装）。
//   - バケットは公開前提。表示 URL は storage.googleapis.com 形式で返す。
type TokenAssetRepositoryGCS struct {
	Client *storage.Client
	Bucket string
}

// インターフェース実装チェック
var _ pipeline.AssetStore = (*TokenAssetRepositoryGCS)(nil)

func NewTokenAssetRepositoryGCS(client *storage.Client, bucket string) *TokenAssetRepositoryGCS {
	return &TokenAssetRepositoryGCS{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
	}
}

// UploadAsset writes the asset under "tokens/{unix-nano}/{fileName}" and
// returns the public object URL.
func (r *TokenAssetRepositoryGCS) UploadAsset(ctx context.Context, asset tokendom.Asset) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("TokenAssetRepositoryGCS: nil storage client")
	}
	if r.Bucket == "" {
		return "", errors.New("TokenAssetRepositoryGCS: bucket is empty (set GCS_BUCKET)")
	}
	if len(asset.Data) == 0 {
		return "", errors.New("TokenAssetRepositoryGCS: asset data is empty")
	}

	fileName := strings.TrimSpace(asset.FileName)
	if fileName == "" {
		fileName = "asset.png"
	}
	objectPath := path.Join("tokens", fmt.Sprintf("%d", time.Now().UnixNano()), fileName)

	w := r.Client.Bucket(r.Bucket).Object(objectPath).NewWriter(ctx)
	if ct := strings.TrimSpace(asset.ContentType); ct != "" {
		w.ContentType = ct
	}

	if _, err := w.Write(asset.Data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs write: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs close: %w", err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", r.Bucket, objectPath)
	log.Printf("[gcs] asset uploaded bucket=%s object=%s size=%d", r.Bucket, objectPath, len(asset.Data))
	return url, nil
}
