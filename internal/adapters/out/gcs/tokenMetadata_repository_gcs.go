// internal/adapters/out/gcs/tokenMetadata_repository_gcs.go
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
)

// TokenMetadataRepositoryGCS
//   - メタデータ JSON を GCS に保存するためのアダプタ。
//   - pipeline.MetadataStore を満たします（Irys uploader の代替実装）。
type TokenMetadataRepositoryGCS struct {
	Client *storage.Client
	Bucket string
}

// インターフェース実装チェック
var _ pipeline.MetadataStore = (*TokenMetadataRepositoryGCS)(nil)

func NewTokenMetadataRepositoryGCS(client *storage.Client, bucket string) *TokenMetadataRepositoryGCS {
	return &TokenMetadataRepositoryGCS{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
	}
}

// UploadMetadata writes the JSON document under
// "tokens/{unix-nano}/metadata.json" and returns the public object URL.
func (r *TokenMetadataRepositoryGCS) UploadMetadata(ctx context.Context, doc []byte) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("TokenMetadataRepositoryGCS: nil storage client")
	}
	if r.Bucket == "" {
		return "", errors.New("TokenMetadataRepositoryGCS: bucket is empty (set GCS_BUCKET)")
	}
	if len(doc) == 0 {
		return "", errors.New("TokenMetadataRepositoryGCS: metadata is empty")
	}

	objectPath := path.Join("tokens", fmt.Sprintf("%d", time.Now().UnixNano()), "metadata.json")

	w := r.Client.Bucket(r.Bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(doc); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs write: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs close: %w", err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", r.Bucket, objectPath)
	log.Printf("[gcs] metadata uploaded bucket=%s object=%s size=%d", r.Bucket, objectPath, len(doc))
	return url, nil
}
