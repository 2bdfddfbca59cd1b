// cmd/irys/main.go
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"solanaforge/internal/infra/arweave"
)

// Irys アップローダの疎通確認用コマンド。
// デプロイ前に IRYS_BASE_URL が生きているか確かめる。
func main() {
	baseURL := os.Getenv("IRYS_BASE_URL")
	if baseURL == "" {
		log.Fatal("IRYS_BASE_URL is empty")
	}

	u := arweave.NewHTTPUploader(baseURL, os.Getenv("IRYS_API_KEY"))

	payload := map[string]any{
		"hello": "from solanaforge debug",
		"ts":    time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("marshal json: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Printf("[debug-irys] UploadMetadata to %s ...", baseURL)
	uri, err := u.UploadMetadata(ctx, data)
	if err != nil {
		log.Fatalf("UploadMetadata failed: %v", err)
	}

	log.Printf("[debug-irys] OK uri=%s", uri)
}
