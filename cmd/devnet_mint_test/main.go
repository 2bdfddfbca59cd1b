// cmd/devnet_mint_test/main.go
package main

import (
	"context"
	"log"

	"solanaforge/internal/platform/di"
)

// devnet のサービスウォレットと RPC の疎通確認。
// Cloud Run と同じ Config / Secret Manager 設定を利用する。
func main() {
	ctx := context.Background()

	container, err := di.NewContainer(ctx)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer container.Close()

	if container.Session == nil {
		log.Fatalf("wallet session is nil (service wallet key may not be loaded)")
	}

	address, err := container.Session.Connect(ctx)
	if err != nil {
		log.Fatalf("wallet connect failed: %v", err)
	}

	balance, err := container.Session.Balance(ctx)
	if err != nil {
		log.Fatalf("balance fetch failed: %v", err)
	}

	log.Printf("[devnet-mint-test] OK network=%s address=%s balance=%.4f SOL",
		container.Network, address, balance)
}
