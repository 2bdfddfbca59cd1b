// internal/infra/solana/token_creator.go
package solana

import (
	"context"
	"fmt"

	"solanaforge/internal/application/pipeline"
	walletdom "solanaforge/internal/domain/wallet"
)

// TokenCreator は pipeline.TransactionSubmitter の実装です。
// descriptor の組み立てまでが builder の責務で、チェーン固有の
// エンコード・署名・送信はウォレット capability に委譲します。
type TokenCreator struct{}

// インターフェース実装チェック
var _ pipeline.TransactionSubmitter = (*TokenCreator)(nil)

func NewTokenCreator() *TokenCreator {
	return &TokenCreator{}
}

// BuildAndSubmit hands the descriptor to the wallet session for signing and
// broadcast, and validates the confirmed result shape.
func (c *TokenCreator) BuildAndSubmit(
	ctx context.Context,
	desc walletdom.UnsignedTxDescriptor,
	session walletdom.SessionPort,
) (walletdom.SubmitResult, error) {
	var empty walletdom.SubmitResult

	if session == nil {
		return empty, walletdom.ErrProviderUnavailable
	}
	if desc.MetadataURL == "" {
		return empty, fmt.Errorf("%w: metadata url is empty", walletdom.ErrSubmission)
	}

	return session.SignAndSubmit(ctx, desc)
}
