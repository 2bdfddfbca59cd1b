// internal/domain/wallet/session.go
package wallet

import (
	"context"
	"errors"

	tokendom "solanaforge/internal/domain/token"
)

// ============================================================
// Session state
// ============================================================

// Session is the host-owned wallet state the pipeline reads.
// パイプラインはここを書き換えない（読むだけ + capability 経由の呼び出し）。
type Session struct {
	Connected bool    `json:"connected"`
	Address   string  `json:"address,omitempty"`
	Balance   float64 `json:"balance"` // SOL
}

// Capability errors
var (
	// ErrUserRejected: ユーザーがウォレット側で接続/署名を却下した
	ErrUserRejected = errors.New("wallet: rejected by user")

	// ErrProviderUnavailable: プロバイダが見つからない/初期化できない
	ErrProviderUnavailable = errors.New("wallet: provider unavailable")

	// ErrSubmission: 署名後のネットワーク/検証エラー
	ErrSubmission = errors.New("wallet: submission failed")
)

func IsUserRejected(err error) bool        { return errors.Is(err, ErrUserRejected) }
func IsProviderUnavailable(err error) bool { return errors.Is(err, ErrProviderUnavailable) }
func IsSubmission(err error) bool          { return errors.Is(err, ErrSubmission) }

// ============================================================
// Unsigned transaction descriptor
// ============================================================

// UnsignedTxDescriptor is what the transaction builder hands to the wallet
// for signing and broadcast. The chain-specific encoding lives behind the
// capability implementation, not here.
type UnsignedTxDescriptor struct {
	Network     string                   `json:"network"`
	Request     tokendom.CreationRequest `json:"request"` // frozen snapshot
	MetadataURL string                   `json:"metadataUrl"`
	FeeTotal    float64                  `json:"feeTotal"` // SOL
}

// SubmitResult is the confirmed on-chain outcome.
type SubmitResult struct {
	Signature   string `json:"signature"`
	MintAddress string `json:"mintAddress"`
}

// ============================================================
// Capability port
// ============================================================

// SessionPort is the narrow wallet capability injected into the wizard and
// the orchestrator. Never read from ambient/global state.
type SessionPort interface {
	// Connect prompts the wallet and returns the connected address.
	Connect(ctx context.Context) (string, error)

	// Disconnect drops the connection. Best-effort.
	Disconnect(ctx context.Context) error

	// CheckTrustedConnection is the silent auto-reconnect probe.
	// MUST never prompt the user; returns "" when not trusted.
	CheckTrustedConnection(ctx context.Context) (string, error)

	// Balance returns the current SOL balance of the connected address.
	Balance(ctx context.Context) (float64, error)

	// SignAndSubmit signs the described transaction and broadcasts it.
	// Fails with ErrUserRejected when the user declines, ErrSubmission
	// (wrapped) on anything after signing.
	SignAndSubmit(ctx context.Context, tx UnsignedTxDescriptor) (SubmitResult, error)
}
