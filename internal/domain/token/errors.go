// internal/domain/token/errors.go
package token

import (
	"errors"
	"fmt"
)

// ============================================================
// Error taxonomy
// ============================================================
//
// 1 run の失敗は必ずこのうちのどれか 1 つに畳んで呼び出し側へ返す。
// ステージ内部のエラーを素通しにしない。

var (
	ErrWalletNotConnected   = errors.New("token: wallet not connected")
	ErrInsufficientBalance  = errors.New("token: insufficient balance")
	ErrAssetUploadFailed    = errors.New("token: asset upload failed")
	ErrMetadataUploadFailed = errors.New("token: metadata upload failed")
	ErrSignatureRejected    = errors.New("token: signature rejected by user")
	ErrSubmissionFailed     = errors.New("token: transaction submission failed")
	ErrValidationFailed     = errors.New("token: validation failed")

	// Submit しようとしたが前の run がまだ走っている
	ErrRunInFlight = errors.New("token: a pipeline run is already in flight")
)

// 判定ヘルパー
func IsWalletNotConnected(err error) bool   { return errors.Is(err, ErrWalletNotConnected) }
func IsInsufficientBalance(err error) bool  { return errors.Is(err, ErrInsufficientBalance) }
func IsAssetUploadFailed(err error) bool    { return errors.Is(err, ErrAssetUploadFailed) }
func IsMetadataUploadFailed(err error) bool { return errors.Is(err, ErrMetadataUploadFailed) }
func IsSignatureRejected(err error) bool    { return errors.Is(err, ErrSignatureRejected) }
func IsSubmissionFailed(err error) bool     { return errors.Is(err, ErrSubmissionFailed) }
func IsValidationFailed(err error) bool     { return errors.Is(err, ErrValidationFailed) }

// InsufficientBalanceError carries the required total so the caller can show
// "insufficient funds, need X".
type InsufficientBalanceError struct {
	Required float64 // SOL
	Balance  float64 // SOL
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("token: insufficient balance (need %.4f SOL, have %.4f SOL)", e.Required, e.Balance)
}

// Is lets errors.Is(err, ErrInsufficientBalance) match the typed value.
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// NewInsufficientBalance builds the typed gate failure.
func NewInsufficientBalance(required, balance float64) error {
	return &InsufficientBalanceError{Required: required, Balance: balance}
}

// ラップヘルパー（原因を保持）
func WrapValidation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, msg)
}

func WrapAssetUpload(err error) error {
	if err == nil {
		return ErrAssetUploadFailed
	}
	return fmt.Errorf("%w: %v", ErrAssetUploadFailed, err)
}

func WrapMetadataUpload(err error) error {
	if err == nil {
		return ErrMetadataUploadFailed
	}
	return fmt.Errorf("%w: %v", ErrMetadataUploadFailed, err)
}

func WrapSubmission(err error) error {
	if err == nil {
		return ErrSubmissionFailed
	}
	return fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
}

// ============================================================
// User-facing messages
// ============================================================

// UserMessage maps a typed failure to the short message the UI shows.
// 却下 / 一時障害 / 設定ミスを文言で区別する。
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsWalletNotConnected(err):
		return "Wallet not connected. Please connect your wallet first."
	case IsInsufficientBalance(err):
		var ib *InsufficientBalanceError
		if errors.As(err, &ib) {
			return fmt.Sprintf("Insufficient balance. You need %.4f SOL + gas fees.", ib.Required)
		}
		return "Insufficient balance."
	case IsSignatureRejected(err):
		return "You declined the request in your wallet."
	case IsAssetUploadFailed(err), IsMetadataUploadFailed(err), IsSubmissionFailed(err):
		return "Failed to create token. Please try again."
	case IsValidationFailed(err):
		return "Some fields are missing or invalid."
	default:
		return "Failed to create token. Please try again."
	}
}
