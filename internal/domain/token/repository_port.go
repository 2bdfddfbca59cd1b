// internal/domain/token/repository_port.go
package token

import (
	"context"
	"errors"
	"time"
)

// ========================================
// Record（成功 run の永続化用）
// ========================================

// Record is what survives a successful pipeline run. Best-effort persistence:
// 保存失敗は run の成否に影響させない（ログのみ）。
type Record struct {
	MintAddress string    `json:"mintAddress"`
	Signature   string    `json:"signature"`
	Name        string    `json:"name"`
	Symbol      string    `json:"symbol"`
	Decimals    int       `json:"decimals"`
	Supply      uint64    `json:"supply"`
	MetadataURL string    `json:"metadataUrl"`
	ImageURL    string    `json:"imageUrl"`
	Network     string    `json:"network"`
	Creator     string    `json:"creator,omitempty"`
	FeeTotal    float64   `json:"feeTotal"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ========================================
// Repository Port（契約のみ）
// ========================================

type RecordRepositoryPort interface {
	// Create persists a record once. 既存 mintAddress への再登録は ErrConflict。
	Create(ctx context.Context, rec Record) error
	GetByMintAddress(ctx context.Context, mintAddress string) (Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
}

// 共通エラー（契約）
var (
	ErrNotFound = errors.New("token: not found")
	ErrConflict = errors.New("token: conflict")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
