// internal/adapters/out/firestore/tokenRecord_repository_fs.go
package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	tokendom "solanaforge/internal/domain/token"
)

// ========================================
// Firestore Repository Implementation
// ========================================

// TokenRecordRepositoryFS persists the result of each successful creation
// run. docId = mintAddress（再実行しても二重登録にならない）。
type TokenRecordRepositoryFS struct {
	Client *firestore.Client
}

func NewTokenRecordRepositoryFS(client *firestore.Client) *TokenRecordRepositoryFS {
	return &TokenRecordRepositoryFS{Client: client}
}

func (r *TokenRecordRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("tokenRecords")
}

// Ensure interface implementation
var _ tokendom.RecordRepositoryPort = (*TokenRecordRepositoryFS)(nil)

// ========================================
// Create
// ========================================

func (r *TokenRecordRepositoryFS) Create(ctx context.Context, rec tokendom.Record) error {
	id := strings.TrimSpace(rec.MintAddress)
	if id == "" {
		return tokendom.ErrConflict
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	if _, err := r.col().Doc(id).Create(ctx, r.domainToDocData(rec)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return tokendom.ErrConflict
		}
		return err
	}
	return nil
}

// ========================================
// GetByMintAddress
// ========================================

func (r *TokenRecordRepositoryFS) GetByMintAddress(ctx context.Context, mintAddress string) (tokendom.Record, error) {
	id := strings.TrimSpace(mintAddress)
	if id == "" {
		return tokendom.Record{}, tokendom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return tokendom.Record{}, tokendom.ErrNotFound
	}
	if err != nil {
		return tokendom.Record{}, err
	}
	return r.docToDomain(snap)
}

// ========================================
// List（新着順）
// ========================================

func (r *TokenRecordRepositoryFS) List(ctx context.Context, limit int) ([]tokendom.Record, error) {
	if limit <= 0 {
		limit = 50
	}

	iter := r.col().OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	out := make([]tokendom.Record, 0, limit)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		rec, derr := r.docToDomain(snap)
		if derr != nil {
			// 変換できないドキュメントはスキップ（ログは docToDomain 側でなく呼び出し側の責務にしない）
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// ========================================
// Mapping
// ========================================

func (r *TokenRecordRepositoryFS) domainToDocData(rec tokendom.Record) map[string]any {
	return map[string]any{
		"mintAddress": rec.MintAddress,
		"signature":   rec.Signature,
		"name":        rec.Name,
		"symbol":      rec.Symbol,
		"decimals":    rec.Decimals,
		"supply":      int64(rec.Supply),
		"metadataUrl": rec.MetadataURL,
		"imageUrl":    rec.ImageURL,
		"network":     rec.Network,
		"creator":     rec.Creator,
		"feeTotal":    rec.FeeTotal,
		"createdAt":   rec.CreatedAt,
	}
}

func (r *TokenRecordRepositoryFS) docToDomain(snap *firestore.DocumentSnapshot) (tokendom.Record, error) {
	var raw struct {
		MintAddress string    `firestore:"mintAddress"`
		Signature   string    `firestore:"signature"`
		Name        string    `firestore:"name"`
		Symbol      string    `firestore:"symbol"`
		Decimals    int       `firestore:"decimals"`
		Supply      int64     `firestore:"supply"`
		MetadataURL string    `firestore:"metadataUrl"`
		ImageURL    string    `firestore:"imageUrl"`
		Network     string    `firestore:"network"`
		Creator     string    `firestore:"creator"`
		FeeTotal    float64   `firestore:"feeTotal"`
		CreatedAt   time.Time `firestore:"createdAt"`
	}
	if err := snap.DataTo(&raw); err != nil {
		return tokendom.Record{}, err
	}

	return tokendom.Record{
		MintAddress: raw.MintAddress,
		Signature:   raw.Signature,
		Name:        raw.Name,
		Symbol:      raw.Symbol,
		Decimals:    raw.Decimals,
		Supply:      uint64(raw.Supply),
		MetadataURL: raw.MetadataURL,
		ImageURL:    raw.ImageURL,
		Network:     raw.Network,
		Creator:     raw.Creator,
		FeeTotal:    raw.FeeTotal,
		CreatedAt:   raw.CreatedAt,
	}, nil
}
