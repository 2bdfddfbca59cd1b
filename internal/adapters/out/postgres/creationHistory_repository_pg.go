// internal/adapters/out/postgres/creationHistory_repository_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	tokendom "solanaforge/internal/domain/token"
)

// CreationHistoryRepositoryPG implements token.RecordRepositoryPort using
// PostgreSQL. 監査用途: Firestore 側と同じ Record をフラットな行で残す。
type CreationHistoryRepositoryPG struct {
	DB *sql.DB
}

func NewCreationHistoryRepositoryPG(db *sql.DB) *CreationHistoryRepositoryPG {
	return &CreationHistoryRepositoryPG{DB: db}
}

// Ensure interface implementation
var _ tokendom.RecordRepositoryPort = (*CreationHistoryRepositoryPG)(nil)

// CreationHistoryTableDDL defines the SQL for the token_creations migration.
const CreationHistoryTableDDL = `
BEGIN;

CREATE TABLE IF NOT EXISTS token_creations (
  mint_address TEXT        PRIMARY KEY,
  signature    TEXT        NOT NULL,
  name         TEXT        NOT NULL,
  symbol       TEXT        NOT NULL,
  decimals     INT         NOT NULL,
  supply       BIGINT      NOT NULL,
  metadata_url TEXT        NOT NULL,
  image_url    TEXT        NOT NULL DEFAULT '',
  network      TEXT        NOT NULL,
  creator      TEXT        NOT NULL DEFAULT '',
  fee_total    NUMERIC(12,4) NOT NULL DEFAULT 0,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),

  CONSTRAINT chk_token_creations_mint_non_empty CHECK (char_length(trim(mint_address)) > 0),
  CONSTRAINT chk_token_creations_sig_non_empty  CHECK (char_length(trim(signature)) > 0)
);

CREATE INDEX IF NOT EXISTS idx_token_creations_created_at ON token_creations (created_at DESC);

COMMIT;
`

// =======================
// Mutations
// =======================

func (r *CreationHistoryRepositoryPG) Create(ctx context.Context, rec tokendom.Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	const q = `
INSERT INTO token_creations
  (mint_address, signature, name, symbol, decimals, supply,
   metadata_url, image_url, network, creator, fee_total, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
ON CONFLICT (mint_address) DO NOTHING
`
	res, err := r.DB.ExecContext(ctx, q,
		rec.MintAddress, rec.Signature, rec.Name, rec.Symbol, rec.Decimals, int64(rec.Supply),
		rec.MetadataURL, rec.ImageURL, rec.Network, rec.Creator, rec.FeeTotal, rec.CreatedAt,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return tokendom.ErrConflict
	}
	return nil
}

// =======================
// Queries
// =======================

func (r *CreationHistoryRepositoryPG) GetByMintAddress(ctx context.Context, mintAddress string) (tokendom.Record, error) {
	const q = `
SELECT mint_address, signature, name, symbol, decimals, supply,
       metadata_url, image_url, network, creator, fee_total, created_at
FROM token_creations
WHERE mint_address = $1
`
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, q, mintAddress))
	if errors.Is(err, sql.ErrNoRows) {
		return tokendom.Record{}, tokendom.ErrNotFound
	}
	return rec, err
}

func (r *CreationHistoryRepositoryPG) List(ctx context.Context, limit int) ([]tokendom.Record, error) {
	if limit <= 0 {
		limit = 50
	}

	const q = `
SELECT mint_address, signature, name, symbol, decimals, supply,
       metadata_url, image_url, network, creator, fee_total, created_at
FROM token_creations
ORDER BY created_at DESC
LIMIT $1
`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tokendom.Record, 0, limit)
	for rows.Next() {
		rec, serr := scanRecord(rows)
		if serr != nil {
			return nil, serr
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// =======================
// Scan helper
// =======================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (tokendom.Record, error) {
	var rec tokendom.Record
	var supply int64
	err := row.Scan(
		&rec.MintAddress, &rec.Signature, &rec.Name, &rec.Symbol, &rec.Decimals, &supply,
		&rec.MetadataURL, &rec.ImageURL, &rec.Network, &rec.Creator, &rec.FeeTotal, &rec.CreatedAt,
	)
	if err != nil {
		return tokendom.Record{}, err
	}
	rec.Supply = uint64(supply)
	return rec, nil
}
