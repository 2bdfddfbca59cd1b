// internal/domain/token/entity.go
package token

import (
	"strings"
)

// ============================================================
// Types
// ============================================================

// Asset is the raw image the user selected for the token.
// バイナリ本体とメタ情報だけを持つ（URL はアップロード後に決まる）。
type Asset struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"` // MIME, e.g. "image/png"
	Data        []byte `json:"-"`
}

// SocialLinks mirrors the advanced-settings block of the form.
type SocialLinks struct {
	Website  string `json:"website,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Discord  string `json:"discord,omitempty"`
}

// CreationRequest is the accumulating user input for one new fungible token.
//
// NOTE:
// - FreezeAuthority: true = authority retained (default), false = revoked
// - Immutable: true = update authority revoked, false = mutable (default)
//
// フリーズ権限は「保持しない」ときに revoke 料金がかかる（フラグと料金の
// 向きが逆）。ここの極性を反転してはいけない。
type CreationRequest struct {
	// Basic & Visuals
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Decimals      int    `json:"decimals"` // 0–18
	InitialSupply uint64 `json:"initialSupply"`
	Description   string `json:"description,omitempty"`
	Image         *Asset `json:"image,omitempty"`

	// Advanced
	Social         SocialLinks `json:"social"`
	Tags           []string    `json:"tags,omitempty"`
	CreatorAddress string      `json:"creatorAddress,omitempty"`

	// Authorities
	RevokeMint      bool `json:"revokeMint"`
	FreezeAuthority bool `json:"freezeAuthority"`
	Immutable       bool `json:"immutable"`
}

// Defaults from the original form state.
const (
	DefaultDecimals      = 9
	DefaultInitialSupply = uint64(1_000_000)

	MinDecimals = 0
	MaxDecimals = 18
)

// NewRequest returns a request populated with the wizard defaults.
func NewRequest() CreationRequest {
	return CreationRequest{
		Decimals:        DefaultDecimals,
		InitialSupply:   DefaultInitialSupply,
		FreezeAuthority: true, // authority retained
		Immutable:       false,
	}
}

// ============================================================
// Patch (partial update)
// ============================================================

// Patch is a partial update merged into a live request field-by-field.
// nil フィールドは「変更なし」。
type Patch struct {
	Name          *string
	Symbol        *string
	Decimals      *int
	InitialSupply *uint64
	Description   *string
	Image         *Asset

	Website  *string
	Twitter  *string
	Telegram *string
	Discord  *string

	Tags           *[]string
	CreatorAddress *string

	RevokeMint      *bool
	FreezeAuthority *bool
	Immutable       *bool
}

// Apply merges p into r in place.
func (r *CreationRequest) Apply(p Patch) {
	if r == nil {
		return
	}
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Symbol != nil {
		r.Symbol = *p.Symbol
	}
	if p.Decimals != nil {
		r.Decimals = *p.Decimals
	}
	if p.InitialSupply != nil {
		r.InitialSupply = *p.InitialSupply
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Image != nil {
		img := *p.Image
		r.Image = &img
	}
	if p.Website != nil {
		r.Social.Website = strings.TrimSpace(*p.Website)
	}
	if p.Twitter != nil {
		r.Social.Twitter = strings.TrimSpace(*p.Twitter)
	}
	if p.Telegram != nil {
		r.Social.Telegram = strings.TrimSpace(*p.Telegram)
	}
	if p.Discord != nil {
		r.Social.Discord = strings.TrimSpace(*p.Discord)
	}
	if p.Tags != nil {
		r.Tags = NormalizeTags(*p.Tags)
	}
	if p.CreatorAddress != nil {
		r.CreatorAddress = strings.TrimSpace(*p.CreatorAddress)
	}
	if p.RevokeMint != nil {
		r.RevokeMint = *p.RevokeMint
	}
	if p.FreezeAuthority != nil {
		r.FreezeAuthority = *p.FreezeAuthority
	}
	if p.Immutable != nil {
		r.Immutable = *p.Immutable
	}
}

// Clone returns a deep copy used as the run snapshot.
// 実行中の run がライブ編集の影響を受けないよう、必ず値コピーで渡す。
func (r CreationRequest) Clone() CreationRequest {
	out := r
	if r.Image != nil {
		img := *r.Image
		if r.Image.Data != nil {
			img.Data = append([]byte(nil), r.Image.Data...)
		}
		out.Image = &img
	}
	if r.Tags != nil {
		out.Tags = append([]string(nil), r.Tags...)
	}
	return out
}

// ============================================================
// Validation
// ============================================================

// NormalizeTags trims, drops empties and deduplicates while keeping order.
func NormalizeTags(raw []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ValidateBasic is the BASIC step gate: name, symbol, a positive supply and
// a selected image are required, and decimals must be in range.
func (r CreationRequest) ValidateBasic() error {
	if strings.TrimSpace(r.Name) == "" {
		return WrapValidation("name is required")
	}
	if strings.TrimSpace(r.Symbol) == "" {
		return WrapValidation("symbol is required")
	}
	if r.Decimals < MinDecimals || r.Decimals > MaxDecimals {
		return WrapValidation("decimals must be between 0 and 18")
	}
	if r.InitialSupply == 0 {
		return WrapValidation("initial supply must be greater than zero")
	}
	if r.Image == nil {
		return WrapValidation("image is required")
	}
	return nil
}

// ValidateAdvanced always passes: every advanced field is optional.
func (r CreationRequest) ValidateAdvanced() error {
	return nil
}

// ============================================================
// Result
// ============================================================

// CreationResult is the terminal success tuple of one pipeline run.
type CreationResult struct {
	MintAddress string `json:"mintAddress"`
	Signature   string `json:"signature"`
	MetadataURL string `json:"metadataUrl,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// ============================================================
// Helpers
// ============================================================

// Solana pubkey is 32 bytes base58-encoded; observed length typically 32..44.
const (
	base58MinLen   = 32
	base58MaxLen   = 44
	base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
)

// IsValidBase58Pubkey reports whether s looks like a Solana address.
func IsValidBase58Pubkey(s string) bool {
	if s = strings.TrimSpace(s); s == "" {
		return false
	}
	if len(s) < base58MinLen || len(s) > base58MaxLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(base58Alphabet, rune(s[i])) {
			return false
		}
	}
	return true
}
