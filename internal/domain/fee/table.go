// internal/domain/fee/table.go
package fee

// ============================================================
// Price table
// ============================================================
//
// 'OldPrice' is the struck-through reference amount (savings display only),
// 'Price' is the amount actually charged.

type Entry struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	OldPrice float64 `json:"oldPrice"` // SOL, 0 = no pre-discount price
	Price    float64 `json:"price"`    // SOL
}

// Table holds the recognized fee options.
type Table struct {
	Base         Entry `json:"base"`
	RevokeMint   Entry `json:"revokeMint"`
	RevokeFreeze Entry `json:"revokeFreeze"`
	RevokeUpdate Entry `json:"revokeUpdate"`
}

// DefaultTable mirrors the launch pricing.
func DefaultTable() Table {
	return Table{
		Base: Entry{
			ID:       "base",
			Label:    "Token Creation Fee",
			OldPrice: 0.5,
			Price:    0.1,
		},
		RevokeMint: Entry{
			ID:       "revoke_mint",
			Label:    "Revoke Mint Authority",
			OldPrice: 0.2,
			Price:    0.1,
		},
		RevokeFreeze: Entry{
			ID:       "revoke_freeze",
			Label:    "Revoke Freeze Authority",
			OldPrice: 0.2,
			Price:    0.1,
		},
		RevokeUpdate: Entry{
			ID:       "revoke_update",
			Label:    "Revoke Update Authority",
			OldPrice: 0.2,
			Price:    0.1,
		},
	}
}
