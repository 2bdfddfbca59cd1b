// internal/domain/fee/engine.go
package fee

import (
	"math"

	tokendom "solanaforge/internal/domain/token"
)

// ============================================================
// Fee engine
// ============================================================

// LineItem is one row of the quote breakdown.
type LineItem struct {
	ID            string   `json:"id"`
	Label         string   `json:"label"`
	Price         float64  `json:"price"`
	PreviousPrice *float64 `json:"previousPrice,omitempty"`
}

// Quote is derived, never persisted. Recompute on every request mutation.
type Quote struct {
	LineItems     []LineItem `json:"lineItems"`
	Total         float64    `json:"total"`
	PreviousTotal float64    `json:"previousTotal"`
}

// Compute returns the quote for req against table. Pure, no I/O, never errors.
//
// Line items:
//   - base creation fee, always
//   - revoke mint iff RevokeMint
//   - revoke freeze iff FreezeAuthority is FALSE (not retained = revoked)
//   - revoke update iff Immutable
//
// PreviousTotal falls back to the current price where no OldPrice exists.
func Compute(req tokendom.CreationRequest, table Table) Quote {
	entries := []Entry{table.Base}

	if req.RevokeMint {
		entries = append(entries, table.RevokeMint)
	}
	// ここは極性注意: freezeAuthority=false（権限を保持しない）とき revoke 課金
	if !req.FreezeAuthority {
		entries = append(entries, table.RevokeFreeze)
	}
	if req.Immutable {
		entries = append(entries, table.RevokeUpdate)
	}

	items := make([]LineItem, 0, len(entries))
	total := 0.0
	prevTotal := 0.0
	for _, e := range entries {
		item := LineItem{ID: e.ID, Label: e.Label, Price: e.Price}
		total += e.Price

		if e.OldPrice > 0 {
			old := e.OldPrice
			item.PreviousPrice = &old
			prevTotal += old
		} else {
			prevTotal += e.Price
		}
		items = append(items, item)
	}

	return Quote{
		LineItems:     items,
		Total:         round4(total),
		PreviousTotal: round4(prevTotal),
	}
}

// round4 rounds half-up to 4 decimal places on the SOL unit.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
