// internal/application/wizard/wizard.go
package wizard

import (
	"context"
	"log"
	"sync"

	"solanaforge/internal/application/pipeline"
	feedom "solanaforge/internal/domain/fee"
	netdom "solanaforge/internal/domain/network"
	tokendom "solanaforge/internal/domain/token"
	walletdom "solanaforge/internal/domain/wallet"
)

// ============================================================
// Steps
// ============================================================

// Step is the ordinal state of the wizard.
type Step int

const (
	StepBasic Step = iota + 1
	StepAdvanced
	StepReview
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepBasic:
		return "BASIC"
	case StepAdvanced:
		return "ADVANCED"
	case StepReview:
		return "REVIEW"
	case StepSuccess:
		return "SUCCESS"
	default:
		return "UNKNOWN"
	}
}

// ============================================================
// Wizard
// ============================================================

// Wizard owns the in-progress request, the current step and the single
// in-flight pipeline run. 1 インスタンスにつき同時 run は最大 1。
type Wizard struct {
	mu sync.Mutex

	step    Step
	request tokendom.CreationRequest

	table   feedom.Table
	network netdom.Network

	orch    *pipeline.Orchestrator
	session *walletdom.Session
	port    walletdom.SessionPort

	running bool
	run     *pipeline.Run
	result  *tokendom.CreationResult
	lastErr error
}

// New builds a wizard at BASIC with the default request.
func New(
	table feedom.Table,
	network netdom.Network,
	orch *pipeline.Orchestrator,
	session *walletdom.Session,
	port walletdom.SessionPort,
) *Wizard {
	return &Wizard{
		step:    StepBasic,
		request: tokendom.NewRequest(),
		table:   table,
		network: network,
		orch:    orch,
		session: session,
		port:    port,
	}
}

// ============================================================
// Read path（run 中も応答する）
// ============================================================

// Step returns the current wizard step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Request returns a copy of the live request.
func (w *Wizard) Request() tokendom.CreationRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.request.Clone()
}

// Quote recomputes the fee quote for the live request. Derived, not stored.
func (w *Wizard) Quote() feedom.Quote {
	w.mu.Lock()
	defer w.mu.Unlock()
	return feedom.Compute(w.request, w.table)
}

// Result returns the terminal result of the last successful run, if any.
func (w *Wizard) Result() *tokendom.CreationResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// LastError returns the typed failure of the last run, if any.
func (w *Wizard) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Running reports whether a pipeline run is in flight.
func (w *Wizard) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// ============================================================
// Mutations
// ============================================================

// UpdateRequest merges a partial patch into the live request. No-op at
// SUCCESS (terminal until Reset). 編集は snapshot 済みの in-flight run には
// 影響しない。
func (w *Wizard) UpdateRequest(p tokendom.Patch) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepSuccess {
		return
	}
	w.request.Apply(p)
}

// SetRequest replaces the live request wholesale. ヘッドレス呼び出し
// (usecase が 1-shot で wizard を駆動するとき) 用。No-op at SUCCESS or
// while a run is in flight.
func (w *Wizard) SetRequest(req tokendom.CreationRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepSuccess || w.running {
		return
	}
	w.request = req.Clone()
}

// Advance moves to the next step when the current step's gate passes.
// Gate に落ちたら遷移しない（silent）。呼び出し側が UI で弾く前提。
func (w *Wizard) Advance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return false
	}

	switch w.step {
	case StepBasic:
		if err := w.request.ValidateBasic(); err != nil {
			log.Printf("[wizard] advance blocked step=%s reason=%v", w.step, err)
			return false
		}
		w.step = StepAdvanced
		return true
	case StepAdvanced:
		// all advanced fields are optional
		w.step = StepReview
		return true
	default:
		// REVIEW は Submit 経由でのみ進む。SUCCESS は terminal。
		return false
	}
}

// Retreat moves back one step. No-op at BASIC; disallowed while a run is in
// flight.
func (w *Wizard) Retreat() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return false
	}

	switch w.step {
	case StepAdvanced:
		w.step = StepBasic
		return true
	case StepReview:
		w.step = StepAdvanced
		return true
	default:
		return false
	}
}

// Reset clears the live request to defaults, drops any run/result and
// returns to BASIC. In-flight run は破棄できないため reset も拒否する。
func (w *Wizard) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return tokendom.ErrRunInFlight
	}

	w.step = StepBasic
	w.request = tokendom.NewRequest()
	w.run = nil
	w.result = nil
	w.lastErr = nil
	return nil
}

// ============================================================
// Submit
// ============================================================

// Submit runs the creation pipeline from REVIEW. Preconditions (step, wallet
// connection, balance) are checked synchronously before any stage I/O; on a
// pipeline failure the wizard stays at REVIEW with the request intact.
func (w *Wizard) Submit(ctx context.Context) (*tokendom.CreationResult, error) {
	w.mu.Lock()

	if w.running {
		w.mu.Unlock()
		return nil, tokendom.ErrRunInFlight
	}
	if w.step != StepReview {
		w.mu.Unlock()
		return nil, tokendom.WrapValidation("submit is only valid from the review step")
	}
	if w.session == nil || !w.session.Connected {
		w.mu.Unlock()
		return nil, tokendom.ErrWalletNotConnected
	}

	quote := feedom.Compute(w.request, w.table)

	// Balance gate: capability から現在値を引く。取れなければキャッシュ値。
	balance := w.session.Balance
	if w.port != nil {
		if b, err := w.port.Balance(ctx); err == nil {
			balance = b
			w.session.Balance = b
		} else {
			log.Printf("[wizard] balance fetch failed, using cached value=%.4f err=%v", balance, err)
		}
	}
	if balance < quote.Total {
		w.mu.Unlock()
		return nil, tokendom.NewInsufficientBalance(quote.Total, balance)
	}

	// Snapshot を凍結して run 開始。ここから先のライブ編集は影響しない。
	run := &pipeline.Run{
		Snapshot: w.request.Clone(),
		Quote:    quote,
		Network:  w.network,
	}
	w.run = run
	w.running = true
	w.lastErr = nil
	port := w.port
	orch := w.orch
	w.mu.Unlock()

	log.Printf(
		"[wizard] submit start name=%q symbol=%q network=%s total=%.4f",
		run.Snapshot.Name, run.Snapshot.Symbol, run.Network, quote.Total,
	)

	result, err := orch.Execute(ctx, run, port)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = false

	if err != nil {
		// REVIEW に留まり request は編集可能なまま。リトライはユーザー起点。
		w.lastErr = err
		log.Printf("[wizard] submit failed step=%s err=%v", w.step, err)
		return nil, err
	}

	w.result = result
	w.step = StepSuccess
	log.Printf("[wizard] submit ok mintAddress=%s signature=%s", result.MintAddress, result.Signature)
	return result, nil
}
