package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"solanaforge/internal/application/pipeline"
	feedom "solanaforge/internal/domain/fee"
	netdom "solanaforge/internal/domain/network"
	tokendom "solanaforge/internal/domain/token"
	walletdom "solanaforge/internal/domain/wallet"
)

// ============================================================
// Fakes
// ============================================================

type stubAssets struct {
	url string
	err error
}

func (s *stubAssets) UploadAsset(context.Context, tokendom.Asset) (string, error) {
	return s.url, s.err
}

type stubMetadata struct {
	url string
	err error
}

func (s *stubMetadata) UploadMetadata(context.Context, []byte) (string, error) {
	return s.url, s.err
}

type stubSubmitter struct {
	res walletdom.SubmitResult
	err error
}

func (s *stubSubmitter) BuildAndSubmit(
	_ context.Context,
	_ walletdom.UnsignedTxDescriptor,
	_ walletdom.SessionPort,
) (walletdom.SubmitResult, error) {
	return s.res, s.err
}

// blockingSubmitter parks inside the submit stage until released, so tests
// can observe the wizard mid-run.
type blockingSubmitter struct {
	started chan struct{}
	release chan struct{}
	gotName string
}

func (b *blockingSubmitter) BuildAndSubmit(
	_ context.Context,
	desc walletdom.UnsignedTxDescriptor,
	_ walletdom.SessionPort,
) (walletdom.SubmitResult, error) {
	b.gotName = desc.Request.Name
	close(b.started)
	<-b.release
	return walletdom.SubmitResult{MintAddress: "Mint111", Signature: "Sig111"}, nil
}

type stubPort struct {
	balance    float64
	balanceErr error
}

func (s *stubPort) Connect(context.Context) (string, error)                { return "addr", nil }
func (s *stubPort) Disconnect(context.Context) error                       { return nil }
func (s *stubPort) CheckTrustedConnection(context.Context) (string, error) { return "addr", nil }
func (s *stubPort) Balance(context.Context) (float64, error)               { return s.balance, s.balanceErr }
func (s *stubPort) SignAndSubmit(context.Context, walletdom.UnsignedTxDescriptor) (walletdom.SubmitResult, error) {
	return walletdom.SubmitResult{}, nil
}

type harness struct {
	wizard  *Wizard
	session *walletdom.Session
	assets  *stubAssets
	meta    *stubMetadata
	sub     *stubSubmitter
	port    *stubPort
}

func newHarness() *harness {
	assets := &stubAssets{url: "https://gateway.irys.xyz/img"}
	meta := &stubMetadata{url: "https://gateway.irys.xyz/meta"}
	sub := &stubSubmitter{res: walletdom.SubmitResult{MintAddress: "Mint111", Signature: "Sig111"}}
	port := &stubPort{balance: 10}
	session := &walletdom.Session{Connected: true, Address: "addr", Balance: 10}

	orch := pipeline.NewOrchestrator(assets, meta, sub, netdom.Devnet, nil)
	w := New(feedom.DefaultTable(), netdom.Devnet, orch, session, port)

	return &harness{wizard: w, session: session, assets: assets, meta: meta, sub: sub, port: port}
}

func fillBasic(w *Wizard) {
	name := "Sol Summer"
	symbol := "SUMR"
	img := tokendom.Asset{FileName: "s.png", ContentType: "image/png", Data: []byte{1}}
	w.UpdateRequest(tokendom.Patch{Name: &name, Symbol: &symbol, Image: &img})
}

func toReview(t *testing.T, w *Wizard) {
	t.Helper()
	fillBasic(w)
	require.True(t, w.Advance()) // BASIC -> ADVANCED
	require.True(t, w.Advance()) // ADVANCED -> REVIEW
	require.Equal(t, StepReview, w.Step())
}

// ============================================================
// Step transitions
// ============================================================

func TestAdvance_BasicGate(t *testing.T) {
	t.Parallel()

	h := newHarness()
	// 未入力では進めない
	require.False(t, h.wizard.Advance())
	require.Equal(t, StepBasic, h.wizard.Step())

	fillBasic(h.wizard)
	require.True(t, h.wizard.Advance())
	require.Equal(t, StepAdvanced, h.wizard.Step())
}

func TestAdvance_AdvancedAlwaysPasses(t *testing.T) {
	t.Parallel()

	h := newHarness()
	fillBasic(h.wizard)
	require.True(t, h.wizard.Advance())
	// advanced は全項目 optional
	require.True(t, h.wizard.Advance())
	require.Equal(t, StepReview, h.wizard.Step())

	// REVIEW からは Advance では進まない（Submit 経由のみ）
	require.False(t, h.wizard.Advance())
}

func TestRetreat(t *testing.T) {
	t.Parallel()

	h := newHarness()
	require.False(t, h.wizard.Retreat()) // BASIC では no-op

	toReview(t, h.wizard)
	require.True(t, h.wizard.Retreat())
	require.Equal(t, StepAdvanced, h.wizard.Step())
	require.True(t, h.wizard.Retreat())
	require.Equal(t, StepBasic, h.wizard.Step())

	// 入力は保持される
	require.Equal(t, "Sol Summer", h.wizard.Request().Name)
}

// SetRequest はヘッドレス駆動（usecase 経由の 1-shot）用の一括差し替え。
func TestSetRequest(t *testing.T) {
	t.Parallel()

	h := newHarness()

	req := tokendom.NewRequest()
	req.Name = "Sol Summer"
	req.Symbol = "SUMR"
	req.Image = &tokendom.Asset{FileName: "s.png", ContentType: "image/png", Data: []byte{1}}
	h.wizard.SetRequest(req)

	require.Equal(t, "Sol Summer", h.wizard.Request().Name)
	require.True(t, h.wizard.Advance())

	// snapshot isolation: 呼び出し側がデータを書き換えても wizard 側には響かない
	req.Image.Data[0] = 9
	require.Equal(t, byte(1), h.wizard.Request().Image.Data[0])

	// SUCCESS では no-op
	require.True(t, h.wizard.Advance())
	_, err := h.wizard.Submit(context.Background())
	require.NoError(t, err)
	other := tokendom.NewRequest()
	h.wizard.SetRequest(other)
	require.Equal(t, "Sol Summer", h.wizard.Request().Name)
}

func TestQuote_TracksRequest(t *testing.T) {
	t.Parallel()

	h := newHarness()
	require.InDelta(t, 0.1, h.wizard.Quote().Total, 1e-9)

	on := true
	off := false
	h.wizard.UpdateRequest(tokendom.Patch{RevokeMint: &on, FreezeAuthority: &off, Immutable: &on})
	require.InDelta(t, 0.4, h.wizard.Quote().Total, 1e-9)
}

// ============================================================
// Submit gates
// ============================================================

func TestSubmit_OnlyFromReview(t *testing.T) {
	t.Parallel()

	h := newHarness()
	_, err := h.wizard.Submit(context.Background())
	require.True(t, tokendom.IsValidationFailed(err))
}

func TestSubmit_WalletNotConnected(t *testing.T) {
	t.Parallel()

	h := newHarness()
	toReview(t, h.wizard)
	h.session.Connected = false

	_, err := h.wizard.Submit(context.Background())
	require.True(t, tokendom.IsWalletNotConnected(err))
}

func TestSubmit_InsufficientBalance(t *testing.T) {
	t.Parallel()

	h := newHarness()
	toReview(t, h.wizard)
	h.port.balance = 0.05 // quote total は 0.1

	_, err := h.wizard.Submit(context.Background())
	require.True(t, tokendom.IsInsufficientBalance(err))

	var ib *tokendom.InsufficientBalanceError
	require.True(t, errors.As(err, &ib))
	require.InDelta(t, 0.1, ib.Required, 1e-9)
	require.InDelta(t, 0.05, ib.Balance, 1e-9)

	// gate 失敗では REVIEW に留まる
	require.Equal(t, StepReview, h.wizard.Step())
}

// RPC が落ちているときはキャッシュ残高で判定を続行する。
func TestSubmit_BalanceFallsBackToCached(t *testing.T) {
	t.Parallel()

	h := newHarness()
	toReview(t, h.wizard)
	h.port.balanceErr = errors.New("rpc down")
	h.session.Balance = 0.01

	_, err := h.wizard.Submit(context.Background())
	require.True(t, tokendom.IsInsufficientBalance(err))
}

// ============================================================
// Submit runs
// ============================================================

func TestSubmit_Success(t *testing.T) {
	t.Parallel()

	h := newHarness()
	toReview(t, h.wizard)

	res, err := h.wizard.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Mint111", res.MintAddress)
	require.Equal(t, "Sig111", res.Signature)

	require.Equal(t, StepSuccess, h.wizard.Step())
	require.NotNil(t, h.wizard.Result())
	require.NoError(t, h.wizard.LastError())
	require.False(t, h.wizard.Running())
}

func TestSubmit_FailureStaysAtReviewThenRetrySucceeds(t *testing.T) {
	t.Parallel()

	h := newHarness()
	toReview(t, h.wizard)
	h.assets.err = errors.New("irys 503")

	_, err := h.wizard.Submit(context.Background())
	require.True(t, tokendom.IsAssetUploadFailed(err))
	require.Equal(t, StepReview, h.wizard.Step())
	require.True(t, tokendom.IsAssetUploadFailed(h.wizard.LastError()))
	require.Nil(t, h.wizard.Result())

	// 入力は保持されたまま、ユーザー起点で再試行できる
	require.Equal(t, "Sol Summer", h.wizard.Request().Name)

	h.assets.err = nil
	res, err := h.wizard.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Mint111", res.MintAddress)
	require.Equal(t, StepSuccess, h.wizard.Step())
	require.NoError(t, h.wizard.LastError())
}

// run 中の不変条件: 二重 Submit は ErrRunInFlight、Advance/Retreat/Reset は
// ブロックされ、ライブ編集は凍結済み snapshot に影響しない。
func TestSubmit_InFlightGuards(t *testing.T) {
	t.Parallel()

	sub := &blockingSubmitter{started: make(chan struct{}), release: make(chan struct{})}
	assets := &stubAssets{url: "https://gateway.irys.xyz/img"}
	meta := &stubMetadata{url: "https://gateway.irys.xyz/meta"}
	port := &stubPort{balance: 10}
	session := &walletdom.Session{Connected: true, Address: "addr", Balance: 10}

	orch := pipeline.NewOrchestrator(assets, meta, sub, netdom.Devnet, nil)
	w := New(feedom.DefaultTable(), netdom.Devnet, orch, session, port)
	toReview(t, w)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = w.Submit(context.Background())
	}()

	<-sub.started
	require.True(t, w.Running())

	_, err := w.Submit(context.Background())
	require.ErrorIs(t, err, tokendom.ErrRunInFlight)

	require.False(t, w.Advance())
	require.False(t, w.Retreat())
	require.ErrorIs(t, w.Reset(), tokendom.ErrRunInFlight)

	// ライブ編集は許可されるが、run は snapshot を使い続ける
	edited := "Edited Mid Run"
	w.UpdateRequest(tokendom.Patch{Name: &edited})
	require.Equal(t, edited, w.Request().Name)

	close(sub.release)
	<-done

	require.Equal(t, StepSuccess, w.Step())
	require.False(t, w.Running())
	require.Equal(t, "Sol Summer", sub.gotName)
}

func TestSubmit_RejectedAtSuccess(t *testing.T) {
	t.Parallel()

	h := newHarness()
	toReview(t, h.wizard)
	_, err := h.wizard.Submit(context.Background())
	require.NoError(t, err)

	// SUCCESS は terminal
	_, err = h.wizard.Submit(context.Background())
	require.True(t, tokendom.IsValidationFailed(err))
}

func TestUpdateRequest_NoOpAtSuccess(t *testing.T) {
	t.Parallel()

	h := newHarness()
	toReview(t, h.wizard)
	_, err := h.wizard.Submit(context.Background())
	require.NoError(t, err)

	name := "changed"
	h.wizard.UpdateRequest(tokendom.Patch{Name: &name})
	require.Equal(t, "Sol Summer", h.wizard.Request().Name)
}

func TestReset(t *testing.T) {
	t.Parallel()

	h := newHarness()
	toReview(t, h.wizard)
	_, err := h.wizard.Submit(context.Background())
	require.NoError(t, err)

	require.NoError(t, h.wizard.Reset())
	require.Equal(t, StepBasic, h.wizard.Step())
	require.Nil(t, h.wizard.Result())
	require.NoError(t, h.wizard.LastError())

	req := h.wizard.Request()
	require.Empty(t, req.Name)
	require.Equal(t, tokendom.DefaultDecimals, req.Decimals)
	require.True(t, req.FreezeAuthority)
}

func TestStepString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "BASIC", StepBasic.String())
	require.Equal(t, "ADVANCED", StepAdvanced.String())
	require.Equal(t, "REVIEW", StepReview.String())
	require.Equal(t, "SUCCESS", StepSuccess.String())
}
