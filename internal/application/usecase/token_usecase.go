package usecase

import (
	"context"
	"log"
	"time"

	"solanaforge/internal/application/pipeline"
	"solanaforge/internal/application/wizard"
	feedom "solanaforge/internal/domain/fee"
	netdom "solanaforge/internal/domain/network"
	tokendom "solanaforge/internal/domain/token"
	walletdom "solanaforge/internal/domain/wallet"
)

// CreationNotifier はトークン作成成功時の通知契約です（実装は adapters/out/mail）。
type CreationNotifier interface {
	SendCreationEmail(ctx context.Context, toEmail string, rec tokendom.Record) error
}

// TokenUsecase はトークン作成の HTTP 向けアプリケーションサービスです。
// ウィザードを介さない 1-shot 作成（validate -> quote -> balance -> pipeline -> persist）を担当します。
type TokenUsecase struct {
	table   feedom.Table
	network netdom.Network
	orch    *pipeline.Orchestrator
	session walletdom.SessionPort

	// records が本線（Firestore）。history は PG への二重書き。
	// どちらも nil なら永続化はスキップされます。
	records tokendom.RecordRepositoryPort
	history tokendom.RecordRepositoryPort

	notifier CreationNotifier
	notifyTo string
}

func NewTokenUsecase(
	table feedom.Table,
	network netdom.Network,
	orch *pipeline.Orchestrator,
	session walletdom.SessionPort,
	records tokendom.RecordRepositoryPort,
	history tokendom.RecordRepositoryPort,
	notifier CreationNotifier,
	notifyTo string,
) *TokenUsecase {
	return &TokenUsecase{
		table:    table,
		network:  network,
		orch:     orch,
		session:  session,
		records:  records,
		history:  history,
		notifier: notifier,
		notifyTo: notifyTo,
	}
}

// Quote は現在の設定に対する料金内訳を返します。純粋計算なので ctx 不要。
func (uc *TokenUsecase) Quote(req tokendom.CreationRequest) feedom.Quote {
	return feedom.Compute(req, uc.table)
}

// CreateToken は 1 リクエストでトークンを作成します。
// gate と run は wizard に委譲する（ステップ遷移の実装を一本化するため）。
// 失敗時は tokendom のセンチネルエラー（Is* で判定可能）を返します。
func (uc *TokenUsecase) CreateToken(ctx context.Context, req tokendom.CreationRequest) (tokendom.CreationResult, error) {
	if err := req.ValidateBasic(); err != nil {
		return tokendom.CreationResult{}, err
	}
	if err := req.ValidateAdvanced(); err != nil {
		return tokendom.CreationResult{}, err
	}

	address, err := uc.session.Connect(ctx)
	if err != nil {
		log.Printf("[token_usecase] wallet connect failed: %v", err)
		return tokendom.CreationResult{}, tokendom.ErrWalletNotConnected
	}

	balance, err := uc.session.Balance(ctx)
	if err != nil {
		log.Printf("[token_usecase] balance fetch failed: %v", err)
		return tokendom.CreationResult{}, tokendom.WrapSubmission(err)
	}

	// リクエストごとの使い捨て wizard を BASIC から SUCCESS まで駆動する。
	w := wizard.New(uc.table, uc.network, uc.orch, &walletdom.Session{
		Connected: true,
		Address:   address,
		Balance:   balance,
	}, uc.session)
	w.SetRequest(req)
	if !w.Advance() || !w.Advance() {
		return tokendom.CreationResult{}, tokendom.WrapValidation("request did not pass the wizard gates")
	}

	quote := w.Quote()

	result, err := w.Submit(ctx)
	if err != nil {
		return tokendom.CreationResult{}, err
	}

	rec := tokendom.Record{
		MintAddress: result.MintAddress,
		Signature:   result.Signature,
		Name:        req.Name,
		Symbol:      req.Symbol,
		Decimals:    req.Decimals,
		Supply:      req.InitialSupply,
		MetadataURL: result.MetadataURL,
		ImageURL:    result.ImageURL,
		Network:     string(uc.network),
		Creator:     address,
		FeeTotal:    quote.Total,
		CreatedAt:   time.Now().UTC(),
	}
	uc.persist(ctx, rec)
	uc.notify(ctx, rec)

	return *result, nil
}

// ListTokens は作成履歴を新しい順で返します。
func (uc *TokenUsecase) ListTokens(ctx context.Context, limit int) ([]tokendom.Record, error) {
	if uc.records != nil {
		return uc.records.List(ctx, limit)
	}
	if uc.history != nil {
		return uc.history.List(ctx, limit)
	}
	return []tokendom.Record{}, nil
}

// GetToken は mint アドレスで 1 件取得します。
func (uc *TokenUsecase) GetToken(ctx context.Context, mintAddress string) (tokendom.Record, error) {
	if uc.records != nil {
		return uc.records.GetByMintAddress(ctx, mintAddress)
	}
	if uc.history != nil {
		return uc.history.GetByMintAddress(ctx, mintAddress)
	}
	return tokendom.Record{}, tokendom.ErrNotFound
}

// persist は作成結果をレコードストアへ書きます。
// チェーン上はすでに成立しているため best-effort（失敗はログのみ）。
func (uc *TokenUsecase) persist(ctx context.Context, rec tokendom.Record) {
	if uc.records != nil {
		if err := uc.records.Create(ctx, rec); err != nil && !tokendom.IsConflict(err) {
			log.Printf("[token_usecase] record store write failed mint=%s: %v", rec.MintAddress, err)
		}
	}
	if uc.history != nil {
		if err := uc.history.Create(ctx, rec); err != nil && !tokendom.IsConflict(err) {
			log.Printf("[token_usecase] history write failed mint=%s: %v", rec.MintAddress, err)
		}
	}
}

func (uc *TokenUsecase) notify(ctx context.Context, rec tokendom.Record) {
	if uc.notifier == nil || uc.notifyTo == "" {
		return
	}
	if err := uc.notifier.SendCreationEmail(ctx, uc.notifyTo, rec); err != nil {
		log.Printf("[token_usecase] creation mail failed mint=%s: %v", rec.MintAddress, err)
	}
}
