// internal/infra/solana/wallet_session.go
package solana

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/associated_token_account"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"

	netdom "solanaforge/internal/domain/network"
	walletdom "solanaforge/internal/domain/wallet"
)

const lamportsPerSOL = 1_000_000_000

// CustodialSession は wallet.SessionPort のサーバー側実装です。
// Secret Manager から復元したサービスウォレットが fee payer と各権限を持ち、
// 署名と送信をまとめて行います（ブラウザ拡張の代わり）。
type CustodialSession struct {
	wallet  *ServiceWallet
	client  *client.Client
	network netdom.Network

	// 任意: 作成手数料の送金先。空なら fee transfer は組み込まない。
	treasuryAddress string

	connected bool
}

// インターフェース実装チェック
var _ walletdom.SessionPort = (*CustodialSession)(nil)

// NewCustodialSession builds a session against the given network.
// rpcURL が空ならネットワークの公開エンドポイントを使う。
func NewCustodialSession(wallet *ServiceWallet, n netdom.Network, rpcURL, treasuryAddress string) *CustodialSession {
	ep := strings.TrimSpace(rpcURL)
	if ep == "" {
		ep = n.RPCEndpoint()
	}
	return &CustodialSession{
		wallet:          wallet,
		client:          client.NewClient(ep),
		network:         n,
		treasuryAddress: strings.TrimSpace(treasuryAddress),
	}
}

// Connect marks the session connected and returns the wallet address.
// カストディアル鍵なのでユーザープロンプトは無い。
func (s *CustodialSession) Connect(ctx context.Context) (string, error) {
	_ = ctx

	if s == nil || s.wallet == nil {
		return "", walletdom.ErrProviderUnavailable
	}
	s.connected = true
	addr := s.wallet.Account.PublicKey.ToBase58()
	log.Printf("[solana] session connected address=%s network=%s", addr, s.network)
	return addr, nil
}

// Disconnect drops the connection flag. Best-effort.
func (s *CustodialSession) Disconnect(ctx context.Context) error {
	_ = ctx
	if s == nil {
		return nil
	}
	s.connected = false
	return nil
}

// CheckTrustedConnection is the silent probe: never prompts. A loaded
// service wallet is always trusted; missing key reports "not connected".
func (s *CustodialSession) CheckTrustedConnection(ctx context.Context) (string, error) {
	_ = ctx
	if s == nil || s.wallet == nil {
		return "", nil
	}
	return s.wallet.Account.PublicKey.ToBase58(), nil
}

// Balance returns the wallet's current SOL balance from the cluster.
func (s *CustodialSession) Balance(ctx context.Context) (float64, error) {
	if s == nil || s.wallet == nil || s.client == nil {
		return 0, walletdom.ErrProviderUnavailable
	}

	lamports, err := s.client.GetBalance(ctx, s.wallet.Account.PublicKey.ToBase58())
	if err != nil {
		return 0, fmt.Errorf("GetBalance: %w", err)
	}
	return float64(lamports) / lamportsPerSOL, nil
}

// SignAndSubmit builds the full token-creation transaction described by tx,
// signs it with the service wallet and the fresh mint account, and sends it.
//
// Instruction order（original の参照実装と同じ）:
//  1. CreateAccount (mint)
//  2. InitializeMint (freeze authority は保持時のみ payer、revoke 時は nil)
//  3. CreateMetadataAccountV3 (IsMutable = !Immutable)
//  4. Create ATA
//  5. MintTo (supply * 10^decimals)
//  6. SetAuthority(MintTokens, nil) — RevokeMint のときのみ
//  7. Transfer (creation fee) — treasury 設定時のみ
func (s *CustodialSession) SignAndSubmit(
	ctx context.Context,
	tx walletdom.UnsignedTxDescriptor,
) (walletdom.SubmitResult, error) {
	var empty walletdom.SubmitResult

	if s == nil || s.wallet == nil || s.client == nil {
		return empty, walletdom.ErrProviderUnavailable
	}

	req := tx.Request
	payer := s.wallet.Account
	mint := types.NewAccount() // 新規 mint アカウント

	if req.Decimals < 0 || req.Decimals > 18 {
		return empty, fmt.Errorf("%w: decimals out of range: %d", walletdom.ErrSubmission, req.Decimals)
	}

	amount, err := rawSupply(req.InitialSupply, req.Decimals)
	if err != nil {
		return empty, fmt.Errorf("%w: %v", walletdom.ErrSubmission, err)
	}

	// Associated Token Account
	ata, _, err := common.FindAssociatedTokenAddress(payer.PublicKey, mint.PublicKey)
	if err != nil {
		return empty, fmt.Errorf("%w: FindAssociatedTokenAddress: %v", walletdom.ErrSubmission, err)
	}

	// Metadata PDA
	metadataPubkey, err := token_metadata.GetTokenMetaPubkey(mint.PublicKey)
	if err != nil {
		return empty, fmt.Errorf("%w: GetTokenMetaPubkey: %v", walletdom.ErrSubmission, err)
	}

	// Mint アカウントの rent
	mintRent, err := s.client.GetMinimumBalanceForRentExemption(ctx, token.MintAccountSize)
	if err != nil {
		return empty, fmt.Errorf("%w: GetMinimumBalanceForRentExemption: %v", walletdom.ErrSubmission, err)
	}

	recent, err := s.client.GetLatestBlockhash(ctx)
	if err != nil {
		return empty, fmt.Errorf("%w: GetLatestBlockhash: %v", walletdom.ErrSubmission, err)
	}

	// Freeze authority: 保持時のみ payer を立てる（revoke は立てない = 放棄）
	var freezeAuth *common.PublicKey
	if req.FreezeAuthority {
		freezeAuth = &payer.PublicKey
	}

	instructions := []types.Instruction{
		system.CreateAccount(system.CreateAccountParam{
			From:     payer.PublicKey,
			New:      mint.PublicKey,
			Owner:    common.TokenProgramID,
			Lamports: mintRent,
			Space:    token.MintAccountSize,
		}),
		token.InitializeMint(token.InitializeMintParam{
			Decimals:   uint8(req.Decimals),
			Mint:       mint.PublicKey,
			MintAuth:   payer.PublicKey,
			FreezeAuth: freezeAuth,
		}),
		token_metadata.CreateMetadataAccountV3(
			token_metadata.CreateMetadataAccountV3Param{
				Metadata:                metadataPubkey,
				Mint:                    mint.PublicKey,
				MintAuthority:           payer.PublicKey,
				UpdateAuthority:         payer.PublicKey,
				Payer:                   payer.PublicKey,
				UpdateAuthorityIsSigner: true,
				IsMutable:               !req.Immutable,
				Data: token_metadata.DataV2{
					Name:                 req.Name,
					Symbol:               req.Symbol,
					Uri:                  tx.MetadataURL,
					SellerFeeBasisPoints: 0,
					Creators:             metadataCreators(req.CreatorAddress, payer.PublicKey),
				},
				CollectionDetails: nil,
			},
		),
		associated_token_account.CreateAssociatedTokenAccount(
			associated_token_account.CreateAssociatedTokenAccountParam{
				Funder:                 payer.PublicKey,
				Owner:                  payer.PublicKey,
				Mint:                   mint.PublicKey,
				AssociatedTokenAccount: ata,
			},
		),
		token.MintTo(token.MintToParam{
			Mint:   mint.PublicKey,
			To:     ata,
			Auth:   payer.PublicKey,
			Amount: amount,
		}),
	}

	// SetAuthority(MintTokens, nil): ミント権限の永久放棄
	if req.RevokeMint {
		instructions = append(instructions, token.SetAuthority(token.SetAuthorityParam{
			Account:  mint.PublicKey,
			NewAuth:  nil,
			AuthType: token.AuthorityTypeMintTokens,
			Auth:     payer.PublicKey,
		}))
	}

	// Creation fee を treasury へ送る（設定時のみ）
	if s.treasuryAddress != "" && tx.FeeTotal > 0 {
		instructions = append(instructions, system.Transfer(system.TransferParam{
			From:   payer.PublicKey,
			To:     common.PublicKeyFromString(s.treasuryAddress),
			Amount: uint64(math.Round(tx.FeeTotal * lamportsPerSOL)),
		}))
	}

	txn, err := types.NewTransaction(types.NewTransactionParam{
		Signers: []types.Account{mint, payer},
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        payer.PublicKey,
			RecentBlockhash: recent.Blockhash,
			Instructions:    instructions,
		}),
	})
	if err != nil {
		return empty, fmt.Errorf("%w: NewTransaction: %v", walletdom.ErrSubmission, err)
	}

	sig, err := s.client.SendTransaction(ctx, txn)
	if err != nil {
		return empty, fmt.Errorf("%w: SendTransaction: %v", walletdom.ErrSubmission, err)
	}

	log.Printf(
		"[solana] token created network=%s mint=%s sig=%s decimals=%d supply=%d revokeMint=%t freezeRetained=%t immutable=%t",
		tx.Network, mint.PublicKey.ToBase58(), sig,
		req.Decimals, req.InitialSupply, req.RevokeMint, req.FreezeAuthority, req.Immutable,
	)

	return walletdom.SubmitResult{
		Signature:   sig,
		MintAddress: mint.PublicKey.ToBase58(),
	}, nil
}

// rawSupply converts a UI supply into base units, guarding overflow.
func rawSupply(supply uint64, decimals int) (uint64, error) {
	amount := supply
	for i := 0; i < decimals; i++ {
		if amount > math.MaxUint64/10 {
			return 0, fmt.Errorf("supply %d with %d decimals overflows u64", supply, decimals)
		}
		amount *= 10
	}
	return amount, nil
}

// metadataCreators builds the on-chain creator list. creatorAddress 未指定の
// 場合は nil（メタデータに creators を載せない）。
func metadataCreators(creatorAddress string, payer common.PublicKey) *[]token_metadata.Creator {
	addr := strings.TrimSpace(creatorAddress)
	if addr == "" {
		return nil
	}

	pk := common.PublicKeyFromString(addr)
	return &[]token_metadata.Creator{
		{
			Address:  pk,
			Verified: pk == payer, // 署名者本人のみ verified にできる
			Share:    100,
		},
	}
}
