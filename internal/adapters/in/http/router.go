package httpin

import (
	"net/http"

	"solanaforge/internal/adapters/in/http/handlers"
	"solanaforge/internal/adapters/in/http/middleware"
	"solanaforge/internal/application/pipeline"
	usecase "solanaforge/internal/application/usecase"
	netdom "solanaforge/internal/domain/network"
	walletdom "solanaforge/internal/domain/wallet"
)

// RouterDeps collects all usecases (and other dependencies) injected from main.go.
type RouterDeps struct {
	TokenUC *usecase.TokenUsecase

	// アップロード単体エンドポイント用（pipeline と同じストアを共有する）
	Assets   pipeline.AssetStore
	Metadata pipeline.MetadataStore

	WalletPort walletdom.SessionPort
	Network    netdom.Network

	// FirebaseAuth が nil なら認証はスキップ（devnet ローカル運用）
	FirebaseAuth *middleware.FirebaseAuthClient
}

// NewRouter sets up HTTP routing for all endpoints.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Health check (always on)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	auth := &middleware.AuthMiddleware{FirebaseAuth: deps.FirebaseAuth}

	// 以降、依存が存在するものだけマウントする
	if deps.TokenUC != nil {
		tokenHandler := handlers.NewTokenHandler(deps.TokenUC)
		mux.Handle("/api/tokens", auth.Handler(tokenHandler))
		mux.Handle("/api/tokens/", auth.Handler(tokenHandler))
		mux.Handle("/api/quote", tokenHandler) // 見積りは認証不要
	}

	if deps.Assets != nil || deps.Metadata != nil {
		uploadHandler := handlers.NewUploadHandler(deps.Assets, deps.Metadata)
		mux.Handle("/api/upload-image", auth.Handler(uploadHandler))
		mux.Handle("/api/upload-metadata", auth.Handler(uploadHandler))
	}

	if deps.WalletPort != nil {
		walletHandler := handlers.NewWalletHandler(deps.WalletPort, deps.Network)
		mux.Handle("/api/wallet", walletHandler)
		mux.Handle("/api/wallet/", auth.Handler(walletHandler))
	}

	return middleware.Recover(mux)
}
