// internal/platform/di/container.go
package di

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"

	httpin "solanaforge/internal/adapters/in/http"
	fsrepo "solanaforge/internal/adapters/out/firestore"
	gcsrepo "solanaforge/internal/adapters/out/gcs"
	"solanaforge/internal/adapters/out/mail"
	pgrepo "solanaforge/internal/adapters/out/postgres"
	"solanaforge/internal/application/pipeline"
	usecase "solanaforge/internal/application/usecase"
	feedom "solanaforge/internal/domain/fee"
	netdom "solanaforge/internal/domain/network"
	tokendom "solanaforge/internal/domain/token"
	walletdom "solanaforge/internal/domain/wallet"
	arweaveinfra "solanaforge/internal/infra/arweave"
	appcfg "solanaforge/internal/infra/config"
	"solanaforge/internal/infra/database"
	firestoreinfra "solanaforge/internal/infra/firestore"
	solanainfra "solanaforge/internal/infra/solana"
)

// ========================================
// Container
// ========================================

// Container は main.go から使う依存オブジェクトの束。
// main.go を極限まで薄くするのが目的。
type Container struct {
	// Infra
	Config       *appcfg.Config
	Network      netdom.Network
	Firestore    *firestore.Client
	FirebaseApp  *firebase.App
	FirebaseAuth *firebaseauth.Client
	GCS          *storage.Client
	DB           *database.DB

	// Solana service wallet（Secret Manager から読み込んだ鍵）
	ServiceWallet *solanainfra.ServiceWallet
	Session       walletdom.SessionPort

	// Pipeline stores + orchestrator
	Assets       pipeline.AssetStore
	Metadata     pipeline.MetadataStore
	Orchestrator *pipeline.Orchestrator

	// Application layer
	TokenUC *usecase.TokenUsecase

	cleanupFn []func()
}

// Close は Cloud Run 終了時などに呼んで安全にリソースを閉じる。
func (c *Container) Close() {
	if c == nil {
		return
	}
	for _, fn := range c.cleanupFn {
		fn()
	}
}

// ========================================
// NewContainer
// ========================================

// NewContainer は依存を組み立てて返す。
// 任意依存（Firestore / PG / SendGrid / Firebase）は失敗しても WARN で続行し、
// Solana まわり（鍵 + RPC）だけは必須とする。
func NewContainer(ctx context.Context) (*Container, error) {
	// 1. Load config
	cfg := appcfg.Load()
	network := netdom.Parse(cfg.Network)

	rpcURL := cfg.SolanaRPCURL
	if rpcURL == "" {
		rpcURL = network.RPCEndpoint()
	}
	log.Printf("[container] network=%s rpc=%s", network, rpcURL)

	c := &Container{
		Config:  cfg,
		Network: network,
	}

	// 2. Service wallet key from Secret Manager
	wallet, err := solanainfra.LoadServiceWallet(ctx, cfg.WalletKeySecret)
	if err != nil {
		return nil, err
	}
	c.ServiceWallet = wallet

	// 3. Wallet session (custodial, server-side)
	c.Session = solanainfra.NewCustodialSession(wallet, network, rpcURL, cfg.TreasuryAddress)

	// 4. Upload stores: Irys が設定されていればそれを、無ければ GCS を使う
	if cfg.IrysBaseURL != "" {
		uploader := arweaveinfra.NewHTTPUploader(cfg.IrysBaseURL, cfg.IrysAPIKey)
		c.Assets = uploader
		c.Metadata = uploader
		log.Printf("[container] Irys uploader initialized baseURL=%s", cfg.IrysBaseURL)
	} else {
		gcsClient, err := storage.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		c.GCS = gcsClient
		c.cleanupFn = append(c.cleanupFn, func() { _ = gcsClient.Close() })

		c.Assets = gcsrepo.NewTokenAssetRepositoryGCS(gcsClient, cfg.GCSBucket)
		c.Metadata = gcsrepo.NewTokenMetadataRepositoryGCS(gcsClient, cfg.GCSBucket)
		log.Printf("[container] GCS stores initialized bucket=%s", cfg.GCSBucket)
	}

	// 5. Orchestrator（progress はログに流す）
	c.Orchestrator = pipeline.NewOrchestrator(
		c.Assets,
		c.Metadata,
		solanainfra.NewTokenCreator(),
		network,
		func(status string) { log.Printf("[container] pipeline: %s", status) },
	)

	// 6. Firestore（record store, optional）
	var recordRepo tokendom.RecordRepositoryPort
	if cfg.FirestoreProjectID != "" {
		cw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			log.Printf("[container] WARN: firestore init failed: %v", err)
		} else {
			c.Firestore = cw.Client
			c.cleanupFn = append(c.cleanupFn, func() { _ = cw.Close() })
			recordRepo = fsrepo.NewTokenRecordRepositoryFS(cw.Client)
		}
	}

	// 7. Postgres（creation history, optional）
	var historyRepo tokendom.RecordRepositoryPort
	if cfg.DatabaseURL != "" {
		db, err := database.NewConnection(cfg.DatabaseURL)
		if err != nil {
			log.Printf("[container] WARN: postgres init failed: %v", err)
		} else {
			c.DB = db
			c.cleanupFn = append(c.cleanupFn, func() { _ = db.Close() })
			historyRepo = pgrepo.NewCreationHistoryRepositoryPG(db.Client)
			log.Println("[container] Postgres connected")
		}
	}

	// 8. Firebase Auth（optional: 無ければ認証スキップ）
	if cfg.FirebaseProjectID != "" {
		fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID})
		if err != nil {
			log.Printf("[container] WARN: firebase app init failed: %v", err)
		} else {
			c.FirebaseApp = fbApp
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				log.Printf("[container] WARN: firebase auth init failed: %v", err)
			} else {
				c.FirebaseAuth = authClient
				log.Printf("[container] Firebase Auth initialized")
			}
		}
	}

	// 9. Creation mailer（optional）
	var notifier usecase.CreationNotifier
	if cfg.SendGridAPIKey != "" && cfg.NotifyFromEmail != "" {
		notifier = mail.NewCreationMailerWithSendGrid(cfg.SendGridAPIKey, cfg.NotifyFromEmail)
	} else {
		log.Printf("[container] CreationMailer not configured (SENDGRID_API_KEY / NOTIFY_FROM_EMAIL empty)")
	}

	// 10. Usecases
	c.TokenUC = usecase.NewTokenUsecase(
		feedom.DefaultTable(),
		network,
		c.Orchestrator,
		c.Session,
		recordRepo,
		historyRepo,
		notifier,
		cfg.NotifyToEmail,
	)

	return c, nil
}

// RouterDeps converts the container into the HTTP router dependency set.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		TokenUC:      c.TokenUC,
		Assets:       c.Assets,
		Metadata:     c.Metadata,
		WalletPort:   c.Session,
		Network:      c.Network,
		FirebaseAuth: c.FirebaseAuth,
	}
}
