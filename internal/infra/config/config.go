// internal/infra/config/config.go
package config

import "os"

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port string

	// Solana
	Network         string // devnet | mainnet-beta | testnet
	SolanaRPCURL    string // 空ならネットワークの公開エンドポイント
	WalletKeySecret string // Secret Manager のフルパス
	TreasuryAddress string // creation fee の送金先（空ならスキップ）

	// Irys / Arweave uploader
	IrysBaseURL string
	IrysAPIKey  string

	// GCS（Irys の代わりにアセットを置く場合）
	GCSBucket string
	GCPCreds  string

	// Firestore
	FirestoreProjectID       string
	FirestoreCredentialsFile string

	// Firebase Auth
	FirebaseProjectID string

	// Postgres（creation history。未設定なら無効）
	DatabaseURL string

	// SendGrid（通知メール。未設定なら無効）
	SendGridAPIKey  string
	NotifyFromEmail string
	NotifyToEmail   string
}

// Load は環境変数を読み込み Config を返します。
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		Network:         getenvDefault("SOLANA_NETWORK", "devnet"),
		SolanaRPCURL:    os.Getenv("SOLANA_RPC_URL"),
		WalletKeySecret: os.Getenv("SOLANA_WALLET_KEY_SECRET"),
		TreasuryAddress: os.Getenv("TREASURY_ADDRESS"),

		IrysBaseURL: os.Getenv("IRYS_BASE_URL"),
		IrysAPIKey:  os.Getenv("IRYS_API_KEY"),

		GCSBucket: os.Getenv("GCS_BUCKET"),
		GCPCreds:  os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),

		FirebaseProjectID: getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		SendGridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		NotifyFromEmail: os.Getenv("NOTIFY_FROM_EMAIL"),
		NotifyToEmail:   os.Getenv("NOTIFY_TO_EMAIL"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
