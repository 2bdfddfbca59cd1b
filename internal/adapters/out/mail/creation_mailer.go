// internal/adapters/out/mail/creation_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	netdom "solanaforge/internal/domain/network"
	tokendom "solanaforge/internal/domain/token"
)

// CreationMailerPort はアプリケーション層が利用する
// 「トークン作成完了通知メール」のアウトバウンドポートです。
type CreationMailerPort interface {
	SendCreationEmail(ctx context.Context, toEmail string, rec tokendom.Record) error
}

// EmailClient は実際のメール送信クライアント（SMTP / SendGrid / SES など）を
// 抽象化した下位レベルのインターフェースです。
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// CreationMailer は CreationMailerPort の具象実装で、
// 内部で EmailClient を利用してメール送信を行います。
type CreationMailer struct {
	client      EmailClient
	fromAddress string
}

func NewCreationMailer(client EmailClient, fromAddress string) *CreationMailer {
	return &CreationMailer{
		client:      client,
		fromAddress: fromAddress,
	}
}

// SendCreationEmail sends the success summary with explorer links.
// Best-effort 前提: 呼び出し側は失敗してもログだけにする。
func (m *CreationMailer) SendCreationEmail(ctx context.Context, toEmail string, rec tokendom.Record) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("creation mailer is not configured")
	}
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" {
		return fmt.Errorf("to address is empty")
	}

	n := netdom.Parse(rec.Network)

	subject := fmt.Sprintf("Your token %s (%s) is live on %s", rec.Name, rec.Symbol, n.DisplayName())
	body := fmt.Sprintf(
		"Token created successfully.\n\n"+
			"Name:         %s\n"+
			"Symbol:       %s\n"+
			"Mint address: %s\n"+
			"Signature:    %s\n\n"+
			"Explorer:\n%s\n%s\n",
		rec.Name,
		rec.Symbol,
		rec.MintAddress,
		rec.Signature,
		n.ExplorerURL(netdom.ExplorerAddress, rec.MintAddress),
		n.ExplorerURL(netdom.ExplorerTx, rec.Signature),
	)

	return m.client.Send(ctx, m.fromAddress, toEmail, subject, body)
}
