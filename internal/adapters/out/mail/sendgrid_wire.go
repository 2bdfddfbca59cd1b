package mail

import "log"

// NewCreationMailerWithSendGrid は、SendGrid を使った CreationMailer を生成します。
// キーと送信元は config 経由で渡される（環境変数の読み取りはここでは行わない）。
func NewCreationMailerWithSendGrid(apiKey, fromAddr string) *CreationMailer {
	if apiKey == "" {
		log.Printf("[mail] WARN: SendGrid API key is empty. CreationMailer will fail to send mail.")
	}
	if fromAddr == "" {
		log.Printf("[mail] WARN: from address is empty. CreationMailer will fail to send mail.")
	}

	// SendGridClient を EmailClient として利用
	mailer := NewCreationMailer(NewSendGridClient(apiKey), fromAddr)

	log.Printf("[mail] CreationMailerWithSendGrid initialized. from=%s", fromAddr)
	return mailer
}
