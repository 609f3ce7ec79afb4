package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"

	"github.com/ali-aqib/blog/internal/domain"
)

// SMTPConfig 是发件配置。发件人同时也是收件人 (站长邮箱)。
type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件邮箱
	Password string
	Timeout  time.Duration
}

// SMTPMailer 通过 STARTTLS + 认证的 SMTP 连接发送邮件。
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer 创建 SMTPMailer 实例。
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPMailer{cfg: cfg}
}

// Send 发送联系邮件，整个过程受 cfg.Timeout 约束。
func (m *SMTPMailer) Send(ctx context.Context, msg domain.ContactMessage) error {
	logCtx := logrus.WithFields(logrus.Fields{"smtp_host": m.cfg.Host, "from_email": msg.Email})
	if m.cfg.Username == "" {
		return fmt.Errorf("%w: mail sender is not configured", ErrDelivery)
	}

	email, err := BuildContactEmail(m.cfg.Username, msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(m.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("%w: create smtp client: %v", ErrDelivery, err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()
	if err := client.DialAndSendWithContext(sendCtx, email); err != nil {
		logCtx.WithError(err).Error("SMTP delivery failed")
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	logCtx.Info("Contact email sent")
	return nil
}

// BuildContactEmail 组装发往站长邮箱的邮件。
func BuildContactEmail(sender string, msg domain.ContactMessage) (*mail.Msg, error) {
	email := mail.NewMsg()
	if err := email.From(sender); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := email.To(sender); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	if msg.Email != "" {
		// 访客邮箱格式不合法时不设置 Reply-To，邮件照常发送
		_ = email.ReplyTo(msg.Email)
	}
	email.Subject("New Message")
	email.SetBodyString(mail.TypeTextPlain, ContactEmailBody(msg))
	return email, nil
}

// ContactEmailBody 生成邮件正文。
func ContactEmailBody(msg domain.ContactMessage) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nMessage: %s\n", msg.Name, msg.Email, msg.Phone, msg.Message)
}
