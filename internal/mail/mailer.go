// Package mail delivers report artifacts over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// Config carries the SMTP account used for delivery.
type Config struct {
	Host     string
	Port     int
	Address  string // sender account, also the From header
	Password string
	AppName  string
}

// Mailer sends report mails with the generated artifacts attached.
type Mailer struct {
	cfg    Config
	logger *slog.Logger
}

func NewMailer(cfg Config, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{cfg: cfg, logger: logger}
}

// SendReport mails the PDF and spreadsheet to every recipient. recipients
// is a comma-separated address list; the PDF is mandatory, the spreadsheet
// is attached when present.
func (m *Mailer) SendReport(ctx context.Context, recipients, pdfPath, xlsxPath string) error {
	start := time.Now()

	to := splitRecipients(recipients)
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}
	if _, err := os.Stat(pdfPath); err != nil {
		return fmt.Errorf("pdf attachment missing: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.Address); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	msg.Subject(fmt.Sprintf("[%s] Southeast Asia Financial News Report - %s",
		m.cfg.AppName, time.Now().Format("2006-01-02")))
	msg.SetBodyString(gomail.TypeTextHTML, m.buildBody(pdfPath, xlsxPath))

	msg.AttachFile(pdfPath)
	if xlsxPath != "" {
		if _, err := os.Stat(xlsxPath); err == nil {
			msg.AttachFile(xlsxPath)
		} else {
			m.logger.Warn("mail.attachment_skipped", "path", xlsxPath, "error", err)
		}
	}

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Address),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.Error("mail.send_error",
			"recipients", len(to), "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("send mail: %w", err)
	}

	m.logger.Info("mail.send.ok",
		"recipients", len(to),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (m *Mailer) buildBody(pdfPath, xlsxPath string) string {
	var attachments strings.Builder
	attachments.WriteString("<li><strong>PDF report</strong>: " + filepath.Base(pdfPath) + sizeSuffix(pdfPath) + "</li>")
	if xlsxPath != "" {
		if _, err := os.Stat(xlsxPath); err == nil {
			attachments.WriteString("<li><strong>Excel worksheet</strong>: " + filepath.Base(xlsxPath) + sizeSuffix(xlsxPath) + "</li>")
		}
	}

	return fmt.Sprintf(`<html>
<head>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 600px; margin: 0 auto; padding: 20px; }
  .header { background-color: #1a5490; color: white; padding: 20px; border-radius: 4px; }
  .footer { color: #888; font-size: 12px; margin-top: 24px; }
</style>
</head>
<body>
<div class="container">
  <div class="header"><h2>%s</h2></div>
  <p>Your Southeast Asia financial news report is ready. The generated files are attached:</p>
  <ul>%s</ul>
  <p class="footer">Generated %s by %s. This mailbox is not monitored.</p>
</div>
</body>
</html>`,
		"Southeast Asia Financial News Report",
		attachments.String(),
		time.Now().Format("2006-01-02 15:04:05"),
		m.cfg.AppName,
	)
}

func sizeSuffix(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(" (%.2f KB)", float64(info.Size())/1024)
}

func splitRecipients(recipients string) []string {
	var out []string
	for _, r := range strings.Split(recipients, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
