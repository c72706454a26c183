package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"mime"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"
)

type MailService interface {
	SendPasswordReset(to, token string) error
	SendBookingConfirmation(to, name, tripTitle string, people int, totalMinor int64, currency string, startDate int64) error
	SendVerificationDecision(to, name string, approved bool, reason string) error
	SendTripCancelled(to, name, tripTitle string, refundMinor int64, currency string) error
}

// SMTPConfig holds SMTP + branding settings.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // e.g. 587 (STARTTLS)
	Username   string
	Password   string
	From       string // envelope from, e.g. "no-reply@tourship.app"
	FromName   string // display name
	RequireTLS bool   // fail if STARTTLS is not offered

	AppName    string
	AppBaseURL string // e.g. "https://tourship.app"
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) MailService {
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("html").Parse(mailHTMLTemplate)),
		textTpl: template.Must(template.New("text").Parse(mailTextTemplate)),
	}
}

// NewLogMailService returns a sink that only logs. Used when SMTP_HOST
// is not configured, so flows that send mail still work in dev.
func NewLogMailService() MailService {
	return &logMailService{}
}

type mailData struct {
	Title     string
	Lines     []string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

const mailHTMLTemplate = `<!doctype html>
<html>
<body style="margin:0;padding:24px;background:#f4f5f7;font-family:Arial,Helvetica,sans-serif;color:#24292f;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0">
    <tr><td align="center">
      <table role="presentation" width="560" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;padding:32px;">
        <tr><td style="font-size:20px;font-weight:bold;padding-bottom:16px;">{{.Title}}</td></tr>
        {{range .Lines}}<tr><td style="font-size:14px;line-height:22px;padding-bottom:8px;">{{.}}</td></tr>{{end}}
        {{if .ButtonURL}}
        <tr><td style="padding:24px 0;">
          <a href="{{.ButtonURL}}" style="background:#0b66c3;color:#ffffff;text-decoration:none;padding:12px 24px;border-radius:6px;font-size:14px;">{{.ButtonTxt}}</a>
        </td></tr>
        {{end}}
        <tr><td style="font-size:12px;color:#6e7781;padding-top:24px;">&copy; {{.Year}} {{.AppName}}</td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`

const mailTextTemplate = `{{.Title}}

{{range .Lines}}{{.}}
{{end}}{{if .ButtonURL}}
{{.ButtonTxt}}: {{.ButtonURL}}
{{end}}
-- {{.AppName}}`

// ------------------- Public API -------------------

func (s *smtpMailService) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s",
		strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(token))

	return s.deliver(to, "Reset your password", mailData{
		Lines: []string{
			"We received a request to reset your password.",
			"The link below is valid for 10 minutes and can be used once.",
			"If you did not request this, you can ignore this email.",
		},
		ButtonURL: link,
		ButtonTxt: "Reset password",
	})
}

func (s *smtpMailService) SendBookingConfirmation(to, name, tripTitle string, people int, totalMinor int64, currency string, startDate int64) error {
	return s.deliver(to, "Your booking is confirmed", mailData{
		Lines: []string{
			fmt.Sprintf("Hi %s,", name),
			fmt.Sprintf("Your booking for %q is confirmed.", tripTitle),
			fmt.Sprintf("Travellers: %d", people),
			fmt.Sprintf("Total: %s", formatMinor(totalMinor, currency)),
			fmt.Sprintf("Departure: %s", time.Unix(startDate, 0).UTC().Format("2 Jan 2006")),
		},
	})
}

func (s *smtpMailService) SendVerificationDecision(to, name string, approved bool, reason string) error {
	if approved {
		return s.deliver(to, "Your profile has been approved", mailData{
			Lines: []string{
				fmt.Sprintf("Hi %s,", name),
				"Good news: your profile passed review and is now verified.",
				"You have full access to your account features.",
			},
		})
	}
	lines := []string{
		fmt.Sprintf("Hi %s,", name),
		"Unfortunately your profile was not approved.",
	}
	if reason != "" {
		lines = append(lines, fmt.Sprintf("Reason: %s", reason))
	}
	lines = append(lines, "You can update your details and submit again.")
	return s.deliver(to, "Your profile review", mailData{Lines: lines})
}

func (s *smtpMailService) SendTripCancelled(to, name, tripTitle string, refundMinor int64, currency string) error {
	lines := []string{
		fmt.Sprintf("Hi %s,", name),
		fmt.Sprintf("The trip %q has been cancelled by its organiser.", tripTitle),
	}
	if refundMinor > 0 {
		lines = append(lines, fmt.Sprintf("A refund of %s is on its way.", formatMinor(refundMinor, currency)))
	}
	return s.deliver(to, "Trip cancelled", mailData{Lines: lines})
}

func formatMinor(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, minor/100, minor%100, currency)
}

// ------------------- Rendering + SMTP -------------------

func (s *smtpMailService) deliver(to, subject string, data mailData) error {
	data.Title = subject
	data.AppName = s.cfg.AppName
	data.Year = time.Now().Year()

	var hb, tb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return err
	}
	if err := s.textTpl.Execute(&tb, data); err != nil {
		return err
	}
	return s.send(to, subject, hb.String(), tb.String())
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	date := time.Now().Format(time.RFC1123Z)
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", date)
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if ok, _ := c.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	} else if s.cfg.RequireTLS {
		return fmt.Errorf("smtp server %s does not offer STARTTLS", s.cfg.Host)
	}

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err = c.Auth(auth); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg.Bytes()); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}

// ------------------- Log sink -------------------

type logMailService struct{}

func (l *logMailService) SendPasswordReset(to, token string) error {
	log.Printf("mail (log sink): password reset to=%s token=%s", to, token)
	return nil
}

func (l *logMailService) SendBookingConfirmation(to, name, tripTitle string, people int, totalMinor int64, currency string, startDate int64) error {
	log.Printf("mail (log sink): booking confirmation to=%s trip=%q people=%d total=%s", to, tripTitle, people, formatMinor(totalMinor, currency))
	return nil
}

func (l *logMailService) SendVerificationDecision(to, name string, approved bool, reason string) error {
	log.Printf("mail (log sink): verification decision to=%s approved=%t reason=%q", to, approved, reason)
	return nil
}

func (l *logMailService) SendTripCancelled(to, name, tripTitle string, refundMinor int64, currency string) error {
	log.Printf("mail (log sink): trip cancelled to=%s trip=%q refund=%s", to, tripTitle, formatMinor(refundMinor, currency))
	return nil
}
