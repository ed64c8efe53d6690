package service

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"madrasahku_backend/internals/configs"
)

/* =========================================================
   Event
========================================================= */

const (
	EventInvoicePaid  = "invoice_paid"
	EventDonationPaid = "donation_paid"
)

type Event struct {
	Type           string
	RecipientName  string
	RecipientEmail string
	Subject        string
	Body           string
}

/* =========================================================
   Notifier
========================================================= */

// Notifier dipanggil best-effort SETELAH transisi finansial commit; gagal kirim
// hanya dicatat, tidak pernah me-rollback pembayaran.
type Notifier interface {
	Send(ev Event) error
}

// NewFromEnv: SendGrid kalau API key terisi, kalau tidak jatuh ke console.
func NewFromEnv() Notifier {
	if configs.SendgridAPIKey != "" {
		return &SendgridNotifier{
			apiKey:    configs.SendgridAPIKey,
			fromEmail: configs.SenderEmail,
			fromName:  "Madrasahku",
		}
	}
	return &ConsoleNotifier{}
}

// Dispatch menjalankan pengiriman di goroutine terpisah (fire-and-forget).
func Dispatch(n Notifier, ev Event) {
	if n == nil {
		return
	}
	go func() {
		if err := n.Send(ev); err != nil {
			log.Printf("[ERROR] Notifikasi %s ke %s gagal: %v", ev.Type, ev.RecipientEmail, err)
		}
	}()
}

/* =========================================================
   Console (dev / tanpa API key)
========================================================= */

type ConsoleNotifier struct{}

func (ConsoleNotifier) Send(ev Event) error {
	log.Printf("📨 [NOTIFY:%s] to=%s <%s> | %s | %s", ev.Type, ev.RecipientName, ev.RecipientEmail, ev.Subject, ev.Body)
	return nil
}

/* =========================================================
   SendGrid
========================================================= */

type SendgridNotifier struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func (s *SendgridNotifier) Send(ev Event) error {
	if ev.RecipientEmail == "" {
		log.Printf("[WARN] Notifikasi %s dilewati: recipient tanpa email", ev.Type)
		return nil
	}
	from := sgmail.NewEmail(s.fromName, s.fromEmail)
	to := sgmail.NewEmail(ev.RecipientName, ev.RecipientEmail)
	message := sgmail.NewSingleEmail(from, ev.Subject, to, ev.Body, ev.Body)

	resp, err := sendgrid.NewSendClient(s.apiKey).Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
