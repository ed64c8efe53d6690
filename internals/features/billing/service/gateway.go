package service

import (
	"errors"
	"log"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client

// InitMidtrans harus dipanggil saat bootstrap app.
// useProduction=true untuk Production, false untuk Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

/* =========================================================
   Gateway abstraction
========================================================= */

type CustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Gateway membungkus pembuatan transaksi hosted-checkout supaya service
// pembayaran bisa dites tanpa memanggil Midtrans betulan.
type Gateway interface {
	CreateTransaction(orderID string, amountIDR int, itemName string, cust CustomerInput) (redirectURL string, err error)
}

type MidtransGateway struct {
	// retry kecil dengan backoff; gateway unreachable harus gagal jelas,
	// bukan menggantung
	MaxAttempts int
	Backoff     time.Duration
}

func NewMidtransGateway() *MidtransGateway {
	return &MidtransGateway{MaxAttempts: 3, Backoff: 500 * time.Millisecond}
}

func (g *MidtransGateway) CreateTransaction(orderID string, amountIDR int, itemName string, cust CustomerInput) (string, error) {
	if amountIDR <= 0 {
		return "", errors.New("invalid amount_idr")
	}
	if orderID == "" {
		return "", errors.New("order_id is required")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(amountIDR),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.FirstName,
			LName: cust.LastName,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       orderID,
				Price:    int64(amountIDR),
				Qty:      1,
				Name:     truncate(itemName, 50),
				Category: "Madrasah",
			},
		},
	}

	attempts := g.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := g.Backoff

	var lastErr error
	for i := 0; i < attempts; i++ {
		resp, err := SnapClient.CreateTransaction(req)
		if err == nil {
			return resp.RedirectURL, nil
		}
		lastErr = err
		log.Printf("[WARN] Midtrans CreateTransaction attempt %d/%d gagal: %v", i+1, attempts, err)
		if i < attempts-1 {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return "", lastErr
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
