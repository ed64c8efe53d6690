package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DonationStatusPending  = "pending"
	DonationStatusPaid     = "paid"
	DonationStatusExpired  = "expired"
	DonationStatusCanceled = "canceled"
)

const (
	DonationMethodGateway = "gateway"
	DonationMethodCash    = "cash"
)

type DonationModel struct {
	DonationID uuid.UUID `gorm:"column:donation_id;type:uuid;primaryKey" json:"donation_id"`

	// FK → donors
	DonationDonorID uuid.UUID `gorm:"column:donation_donor_id;type:uuid;not null;index:idx_donations_donor" json:"donation_donor_id"`

	DonationAmountIDR int     `gorm:"column:donation_amount_idr;not null;check:donation_amount_idr > 0" json:"donation_amount_idr"`
	DonationStatus    string  `gorm:"column:donation_status;type:varchar(20);not null;default:'pending';index:ix_donations_status" json:"donation_status"`
	DonationMethod    string  `gorm:"column:donation_method;type:varchar(20);not null;default:'gateway'" json:"donation_method"`
	DonationMessage   *string `gorm:"column:donation_message;type:text" json:"donation_message,omitempty"`

	// order_id di Midtrans (nil untuk donasi cash)
	DonationOrderID *string `gorm:"column:donation_order_id;type:varchar(64);uniqueIndex:uq_donations_order" json:"donation_order_id,omitempty"`

	// FK → users (pengumpul donasi cash)
	DonationCollectorID *uuid.UUID `gorm:"column:donation_collector_id;type:uuid" json:"donation_collector_id,omitempty"`

	DonationPaidAt *time.Time `gorm:"column:donation_paid_at" json:"donation_paid_at,omitempty"`

	DonationCreatedAt time.Time  `gorm:"column:donation_created_at;autoCreateTime" json:"donation_created_at"`
	DonationUpdatedAt *time.Time `gorm:"column:donation_updated_at;autoUpdateTime" json:"donation_updated_at,omitempty"`
}

func (DonationModel) TableName() string { return "donations" }

func (m *DonationModel) BeforeCreate(tx *gorm.DB) error {
	if m.DonationID == uuid.Nil {
		m.DonationID = uuid.New()
	}
	return nil
}
