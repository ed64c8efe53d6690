package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonorModel struct {
	DonorID uuid.UUID `gorm:"column:donor_id;type:uuid;primaryKey" json:"donor_id"`

	DonorName  string  `gorm:"column:donor_name;type:varchar(120);not null" json:"donor_name"`
	DonorPhone *string `gorm:"column:donor_phone;type:varchar(30)" json:"donor_phone,omitempty"`
	DonorEmail *string `gorm:"column:donor_email;type:varchar(120)" json:"donor_email,omitempty"`

	// anggota dana committee: donasinya masuk fund dana_committee, bukan donation
	DonorIsCommitteeMember bool `gorm:"column:donor_is_committee_member;not null;default:false" json:"donor_is_committee_member"`

	DonorCreatedAt time.Time      `gorm:"column:donor_created_at;autoCreateTime" json:"donor_created_at"`
	DonorUpdatedAt *time.Time     `gorm:"column:donor_updated_at;autoUpdateTime" json:"donor_updated_at,omitempty"`
	DonorDeletedAt gorm.DeletedAt `gorm:"column:donor_deleted_at;index" json:"-"`
}

func (DonorModel) TableName() string { return "donors" }

func (m *DonorModel) BeforeCreate(tx *gorm.DB) error {
	if m.DonorID == uuid.Nil {
		m.DonorID = uuid.New()
	}
	return nil
}
