package dto

import (
	"github.com/google/uuid"

	"madrasahku_backend/internals/features/donations/model"
)

type DonorCreateDTO struct {
	Name              string  `json:"name" validate:"required,min=2,max=100"`
	Phone             *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	IsCommitteeMember bool    `json:"is_committee_member"`
}

func (d *DonorCreateDTO) ToModel() *model.DonorModel {
	return &model.DonorModel{
		DonorName:              d.Name,
		DonorPhone:             d.Phone,
		DonorEmail:             d.Email,
		DonorIsCommitteeMember: d.IsCommitteeMember,
	}
}

type DonationCheckoutDTO struct {
	DonorID   uuid.UUID `json:"donor_id" validate:"required"`
	AmountIDR int       `json:"amount_idr" validate:"required,min=1"`
	Note      *string   `json:"note,omitempty"`
}

type CashDonationDTO struct {
	DonorID   uuid.UUID `json:"donor_id" validate:"required"`
	AmountIDR int       `json:"amount_idr" validate:"required,min=1"`
	Note      *string   `json:"note,omitempty"`
}
