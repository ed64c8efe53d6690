package model

// FeeFields adalah kolom tarif yang sama-sama dimiliki batch, department, dan course.
// Semua nullable: kolom yang kosong di level bawah diwariskan ke level di atasnya
// (batch → department → course). Varian _sadka dipakai untuk fee tier diskon.
type FeeFields struct {
	MonthlyFee         *int `gorm:"column:monthly_fee" json:"monthly_fee,omitempty"`
	MonthlyFeeProbashi *int `gorm:"column:monthly_fee_probashi" json:"monthly_fee_probashi,omitempty"`
	MonthlyFeeOffline  *int `gorm:"column:monthly_fee_offline" json:"monthly_fee_offline,omitempty"`

	MonthlyFeeSadka         *int `gorm:"column:monthly_fee_sadka" json:"monthly_fee_sadka,omitempty"`
	MonthlyFeeProbashiSadka *int `gorm:"column:monthly_fee_probashi_sadka" json:"monthly_fee_probashi_sadka,omitempty"`
	MonthlyFeeOfflineSadka  *int `gorm:"column:monthly_fee_offline_sadka" json:"monthly_fee_offline_sadka,omitempty"`

	AdmissionFee         *int `gorm:"column:admission_fee" json:"admission_fee,omitempty"`
	AdmissionFeeProbashi *int `gorm:"column:admission_fee_probashi" json:"admission_fee_probashi,omitempty"`
	AdmissionFeeOffline  *int `gorm:"column:admission_fee_offline" json:"admission_fee_offline,omitempty"`

	AdmissionFeeSadka         *int `gorm:"column:admission_fee_sadka" json:"admission_fee_sadka,omitempty"`
	AdmissionFeeProbashiSadka *int `gorm:"column:admission_fee_probashi_sadka" json:"admission_fee_probashi_sadka,omitempty"`
	AdmissionFeeOfflineSadka  *int `gorm:"column:admission_fee_offline_sadka" json:"admission_fee_offline_sadka,omitempty"`
}
