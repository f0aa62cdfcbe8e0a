package models

import "time"

// AdmissionDateLayout is the layout of Patient.DateOfAdmission.
const AdmissionDateLayout = "2006-01-02"

type Patient struct {
	ID                uint      `gorm:"primaryKey" json:"patient_id"`
	Name              string    `gorm:"not null" json:"name"`
	Diagnosis         string    `gorm:"not null" json:"diagnosis"`
	DateOfAdmission   string    `gorm:"not null" json:"date_of_admission"`
	PreviousAilments  string    `gorm:"not null" json:"previous_ailments"`
	PreviousDiagnosis string    `gorm:"not null" json:"previous_diagnosis"`
	OtherConditions   string    `gorm:"not null" json:"other_conditions"`
	CreatedAt         time.Time `json:"-"`
}
