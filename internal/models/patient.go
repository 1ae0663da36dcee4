package models

import (
	"time"

	"gorm.io/datatypes"
)

// PatientStatus is derived from the patient's applications and is never set directly by callers
type PatientStatus string

const (
	PatientAvailable PatientStatus = "available"
	PatientPending   PatientStatus = "pending"
	PatientAccepted  PatientStatus = "accepted"
	PatientRejected  PatientStatus = "rejected"
)

// Patient represents a heart-failure patient registered by a facility for care transfer
type Patient struct {
	ID string `gorm:"primaryKey;size:16" json:"id"`

	// Clinical attributes
	AgeGroup         string `gorm:"size:20;not null" json:"age_group"`
	Gender           string `gorm:"size:10;not null" json:"gender"`
	Diagnosis        string `gorm:"size:255;not null" json:"diagnosis"`
	NYHAClass        string `gorm:"column:nyha_class;size:4;not null" json:"nyha_class"`
	MedicalTreatment string `gorm:"type:text" json:"medical_treatment,omitempty"`
	CareLevel        string `gorm:"size:20" json:"care_level,omitempty"`

	// Preferences
	DesiredService     string                     `gorm:"size:50;not null" json:"desired_service"`
	PreferredDays      datatypes.JSONSlice[string] `gorm:"type:json" json:"preferred_days"`
	PreferredTimeSlots datatypes.JSONSlice[string] `gorm:"type:json" json:"preferred_time_slots"`
	Frequency          string                     `gorm:"size:20" json:"frequency,omitempty"`

	// Placement
	Facility         string    `gorm:"size:255;not null;index" json:"facility"` // registering facility name
	Area             string    `gorm:"size:100;not null;index" json:"area"`
	ContactPhone     string    `gorm:"size:50" json:"contact_phone,omitempty"`
	ContactEmail     string    `gorm:"size:255" json:"contact_email,omitempty"`
	RegistrationDate time.Time `json:"registration_date"`

	Status       PatientStatus `gorm:"type:enum('available','pending','accepted','rejected');default:'available'" json:"status"`
	Applications []Application `gorm:"foreignKey:PatientID;references:ID" json:"applications"`
}

// TableName specifies the table name for Patient model
func (Patient) TableName() string {
	return "patients"
}

// Clone returns a copy that shares no slices with the receiver
func (p Patient) Clone() Patient {
	c := p
	c.PreferredDays = append(datatypes.JSONSlice[string](nil), p.PreferredDays...)
	c.PreferredTimeSlots = append(datatypes.JSONSlice[string](nil), p.PreferredTimeSlots...)
	c.Applications = append([]Application(nil), p.Applications...)
	for i := range c.Applications {
		c.Applications[i] = c.Applications[i].Clone()
	}
	return c
}

// PatientInput carries the form fields a facility submits when registering a patient
type PatientInput struct {
	AgeGroup           string   `json:"age_group"`
	Gender             string   `json:"gender"`
	Diagnosis          string   `json:"diagnosis"`
	NYHAClass          string   `json:"nyha_class"`
	MedicalTreatment   string   `json:"medical_treatment"`
	CareLevel          string   `json:"care_level"`
	Area               string   `json:"area"`
	DesiredService     string   `json:"desired_service"`
	PreferredDays      []string `json:"preferred_days"`
	PreferredTimeSlots []string `json:"preferred_time_slots"`
	Frequency          string   `json:"frequency"`
	ContactPhone       string   `json:"contact_phone"`
	ContactEmail       string   `json:"contact_email"`
}

// PatientFilter holds optional equality filters plus a substring filter on desired service.
// Empty values mean no constraint.
type PatientFilter struct {
	AgeGroup  string `form:"age_group" json:"age_group"`
	Gender    string `form:"gender" json:"gender"`
	NYHAClass string `form:"nyha_class" json:"nyha_class"`
	CareLevel string `form:"care_level" json:"care_level"`
	Area      string `form:"area" json:"area"`
	Service   string `form:"service" json:"service"`
}
