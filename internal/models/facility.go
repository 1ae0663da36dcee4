package models

import (
	"time"

	"gorm.io/datatypes"
)

// Facility represents a care-providing organization (clinic, hospital, visiting-nurse station)
// Name is unique and doubles as the session identity of the facility
type Facility struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Name         string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	FacilityType string `gorm:"size:50;not null" json:"facility_type"`
	Area         string `gorm:"size:100;not null;index" json:"area"`
	Address      string `gorm:"type:text" json:"address"`
	Phone        string `gorm:"size:50" json:"phone"`
	Email        string `gorm:"size:255" json:"email"`

	AvailableDays      datatypes.JSONSlice[string] `gorm:"type:json" json:"available_days"`
	AvailableTimeSlots datatypes.JSONSlice[string] `gorm:"type:json" json:"available_time_slots"`
	ProvidedServices   datatypes.JSONSlice[string] `gorm:"type:json" json:"provided_services"`
	Specialties        datatypes.JSONSlice[string] `gorm:"type:json" json:"specialties"`
	Features           datatypes.JSONSlice[string] `gorm:"type:json" json:"features"`

	// Capacity. CurrentPatients is maintained by external bookkeeping.
	MaxPatients     int `gorm:"not null;default:1" json:"max_patients"`
	CurrentPatients int `gorm:"not null;default:0" json:"current_patients"`

	RegistrationDate time.Time `json:"registration_date"`
	Description      string    `gorm:"type:text" json:"description,omitempty"`
}

// TableName specifies the table name for Facility model
func (Facility) TableName() string {
	return "facilities"
}

// RemainingCapacity returns how many more patients the facility can take
func (f Facility) RemainingCapacity() int {
	if f.CurrentPatients >= f.MaxPatients {
		return 0
	}
	return f.MaxPatients - f.CurrentPatients
}

// Clone returns a copy that shares no slices with the receiver
func (f Facility) Clone() Facility {
	c := f
	c.AvailableDays = cloneSet(f.AvailableDays)
	c.AvailableTimeSlots = cloneSet(f.AvailableTimeSlots)
	c.ProvidedServices = cloneSet(f.ProvidedServices)
	c.Specialties = cloneSet(f.Specialties)
	c.Features = cloneSet(f.Features)
	return c
}

func cloneSet(s datatypes.JSONSlice[string]) datatypes.JSONSlice[string] {
	return append(datatypes.JSONSlice[string](nil), s...)
}

// FacilityInput carries the editable facility fields
type FacilityInput struct {
	Name               string   `json:"name"`
	FacilityType       string   `json:"facility_type"`
	Area               string   `json:"area"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	Email              string   `json:"email"`
	AvailableDays      []string `json:"available_days"`
	AvailableTimeSlots []string `json:"available_time_slots"`
	ProvidedServices   []string `json:"provided_services"`
	Specialties        []string `json:"specialties"`
	Features           []string `json:"features"`
	MaxPatients        int      `json:"max_patients"`
	CurrentPatients    int      `json:"current_patients"`
	Description        string   `json:"description"`
}

// FacilityFilter narrows facility listings. Search matches name or address case-insensitively.
type FacilityFilter struct {
	Search       string `form:"search"`
	FacilityType string `form:"type"`
	Area         string `form:"area"`
}
