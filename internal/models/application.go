package models

import "time"

// ApplicationStatus is the lifecycle state of a care-transfer application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is a request by one facility to take over care of a patient registered by another
type Application struct {
	ID                string            `gorm:"primaryKey;size:16" json:"id"`
	PatientID         string            `gorm:"size:16;not null;index" json:"patient_id"`
	ApplicantFacility string            `gorm:"size:255;not null;index" json:"applicant_facility"`
	Status            ApplicationStatus `gorm:"type:enum('pending','approved','rejected');default:'pending'" json:"status"`
	Note              string            `gorm:"type:text" json:"note"`
	ApplicationDate   time.Time         `gorm:"not null" json:"application_date"`
	ResponseNote      string            `gorm:"type:text" json:"response_note"`
	ResponseDate      *time.Time        `json:"response_date"`
}

// TableName specifies the table name for Application model
func (Application) TableName() string {
	return "applications"
}

// Clone returns a copy that does not share the response date pointer
func (a Application) Clone() Application {
	c := a
	if a.ResponseDate != nil {
		t := *a.ResponseDate
		c.ResponseDate = &t
	}
	return c
}

// IsResolved reports whether the application has left the pending state
func (a Application) IsResolved() bool {
	return a.Status != ApplicationPending
}

// ApplicationView is an application enriched with the patient it refers to
type ApplicationView struct {
	Application
	Patient Patient `json:"patient"`
}

// ViewerApplicationStatus describes a patient's applications from one facility's point of view
type ViewerApplicationStatus string

const (
	ViewerNone     ViewerApplicationStatus = "none"
	ViewerPending  ViewerApplicationStatus = "pending"
	ViewerApproved ViewerApplicationStatus = "approved"
	ViewerRejected ViewerApplicationStatus = "rejected"
	ViewerOthers   ViewerApplicationStatus = "others"
)
