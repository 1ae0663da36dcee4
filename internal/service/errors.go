package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrPatientNotFound     = errors.New("patient not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrFacilityNotFound    = errors.New("facility not found")
	ErrApplicationResolved = errors.New("application already resolved")
	ErrInvalidStatus       = errors.New("invalid negotiation status")
	ErrEmptyMessage        = errors.New("message must not be empty")
	ErrFacilityNameTaken   = errors.New("facility name already registered")
	ErrEmptyFacilityName   = errors.New("facility name is required")
	ErrCannotApply         = errors.New("cannot apply for patient")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrIDExhausted         = errors.New("could not generate a unique id")
)

// Reasons an application submission is refused
const (
	ReasonOwnPatient         = "own_patient"
	ReasonAlreadyApplied     = "already_applied"
	ReasonAlreadyApproved    = "already_approved"
	ReasonPatientUnavailable = "patient_unavailable"
)

// CannotApplyError reports which submission precondition failed
type CannotApplyError struct {
	PatientID string
	Facility  string
	Reason    string
}

func (e *CannotApplyError) Error() string {
	return fmt.Sprintf("facility %q cannot apply for patient %s: %s", e.Facility, e.PatientID, e.Reason)
}

func (e *CannotApplyError) Unwrap() error {
	return ErrCannotApply
}

// ValidationErrors maps snake_case field names to messages meant for inline display
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}
