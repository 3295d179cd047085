package models

import "encoding/json"

// VisitorSubmission is the payload posted by the visitor registration form
type VisitorSubmission struct {
	VisitorName  string `json:"visitorName" validate:"required"`
	Phone        string `json:"phone" validate:"required,mobile"`
	VisitDate    string `json:"visitDate,omitempty"`
	VisitPurpose string `json:"visitPurpose" validate:"required"`
	HostName     string `json:"hostName" validate:"required"`
	HostPhone    string `json:"hostPhone" validate:"required,mobile"`
	IDNumber     string `json:"idNumber,omitempty" validate:"omitempty,idnumber"`
	CarNumber    string `json:"carNumber,omitempty" validate:"omitempty,plate"`
}

// ExternalRecord is the field set written to the bitable table.
// Empty values are left out of the payload.
type ExternalRecord struct {
	VisitorName  string `json:"VisitorName,omitempty"`
	Phone        string `json:"Phone,omitempty"`
	VisitTime    string `json:"VisitTime,omitempty"`
	VisitDate    string `json:"VisitDate,omitempty"`
	VisitPurpose string `json:"VisitPurpose,omitempty"`
	HostName     string `json:"HostName,omitempty"`
	HostPhone    string `json:"HostPhone,omitempty"`
	IDNumber     string `json:"IdNumber,omitempty"`
	CarNumber    string `json:"CarNumber,omitempty"`
}

// LocalResult reports local acceptance of a submission
type LocalResult struct {
	Local bool `json:"local"`
}

// SubmissionResponse is the body returned whenever the submission is accepted.
// Feishu is null when the remote write was skipped.
type SubmissionResponse struct {
	Success bool            `json:"success"`
	Data    *LocalResult    `json:"data,omitempty"`
	Feishu  json.RawMessage `json:"feishu"`
}

// FailureResponse is the body returned when a submission is rejected
type FailureResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ExternalWriteMarker replaces the remote result when the write failed
type ExternalWriteMarker struct {
	Error string `json:"error"`
}
