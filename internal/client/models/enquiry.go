package models

import "time"

// EnquiryStatus tracks a client-initiated request for legal help through the
// backend's moderation states.
type EnquiryStatus string

const (
	EnquiryPending  EnquiryStatus = "Pending"
	EnquiryAccepted EnquiryStatus = "Accepted"
	EnquiryRejected EnquiryStatus = "Rejected"
)

type Enquiry struct {
	ID              int64         `json:"id"`
	UserID          int64         `json:"userid"`
	LawyerID        int64         `json:"lawyerid"`
	ClientName      string        `json:"clientName"`
	CaseDescription string        `json:"caseDescription"`
	Status          EnquiryStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}
