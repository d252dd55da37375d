package models

// VerificationStatus is the admin-controlled moderation state of a lawyer
// account.
type VerificationStatus string

const (
	VerificationPending   VerificationStatus = "Pending"
	VerificationApproved  VerificationStatus = "Approved"
	VerificationRejected  VerificationStatus = "Rejected"
	VerificationSuspended VerificationStatus = "Suspended"
)

type Lawyer struct {
	ID                    int64              `json:"id"`
	Username              string             `json:"username"`
	Email                 string             `json:"email"`
	PhoneNumber           string             `json:"phoneNumber"`
	Address               string             `json:"address"`
	BarRegistrationNumber string             `json:"barRegistrationNumber"`
	Specialization        string             `json:"specialization"`
	VerificationStatus    VerificationStatus `json:"verificationStatus"`
	AverageRating         float64            `json:"averageRating"`
}
