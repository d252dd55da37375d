// Package api implements the client for the LawLink REST backend. All
// operations are plain request/response with no local caching and no retry;
// failures map onto the taxonomy in errors.go.
package api

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lawlink/internal/client/models"
)

// LawyerRegistration carries the extra professional fields lawyer accounts
// require; clients register with username/email/password only.
type LawyerRegistration struct {
	Username              string `json:"username"`
	Email                 string `json:"email"`
	Password              string `json:"password"`
	PhoneNumber           string `json:"phoneNumber"`
	Address               string `json:"address"`
	BarRegistrationNumber string `json:"barRegistrationNumber"`
}

// EnquiryParams creates a client-initiated request for legal help directed
// at a specific lawyer. Field names follow the backend contract.
type EnquiryParams struct {
	UserID          int64  `json:"userid"`
	LawyerID        int64  `json:"Lawyerid"`
	CaseDescription string `json:"CaseDescription"`
}

type ConsultationParams struct {
	ClientID          int64     `json:"clientId"`
	LawyerID          int64     `json:"lawyerId"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	ScheduledDateTime time.Time `json:"scheduledDateTime"`
	DurationMinutes   int       `json:"durationMinutes"`
	MeetingLink       string    `json:"meetingLink"`
	Location          string    `json:"location"`
	Status            string    `json:"status"`
}

type LawyerUpdateParams struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber"`
	Address        string `json:"address"`
	Specialization string `json:"specialization"`
}

type FlagParams struct {
	IsFlagged bool   `json:"isFlagged"`
	Reason    string `json:"reason"`
}

// AuthAPI is the slice of the backend surface the session manager needs.
type AuthAPI interface {
	// Login exchanges credentials for an identity and bearer token. On
	// success the token is installed on the client for subsequent requests.
	Login(ctx context.Context, email, password string) (*models.AuthenticatedUser, error)
	// Register creates a client account and returns the email to verify.
	Register(ctx context.Context, username, email, password string) (string, error)
	// RegisterLawyer creates a lawyer account and returns the email to verify.
	RegisterLawyer(ctx context.Context, p LawyerRegistration) (string, error)
	// VerifyOTP exchanges a one-time code for account activation.
	VerifyOTP(ctx context.Context, email, otp string) error
	// SendOTP requests reissuance of the one-time code.
	SendOTP(ctx context.Context, email string) error

	// SetToken installs the bearer token used to authorize requests.
	SetToken(token string)
	// ClearToken removes the bearer token (logout).
	ClearToken()
}

// Client is the full backend surface consumed by the application.
type Client interface {
	AuthAPI

	Lawyer(ctx context.Context, id int64) (*models.Lawyer, error)

	CreateEnquiry(ctx context.Context, p EnquiryParams) (*models.Enquiry, error)
	LawyerEnquiries(ctx context.Context, lawyerID int64) ([]models.Enquiry, error)
	UpdateEnquiryStatus(ctx context.Context, id int64, status models.EnquiryStatus) error

	CreateConsultation(ctx context.Context, p ConsultationParams) (*models.Consultation, error)

	CreateRating(ctx context.Context, r models.Rating) error
	HasRated(ctx context.Context, lawyerID int64) (bool, error)

	ChatHistory(ctx context.Context, peerID int64) ([]models.ChatMessage, error)
	SendChatMessage(ctx context.Context, receiverID int64, message string) error

	Notifications(ctx context.Context, userID int64) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	MarkAllNotificationsRead(ctx context.Context, userID int64) error

	AdminLawyers(ctx context.Context) ([]models.Lawyer, error)
	AdminClients(ctx context.Context) ([]models.AdminClient, error)
	UpdateLawyer(ctx context.Context, id int64, p LawyerUpdateParams) error
	SetLawyerVerification(ctx context.Context, id int64, status models.VerificationStatus) error
	SetClientStatus(ctx context.Context, id int64, active bool) error
	FlagClient(ctx context.Context, id int64, p FlagParams) error
	AdminLawyerEnquiries(ctx context.Context, lawyerID int64) ([]models.Enquiry, error)
	AdminLawyerConsultations(ctx context.Context, lawyerID int64) ([]models.Consultation, error)
	AdminClientEnquiries(ctx context.Context, clientID int64) ([]models.Enquiry, error)
	AdminClientConsultations(ctx context.Context, clientID int64) ([]models.Consultation, error)
	ActivityLogs(ctx context.Context, actionType, search string) ([]models.ActivityLog, error)

	Close() error
}
