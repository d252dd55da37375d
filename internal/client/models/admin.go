package models

import "time"

// AdminClient is the moderation view of a client account.
type AdminClient struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	IsActive   bool   `json:"isActive"`
	IsFlagged  bool   `json:"isFlagged"`
	FlagReason string `json:"flagReason"`
}

// ActivityLog records a moderation action taken in the admin console.
// ActionType is one of the backend's fixed set, e.g. LawyerApproved,
// LawyerRejected, LawyerSuspended, ClientFlagged, ClientUnflagged,
// ClientActivated, ClientDeactivated.
type ActivityLog struct {
	ID            int64     `json:"id"`
	ActionType    string    `json:"actionType"`
	Description   string    `json:"description"`
	AdminUsername string    `json:"adminUsername"`
	TargetName    string    `json:"targetName"`
	CreatedAt     time.Time `json:"createdAt"`
}
