package models

import "time"

type Consultation struct {
	ID                int64     `json:"id"`
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
