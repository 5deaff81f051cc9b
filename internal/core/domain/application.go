package domain

import "time"

// Application statuses mirror the guide-request states on the user record.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// Application is a user's request to become a tour guide. Payload carries the
// free-form profile the applicant submitted (experience, languages, photo);
// on approval it seeds the tour_guides document.
type Application struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	UserEmail string    `json:"user_email" bson:"user_email"`
	Payload   Document  `json:"payload" bson:"payload"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
