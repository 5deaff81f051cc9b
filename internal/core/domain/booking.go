package domain

import "time"

// BookingStatus is the lifecycle state of a tour booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking ties a traveller to a package and an assigned guide for a tour date.
// UserEmail and GuideEmail are references into the users / tour_guides
// collections; referential integrity is not enforced by the store.
type Booking struct {
	ID         string        `json:"id" bson:"_id,omitempty"`
	UserEmail  string        `json:"user_email" bson:"user_email"`
	GuideEmail string        `json:"guide_email" bson:"guide_email"`
	PackageID  string        `json:"package_id" bson:"package_id"`
	TourDate   string        `json:"tour_date" bson:"tour_date"`
	Price      float64       `json:"price" bson:"price"`
	Status     BookingStatus `json:"status" bson:"status"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
}

// DateCount is one bucket of the bookings-per-tour-date chart.
type DateCount struct {
	Date  string `json:"date" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}
