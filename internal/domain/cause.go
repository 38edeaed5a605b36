package domain

import "time"

// Cause is a fundraising cause run by a receiver.
type Cause struct {
	ID          int64
	ReceiverID  int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// Favorite marks a cause as favorited by a donor. One row per
// (donor, cause) pair.
type Favorite struct {
	ID        int64
	DonorID   int64
	CauseID   int64
	CreatedAt time.Time
}

// Product is an item a cause accepts as an in-kind donation.
type Product struct {
	ID          int64
	CauseID     int64
	Name        string
	Description string
	Value       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Receiver is the listing projection donors browse.
type Receiver struct {
	UserID      int64
	Name        string
	Email       string
	Document    string
	PostalCode  string
	Description string
}
