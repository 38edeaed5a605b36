package dto

// ListReceiversRequest selects the listing order.
type ListReceiversRequest struct {
	Sort string `json:"sort" validate:"omitempty,oneof=name_asc name_desc user_id"`
}

// ReceiverResponse is one entry of the receiver listing.
type ReceiverResponse struct {
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Document    string `json:"document"`
	PostalCode  string `json:"postal_code"`
	Description string `json:"description"`
}

// FavoriteResponse is one entry of a donor's favorites.
type FavoriteResponse struct {
	CauseID int64 `json:"cause_id"`
}

// DeactivateRequest names the account to deactivate.
type DeactivateRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}
