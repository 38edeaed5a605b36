package dto

import "time"

// PixKeyRequest payload for adding or deleting a payment key.
type PixKeyRequest struct {
	Key     string `json:"key" validate:"required"`
	KeyType string `json:"key_type" validate:"required,oneof=cpf cnpj email phone random"`
}

// PixKeyResponse describes a registered payment key.
type PixKeyResponse struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	KeyType   string    `json:"key_type"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductRequest payload for creating or updating a product.
type ProductRequest struct {
	CauseID     int64   `json:"cause_id" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Value       float64 `json:"value" validate:"gte=0"`
}

// ProductResponse describes one product.
type ProductResponse struct {
	ID          int64   `json:"id"`
	CauseID     int64   `json:"cause_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}
