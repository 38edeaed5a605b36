package domain

import "time"

// PixKeyType enumerates the key formats accepted by the PIX network.
type PixKeyType string

const (
	PixKeyTypeCPF    PixKeyType = "cpf"
	PixKeyTypeCNPJ   PixKeyType = "cnpj"
	PixKeyTypeEmail  PixKeyType = "email"
	PixKeyTypePhone  PixKeyType = "phone"
	PixKeyTypeRandom PixKeyType = "random"
)

// PixKey is a payment key registered by a receiver. The triple
// (owner, key, type) is unique.
type PixKey struct {
	ID        int64
	OwnerID   int64
	Key       string
	KeyType   PixKeyType
	CreatedAt time.Time
}
