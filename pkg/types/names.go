package types

import "github.com/google/uuid"

// RandomName returns prefix followed by a random UUID
func RandomName(prefix string) string {
	return prefix + uuid.NewString()
}
