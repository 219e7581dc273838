package infrastructure

import (
	"github.com/google/uuid"
)

// GenerateUUID é o gerador de IDs padrão para eventos e recibos.
func GenerateUUID() string {
	return uuid.New().String()
}
