package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	IDLength   = 6
)

// GenerateID gera os IDs curtos usados em acompanhamentos e alertas
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, IDLength)
}
