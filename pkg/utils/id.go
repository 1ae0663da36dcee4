package utils

import (
	"crypto/rand"
	"io"
	"strings"

	"github.com/google/uuid"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	PatientIDPrefix     = "HF-"
	ApplicationIDPrefix = "APP-"
)

// GeneratePatientID returns an ID of the form HF-XXXXXX
func GeneratePatientID() string {
	return PatientIDPrefix + randomCode(6)
}

// GenerateApplicationID returns an ID of the form APP-XXXXXXXX
func GenerateApplicationID() string {
	return ApplicationIDPrefix + randomCode(8)
}

// GenerateID returns an opaque UUID for records without a display format
func GenerateID() string {
	return uuid.NewString()
}

// randomCode draws n characters from idAlphabet.
// Bytes at or above the largest multiple of the alphabet size are discarded so every character is equally likely.
// Falls back to UUID-derived characters if the system random source fails.
func randomCode(n int) string {
	return drawCode(rand.Reader, n)
}

// unbiasedLimit is the largest multiple of len(idAlphabet) that fits in a byte
const unbiasedLimit = 256 - 256%len(idAlphabet)

func drawCode(src io.Reader, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	buf := make([]byte, n)
	for sb.Len() < n {
		if _, err := io.ReadFull(src, buf); err != nil {
			fallback := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
			return fallback[:n]
		}
		for _, b := range buf {
			if int(b) >= unbiasedLimit {
				continue
			}
			sb.WriteByte(idAlphabet[int(b)%len(idAlphabet)])
			if sb.Len() == n {
				break
			}
		}
	}
	return sb.String()
}
