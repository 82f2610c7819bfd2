package domain

import (
	"fmt"
	"strings"
)

// NormalizeCEP strips every non-digit character from raw and returns the
// canonical 8-digit form. Normalizing an already-canonical CEP is a no-op.
func NormalizeCEP(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) != 8 {
		return "", fmt.Errorf("normalize cep %q: %w", raw, ErrInvalidCEP)
	}

	return digits, nil
}

// FormatCEP renders a normalized CEP in the XXXXX-XXX display form.
// Inputs that are not 8 digits long are returned unchanged.
func FormatCEP(cep string) string {
	if len(cep) != 8 {
		return cep
	}
	return cep[:5] + "-" + cep[5:]
}
