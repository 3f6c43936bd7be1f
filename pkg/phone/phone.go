package phone

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// defaultRegion is assumed when a number carries no country prefix.
const defaultRegion = "US"

// Normalize parses a phone number and returns it in E.164 format, which is
// what the telephony vendor expects. Numbers without a country prefix are
// interpreted against the default region.
func Normalize(phone string) (string, error) {
	if phone == "" {
		return "", fmt.Errorf("phone number cannot be empty")
	}

	parsed, err := phonenumbers.Parse(phone, defaultRegion)
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}

	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("invalid phone number")
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// IsValid reports whether the number parses and is a valid subscriber number.
func IsValid(phone string) bool {
	if phone == "" {
		return false
	}
	parsed, err := phonenumbers.Parse(phone, defaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(parsed)
}
