// Package share builds WhatsApp deep links for sending invoice summaries.
// Delivery is fire-and-forget: the link is handed to the client, nothing is
// tracked.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultCountryCode replaces a leading national trunk "0" when a phone
// number is given in local form.
const DefaultCountryCode = "972"

// NormalizePhone converts a local-format phone number into international
// digits: whitespace, dashes and parentheses are stripped, a leading "+" is
// dropped, and a leading trunk "0" becomes the country code.
func NormalizePhone(raw, countryCode string) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	var digits strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '+', r == '-', r == ' ', r == '(', r == ')':
			// stripped
		}
	}

	phone := digits.String()
	if strings.HasPrefix(raw, "+") {
		return phone
	}
	if strings.HasPrefix(phone, "0") {
		return countryCode + phone[1:]
	}
	return phone
}

// WhatsAppLink builds the wa.me deep link carrying the URL-encoded message.
func WhatsAppLink(phone, message, countryCode string) (string, error) {
	normalized := NormalizePhone(phone, countryCode)
	if normalized == "" {
		return "", errors.New("phone number is required")
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", normalized, url.QueryEscape(message)), nil
}
