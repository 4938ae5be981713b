package domain

import (
	"regexp"
	"strings"
)

// The gateway only pushes prompts to local-network numbers in international
// form: 2547 followed by eight digits.
var phonePattern = regexp.MustCompile(`^2547\d{8}$`)

// NormalizePhone converts a customer-entered mobile number into the numbering
// format the gateway requires. "0712345678" and "712345678" both become
// "254712345678"; anything that does not match the target pattern after
// normalization is rejected.
func NormalizePhone(raw string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	switch {
	case strings.HasPrefix(digits, "07"):
		digits = "254" + digits[1:]
	case strings.HasPrefix(digits, "7"):
		digits = "254" + digits
	}

	if !phonePattern.MatchString(digits) {
		return "", NewInvalidRequestError("phone number must be a valid Safaricom number (e.g. 07XXXXXXXX)")
	}

	return digits, nil
}
