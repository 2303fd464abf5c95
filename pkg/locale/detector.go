package locale

import "strings"

// InferCountryFromPhone matches an E.164 phone against the known country
// prefixes. Returns nil when no prefix matches.
func InferCountryFromPhone(phone string) *Country {
	normalized := strings.TrimSpace(phone)

	for _, country := range Countries {
		for _, prefix := range country.PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return &country
			}
		}
	}

	return nil
}

// InferTimezoneFromPhone resolves the default timezone for a phone's country,
// falling back to DefaultTimezone when the prefix is unknown.
func InferTimezoneFromPhone(phone string) string {
	if country := InferCountryFromPhone(phone); country != nil {
		return country.DefaultTimezone
	}
	return DefaultTimezone
}
