package locale

import (
	"strings"
)

const (
	DefaultTimezone = "UTC"
)

type Country struct {
	Code            string   // ISO 3166-1 alpha-2 country code (e.g., "BR", "US")
	Name            string   // Human-readable country name
	PhonePrefixes   []string // Valid phone number prefixes (e.g., ["+55", "55"])
	DefaultTimezone string   // IANA timezone identifier (e.g., "America/Sao_Paulo")
}

var (
	Countries = map[string]Country{
		"BR": {
			Code:            "BR",
			Name:            "Brazil",
			PhonePrefixes:   []string{"+55", "55"},
			DefaultTimezone: "America/Sao_Paulo",
		},
		"US": {
			Code:            "US",
			Name:            "United States",
			PhonePrefixes:   []string{"+1", "1"},
			DefaultTimezone: "America/New_York",
		},
		"IL": {
			Code:            "IL",
			Name:            "Israel",
			PhonePrefixes:   []string{"+972", "972"},
			DefaultTimezone: "Asia/Jerusalem",
		},
	}

	TimeZoneTags = map[string][]string{
		"BR": {"America/Sao_Paulo", "America/Recife", "America/Manaus", "Brazil/East"},
		"US": {"America/New_York", "America/Los_Angeles", "US/Eastern", "US/Pacific"},
		"IL": {"Asia/Jerusalem", "Israel", "Asia/Tel_Aviv"},
	}
)

func DetectRegion(tz string) string {
	for region, zones := range TimeZoneTags {
		for _, z := range zones {
			if strings.EqualFold(tz, z) {
				return region
			}
		}
	}
	return "BR"
}
