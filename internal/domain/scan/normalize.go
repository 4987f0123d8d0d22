package scan

import (
	"regexp"
	"strings"
)

// IATA air waybill numbers are 11 digits: 3-digit airline prefix plus
// 8-digit serial, conventionally printed with a hyphen after the prefix.
// This is a separate dialect from the carrier's own TAC######## codes.
var (
	iataAWBDigits  = regexp.MustCompile(`^(\d{3})(\d{8})$`)
	iataAWBPattern = regexp.MustCompile(`^\d{3}-?\d{8}$`)
	tokenDelims    = strings.NewReplacer(" ", "", "\t", "", "-", "", "_", "")
)

// NormalizeScanToken cleans a raw scanner token: strips whitespace,
// hyphens and underscores, upper-cases, and re-inserts the IATA hyphen
// when the result is exactly 11 digits. Anything else is returned cleaned
// but otherwise unchanged.
func NormalizeScanToken(token string) string {
	if token == "" {
		return ""
	}

	normalized := strings.ToUpper(tokenDelims.Replace(strings.TrimSpace(token)))

	if m := iataAWBDigits.FindStringSubmatch(normalized); m != nil {
		return m[1] + "-" + m[2]
	}
	return normalized
}

// IsValidAWBFormat reports whether a token normalizes to an IATA-style
// air waybill number.
func IsValidAWBFormat(token string) bool {
	return iataAWBPattern.MatchString(NormalizeScanToken(token))
}
