package scan

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Carrier AWB grammar: TAC followed by 8 digits.
var awbPattern = regexp.MustCompile(`^(?i)TAC\d{8}$`)

// Manifest number shorthand printed on manifest sheets.
var manifestNoPattern = regexp.MustCompile(`^(?i)MNF-\d{4}-\d{6}$`)

const payloadVersion = 1

type payloadV1 struct {
	V          int            `json:"v"`
	Type       string         `json:"type,omitempty"`
	AWB        string         `json:"awb,omitempty"`
	ID         string         `json:"id,omitempty"`
	ManifestNo string         `json:"manifestNo,omitempty"`
	PackageID  string         `json:"packageId,omitempty"`
	Route      string         `json:"route,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Parse classifies a raw scanner or keyboard token. Formats, first match
// wins: raw carrier AWB, version-1 JSON payload, manifest number shorthand.
func Parse(input string) (Token, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Token{}, newValidationError("empty scan input")
	}

	if awbPattern.MatchString(trimmed) {
		return Token{
			Type: TypeShipment,
			AWB:  strings.ToUpper(trimmed),
			Raw:  trimmed,
		}, nil
	}

	if strings.HasPrefix(trimmed, "{") {
		return parsePayload(trimmed)
	}

	if manifestNoPattern.MatchString(trimmed) {
		return Token{
			Type:       TypeManifest,
			ManifestNo: strings.ToUpper(trimmed),
			Raw:        trimmed,
		}, nil
	}

	return Token{}, newValidationError(fmt.Sprintf("invalid scan format: %s", truncate(trimmed, 20)))
}

func parsePayload(trimmed string) (Token, error) {
	var payload payloadV1
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return Token{}, newValidationError("invalid JSON in scan input")
	}

	if payload.V != payloadVersion {
		return Token{}, newValidationError("unsupported scan payload version")
	}

	switch payload.Type {
	case string(TypeManifest):
		if payload.ID == "" && payload.ManifestNo == "" {
			return Token{}, newValidationError("manifest scan requires id or manifestNo")
		}
		return Token{
			Type:       TypeManifest,
			ManifestID: payload.ID,
			ManifestNo: strings.ToUpper(payload.ManifestNo),
			Route:      payload.Route,
			Metadata:   payload.Metadata,
			Raw:        trimmed,
		}, nil

	case string(TypePackage):
		if payload.PackageID == "" {
			return Token{}, newValidationError("package scan requires packageId")
		}
		return Token{
			Type:      TypePackage,
			PackageID: payload.PackageID,
			AWB:       strings.ToUpper(payload.AWB),
			Metadata:  payload.Metadata,
			Raw:       trimmed,
		}, nil

	default:
		// Absence of a type field implies a shipment payload keyed by awb.
		if payload.AWB == "" {
			return Token{}, newValidationError("invalid scan payload structure")
		}
		if !awbPattern.MatchString(payload.AWB) {
			return Token{}, newValidationError("invalid AWB format in payload")
		}
		return Token{
			Type:     TypeShipment,
			AWB:      strings.ToUpper(payload.AWB),
			Metadata: payload.Metadata,
			Raw:      trimmed,
		}, nil
	}
}

// IsValidAWB reports whether code matches the carrier AWB grammar.
func IsValidAWB(code string) bool {
	return awbPattern.MatchString(code)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
