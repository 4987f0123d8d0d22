package scan

import "errors"

// Type classifies what a scanned token refers to.
type Type string

const (
	TypeShipment Type = "shipment"
	TypeManifest Type = "manifest"
	TypePackage  Type = "package"
)

// Source records how a token entered the system.
type Source string

const (
	SourceCamera  Source = "CAMERA"
	SourceScanner Source = "BARCODE_SCANNER"
	SourceManual  Source = "MANUAL"
)

// Token is a classified, normalized scan input.
type Token struct {
	Type       Type
	AWB        string
	ManifestID string
	ManifestNo string
	PackageID  string
	Route      string
	Metadata   map[string]any
	Raw        string
}

// ValidationError reports a malformed or unrecognized scan input.
// It is always decided locally and never triggers a network call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func newValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidationError reports whether err is a scan input validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
