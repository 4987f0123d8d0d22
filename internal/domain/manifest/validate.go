package manifest

import (
	"fmt"

	"cargo-backoffice/internal/domain/shipment"
)

// Rejection codes surfaced verbatim to callers so operator feedback can
// render a specific message per rule.
const (
	CodeManifestClosed      = "MANIFEST_CLOSED"
	CodeDestinationMismatch = "DESTINATION_MISMATCH"
	CodeInvalidStatus       = "INVALID_STATUS"
	CodeCODExcluded         = "COD_EXCLUDED"
)

// RuleViolation is a business-rule rejection of an attach attempt.
// It is a decision, not a transport failure: retrying the same input
// rejects again until the operator changes the rules or the shipment.
type RuleViolation struct {
	Code    string
	Message string
}

func (v *RuleViolation) Error() string {
	return v.Code + ": " + v.Message
}

// ValidateOptions selects which attach rules apply. The zero value
// disables both checks; use DefaultValidateOptions for the usual case.
type ValidateOptions struct {
	ValidateDestination bool
	ValidateStatus      bool
}

func DefaultValidateOptions() ValidateOptions {
	return ValidateOptions{ValidateDestination: true, ValidateStatus: true}
}

// OptionsFromRules maps a session rule configuration onto the validation
// option pair. ExcludeCOD is applied by the attacher before persisting.
func OptionsFromRules(r Rules) ValidateOptions {
	return ValidateOptions{
		ValidateDestination: r.MatchDestination,
		ValidateStatus:      r.OnlyReady,
	}
}

// ValidateAttach decides whether s may be attached to m. Pure: no I/O,
// no mutation. Checks short-circuit in order: manifest editability,
// destination match, shipment readiness. A nil return means admissible.
func ValidateAttach(s *shipment.Snapshot, m *Snapshot, opts ValidateOptions) *RuleViolation {
	if !m.Status.Editable() {
		return &RuleViolation{
			Code:    CodeManifestClosed,
			Message: "cannot add items to a closed manifest",
		}
	}

	if opts.ValidateDestination && s.DestinationHubID != m.ToHubID {
		return &RuleViolation{
			Code:    CodeDestinationMismatch,
			Message: "shipment destination does not match manifest destination",
		}
	}

	if opts.ValidateStatus && !shipment.ReadyForManifest(s.Status) {
		return &RuleViolation{
			Code:    CodeInvalidStatus,
			Message: fmt.Sprintf("shipment status is not eligible for manifesting: %s", s.Status),
		}
	}

	return nil
}
