package scan

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ManifestQRInput carries the fields printed into a manifest QR label.
type ManifestQRInput struct {
	ID          string
	ManifestNo  string
	FromHubCode string
	ToHubCode   string
}

// GenerateManifestQRPayload produces the version-1 JSON payload encoded
// into manifest QR labels. Parse recovers the same fields.
func GenerateManifestQRPayload(in ManifestQRInput) (string, error) {
	payload := payloadV1{
		V:          payloadVersion,
		Type:       string(TypeManifest),
		ID:         in.ID,
		ManifestNo: in.ManifestNo,
		Route:      fmt.Sprintf("%s-%s", in.FromHubCode, in.ToHubCode),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GenerateShipmentQRPayload produces the version-1 JSON payload encoded
// into shipment labels. The AWB is upper-cased so a round trip through
// Parse yields the normalized code.
func GenerateShipmentQRPayload(awb string) (string, error) {
	payload := payloadV1{
		V:   payloadVersion,
		AWB: strings.ToUpper(awb),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
