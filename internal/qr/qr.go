package qr

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// LabelPayload is the JSON embedded in an item's QR label.
type LabelPayload struct {
	ItemID     string `json:"itemId"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	ExpiryDate string `json:"expiryDate"`
	AddedBy    string `json:"addedBy"`
}

// DataURL renders the payload as a 256px PNG QR code and returns it as a
// data URL suitable for an <img> src.
func DataURL(payload LabelPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal QR payload: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
