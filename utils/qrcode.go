package utils

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// QRCodeSize is the pixel width/height of generated tenant QR codes.
const QRCodeSize = 300

// GenerateTenantQRCode encodes a tenant's public booking-page URL as a PNG
// QR code and returns it as a data URL, ready to render in an <img> tag.
func GenerateTenantQRCode(baseURL, tenantID string) (string, error) {
	if tenantID == "" {
		return "", fmt.Errorf("tenant id is required for QR generation")
	}

	url := fmt.Sprintf("%s/tenant/%s", baseURL, tenantID)
	png, err := qrcode.Encode(url, qrcode.High, QRCodeSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
