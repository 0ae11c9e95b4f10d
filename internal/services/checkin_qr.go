package services

import (
	"fmt"

	"github.com/skip2/go-qrcode"
	dm "wayfarer/internal/models/domain_models"
	"wayfarer/pkg/utils"
)

const qrSize = 256

// CheckInQRPayload is what the QR encodes; staff scanners split on "|".
func CheckInQRPayload(rec dm.CheckInRecord) string {
	return fmt.Sprintf("wayfarer-checkin|%s|%s|%s", rec.Code, rec.PointID, utils.FormatRFC3339Local(rec.Timestamp))
}

func RenderCheckInQR(rec dm.CheckInRecord) ([]byte, error) {
	png, err := qrcode.Encode(CheckInQRPayload(rec), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode check-in qr: %w", err)
	}
	return png, nil
}
