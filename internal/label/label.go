// Package label produces the printable label payloads and QR code images.
// Payload shapes match the labels already printed and stuck on shelves; the
// scan parser on the other end depends on them.
package label

import (
	"encoding/json"
	"fmt"
	"time"

	"warehouse-backend/internal/models"

	qrcode "github.com/skip2/go-qrcode"
)

type qrPayload struct {
	ID        uint   `json:"id"`
	Article   string `json:"article"`
	Komponen  string `json:"komponen,omitempty"`
	Location  string `json:"location"`
	Qty       *int   `json:"qty,omitempty"`
	MinStock  *int   `json:"minStock,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Action    string `json:"action,omitempty"`
}

// QRData is the full payload embedded in item QR codes and labels.
func QRData(item *models.Item) string {
	data, _ := json.Marshal(qrPayload{
		ID:        item.ID,
		Article:   item.Article,
		Komponen:  item.Komponen,
		Location:  item.Kolom,
		MinStock:  &item.MinStock,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Action:    "scan_update",
	})
	return string(data)
}

// LabelQRData is the minimal payload used on small printed labels.
func LabelQRData(item *models.Item) string {
	data, _ := json.Marshal(qrPayload{
		ID:       item.ID,
		Article:  item.Article,
		Location: item.Kolom,
	})
	return string(data)
}

// BarcodeData is the fallback code printed under the QR, scannable as a
// letters-then-digits payload.
func BarcodeData(item *models.Item) string {
	return fmt.Sprintf("ITEM%06d", item.ID)
}

// BulkBarcodeData is the variant used on bulk-printed warehouse labels.
func BulkBarcodeData(item *models.Item) string {
	return fmt.Sprintf("WH%06d", item.ID)
}

// EncodePNG renders the payload as a QR PNG. High error correction for
// stand-alone codes, medium for the denser label variant.
func EncodePNG(data string, level qrcode.RecoveryLevel, size int) ([]byte, error) {
	return qrcode.Encode(data, level, size)
}
