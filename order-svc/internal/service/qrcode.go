package service

import (
	"strings"

	"github.com/skip2/go-qrcode"
)

type DefaultQRGenerator struct {
	BaseURL string
}

// Generate renders the customer scan link of a table as a PNG.
func (g DefaultQRGenerator) Generate(qrCode string) ([]byte, error) {
	return qrcode.Encode(g.ScanURL(qrCode), qrcode.Medium, 256)
}

func (g DefaultQRGenerator) ScanURL(qrCode string) string {
	return strings.TrimRight(g.BaseURL, "/") + "/t/" + qrCode
}
