package autosig

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultQRCodeSize = 256
	MinQRCodeSize     = 64
	MaxQRCodeSize     = 1024
)

func ClampQRCodeSize(size int) int {
	if size <= 0 {
		return DefaultQRCodeSize
	}
	return min(max(size, MinQRCodeSize), MaxQRCodeSize)
}

// GenerateQRCode encodes content as a PNG QR code. Empty content has no image,
// it returns nil and no error.
func GenerateQRCode(content string, size int) ([]byte, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	png, err := qrcode.Encode(content, qrcode.Medium, ClampQRCodeSize(size))
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// GenerateQRCodeImage is GenerateQRCode for drawing onto a canvas, using the
// signature colors instead of black on white.
func GenerateQRCodeImage(content string, size int, fg, bg color.Color) (image.Image, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	q.ForegroundColor = fg
	q.BackgroundColor = bg

	return q.Image(ClampQRCodeSize(size)), nil
}
