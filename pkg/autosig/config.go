package autosig

import "encoding/base64"

type Config struct {
	// A path to json where it store font name and path to the font file
	FontMetadataPath string
	// Family to rasterize with, empty or unknown falls back to the embedded Go fonts
	FontFamily string
	// Side of the QR code image in pixels
	QRCodeSize int
	// Rasterization scale, 1 means one image pixel per CSS pixel
	Scale float64
	// Uploaded avatars above this size are rejected
	AvatarMaxBytes int64
	// Uploaded avatars wider or taller than this are scaled down
	AvatarMaxDimension int
}

func NewDefaultConfig() *Config {
	return &Config{
		FontMetadataPath:   "font_metadata.json",
		QRCodeSize:         DefaultQRCodeSize,
		Scale:              2,
		AvatarMaxBytes:     2 << 20,
		AvatarMaxDimension: 256,
	}
}

// Room for the text fields and JSON around an avatar
const requestOverheadBytes = 64 << 10

// MaxRequestBytes bounds a request carrying one avatar, as a multipart upload
// or base64 encoded in a JSON form.
func (c *Config) MaxRequestBytes() int64 {
	return int64(base64.StdEncoding.EncodedLen(int(c.AvatarMaxBytes))) + requestOverheadBytes
}
