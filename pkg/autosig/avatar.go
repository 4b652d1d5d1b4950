package autosig

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var (
	ErrAvatarTooLarge   = errors.New("avatar exceeds the upload size limit")
	ErrUnsupportedImage = errors.New("unsupported image")
)

var allowedAvatarTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

type Avatar struct {
	DataURI string `json:"dataUri"`
	MIME    string `json:"mime"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

func detectAvatarType(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	for _, t := range allowedAvatarTypes {
		if mt.Is(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
}

// NormalizeAvatar reads an uploaded image and returns it as a data URI.
// Images larger than maxDimension on either side are scaled down.
func NormalizeAvatar(r io.Reader, maxBytes int64, maxDimension int) (*Avatar, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read avatar: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrAvatarTooLarge
	}

	mime, err := detectAvatarType(data)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	b := img.Bounds()
	if maxDimension > 0 && (b.Dx() > maxDimension || b.Dy() > maxDimension) {
		img = ResizeImage(img, maxDimension)

		var buf bytes.Buffer
		if mime == "image/jpeg" {
			err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
		} else {
			mime = "image/png"
			err = png.Encode(&buf, img)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to encode resized avatar: %w", err)
		}
		data = buf.Bytes()
		b = img.Bounds()
	}

	return &Avatar{
		DataURI: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		MIME:    mime,
		Width:   b.Dx(),
		Height:  b.Dy(),
	}, nil
}

// ResizeImage scales img so its longest side is maxDimension, keeping the
// aspect ratio.
func ResizeImage(img image.Image, maxDimension int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w >= h {
		h = max(h*maxDimension/w, 1)
		w = maxDimension
	} else {
		w = max(w*maxDimension/h, 1)
		h = maxDimension
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// DecodeDataURI decodes an image data URI as produced by NormalizeAvatar.
// Payloads above maxBytes and images wider or taller than maxDimension fail
// with ErrAvatarTooLarge before the pixels are decoded. A limit <= 0 is not
// checked.
func DecodeDataURI(uri string, maxBytes int64, maxDimension int) (image.Image, error) {
	uri = strings.TrimSpace(uri)
	if !IsAvatarDataURI(uri) {
		return nil, fmt.Errorf("%w: not an image data URI", ErrUnsupportedImage)
	}

	_, payload, _ := strings.Cut(uri, ";base64,")
	if maxBytes > 0 && int64(len(payload)) > int64(base64.StdEncoding.EncodedLen(int(maxBytes))) {
		return nil, ErrAvatarTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URI: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if maxDimension > 0 && (cfg.Width > maxDimension || cfg.Height > maxDimension) {
		return nil, fmt.Errorf("%w: %dx%d", ErrAvatarTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return img, nil
}
