package autosig

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/tdewolff/canvas"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrEmptyContent      = errors.New("nothing to encode")
)

type Format string

const (
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatZIP  Format = "zip"
)

const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypePNG  = "image/png"
	ContentTypePDF  = "application/pdf"
	ContentTypeZIP  = "application/zip"
)

const (
	FileNameHTML   = "signature.html"
	FileNamePNG    = "signature.png"
	FileNamePDF    = "signature.pdf"
	FileNameQRCode = "qrcode.png"
)

const bundleIDLength = 10

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatPNG, FormatPDF, FormatZIP:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

type ExportOptions struct {
	IncludeQRCode bool    `json:"includeQRCode" form:"includeQRCode"`
	Scale         float64 `json:"scale" form:"scale" binding:"omitempty,gte=0.5,lte=4"`
}

type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Exporter turns a form into downloadable files. It holds no per-request
// state and is safe for concurrent use.
type Exporter struct {
	cfg        *Config
	rasterizer *Rasterizer
}

func NewExporter(cfg *Config, fonts *FontLoader) *Exporter {
	return &Exporter{
		cfg:        cfg,
		rasterizer: NewRasterizer(fonts, cfg),
	}
}

func (e *Exporter) Config() *Config {
	return e.cfg
}

func (e *Exporter) Export(form SignatureForm, format Format, opts ExportOptions) (*ExportResult, error) {
	switch format {
	case FormatHTML:
		return e.HTML(form), nil
	case FormatPNG:
		return e.PNG(form, opts)
	case FormatPDF:
		return e.PDF(form, opts)
	case FormatZIP:
		return e.Bundle(form, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (e *Exporter) HTML(form SignatureForm) *ExportResult {
	return &ExportResult{
		FileName:    FileNameHTML,
		ContentType: ContentTypeHTML,
		Data:        []byte(RenderDocument(form)),
	}
}

func (e *Exporter) PNG(form SignatureForm, opts ExportOptions) (*ExportResult, error) {
	rasterOpts := RasterOptions{Scale: opts.Scale}
	if opts.IncludeQRCode && form.HasWebsite() {
		view := newSignatureView(form)
		qr, err := GenerateQRCodeImage(form.Website, e.cfg.QRCodeSize, canvas.Hex(view.TextColor), canvas.Hex(view.BackgroundColor))
		if err != nil {
			return nil, err
		}
		rasterOpts.QRCode = qr
	}

	img, err := e.rasterizer.Rasterize(form, rasterOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize signature: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	return &ExportResult{
		FileName:    FileNamePNG,
		ContentType: ContentTypePNG,
		Data:        buf.Bytes(),
	}, nil
}

func (e *Exporter) PDF(form SignatureForm, opts ExportOptions) (*ExportResult, error) {
	pngResult, err := e.PNG(form, opts)
	if err != nil {
		return nil, err
	}
	return e.pdfFromPNG(pngResult.Data)
}

func (e *Exporter) pdfFromPNG(data []byte) (*ExportResult, error) {
	pdf, err := AssemblePDF(data)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		FileName:    FileNamePDF,
		ContentType: ContentTypePDF,
		Data:        pdf,
	}, nil
}

// QRCode encodes the form website, ErrEmptyContent when there is none.
func (e *Exporter) QRCode(form SignatureForm, size int) (*ExportResult, error) {
	if size <= 0 {
		size = e.cfg.QRCodeSize
	}

	data, err := GenerateQRCode(form.Website, size)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrEmptyContent
	}

	return &ExportResult{
		FileName:    FileNameQRCode,
		ContentType: ContentTypePNG,
		Data:        data,
	}, nil
}

// Bundle zips every export of the form, the QR code only when a website is set.
func (e *Exporter) Bundle(form SignatureForm, opts ExportOptions) (*ExportResult, error) {
	pngResult, err := e.PNG(form, opts)
	if err != nil {
		return nil, err
	}

	pdfResult, err := e.pdfFromPNG(pngResult.Data)
	if err != nil {
		return nil, err
	}

	files := []BundleFile{
		{Name: FileNameHTML, Data: e.HTML(form).Data},
		{Name: FileNamePNG, Data: pngResult.Data},
		{Name: FileNamePDF, Data: pdfResult.Data},
	}

	qr, err := e.QRCode(form, 0)
	switch {
	case err == nil:
		files = append(files, BundleFile{Name: qr.FileName, Data: qr.Data})
	case !errors.Is(err, ErrEmptyContent):
		return nil, err
	}

	data, err := ZipBytes(files)
	if err != nil {
		return nil, fmt.Errorf("failed to zip signature bundle: %w", err)
	}

	id, err := gonanoid.New(bundleIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate bundle id: %w", err)
	}

	return &ExportResult{
		FileName:    fmt.Sprintf("signature-%s.zip", id),
		ContentType: ContentTypeZIP,
		Data:        data,
	}, nil
}
