package autosig

import (
	"fmt"
	"image"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
)

/*
 * Attention: tdewolff/canvas uses mm as the unit of measurement. The layout below is computed in CSS px
 * at 72 DPI, so a px is also a pt (the unit of font sizes), and converted to mm only when drawing.
 */

const DPI = 72

const (
	lineHeightFactor  = 1.3
	halfLeadingFactor = (lineHeightFactor - 1) / 2
	qrCodeGap         = 12
	minQRCodeSide     = 64
	minScale          = 0.5
	maxScale          = 4
)

// Converts pixels to millimeters
func pxToMM(px float64) float64 {
	return (px * 25.4) / DPI
}

// Converts millimeters to pixels
func mmToPx(mm float64) float64 {
	return (mm * DPI) / 25.4
}

type textLine struct {
	text    string
	size    float64
	weight  FontWeight
	marginY float64
}

// signatureLayout mirrors the box model of the HTML templates closely enough
// for a bitmap snapshot.
type signatureLayout struct {
	padding     float64
	borderLeft  float64
	avatarWidth float64
	avatarGap   float64
	avatarAbove bool
	uppercase   bool
	lines       []textLine
}

func (l *signatureLayout) add(text string, size float64, weight FontWeight, marginY float64) {
	if text == "" {
		return
	}
	if l.uppercase {
		text = strings.ToUpper(text)
	}
	l.lines = append(l.lines, textLine{text: text, size: size, weight: weight, marginY: marginY})
}

func layoutFor(v signatureView) signatureLayout {
	switch v.Template {
	case TemplateModern:
		l := signatureLayout{padding: 16, borderLeft: 4, avatarWidth: 60, avatarGap: 12}
		l.add(v.Name, 18, FontWeightBold, 0)
		l.add(v.Role, 14, FontWeightRegular, 0)
		l.add(v.Phone, 14, FontWeightRegular, 0)
		l.add(v.Website, 14, FontWeightRegular, 0)
		return l
	case TemplateBold:
		l := signatureLayout{padding: 20, avatarWidth: 100, avatarGap: 10, avatarAbove: true, uppercase: true}
		l.add(v.Name, 20, FontWeightBold, 0)
		l.add(v.Role, 14, FontWeightBold, 4)
		l.add(v.contactLine(), 14, FontWeightBold, 0)
		return l
	default:
		l := signatureLayout{padding: 10, avatarWidth: 80, avatarGap: 10}
		l.add(v.Name, 14, FontWeightBold, 0)
		l.add(v.Role, 14, FontWeightRegular, 0)
		l.add(v.Phone, 14, FontWeightRegular, 0)
		l.add(v.Website, 14, FontWeightRegular, 0)
		return l
	}
}

type RasterOptions struct {
	// Overrides the rasterizer scale when > 0
	Scale float64
	// Drawn to the right of the signature when set
	QRCode image.Image
}

// Rasterizer draws a bitmap snapshot of a signature, the common input of the
// PNG and PDF exports.
type Rasterizer struct {
	fonts *FontLoader
	scale float64
	// avatar limits, the same as for uploads
	avatarMaxBytes     int64
	avatarMaxDimension int
}

func NewRasterizer(fonts *FontLoader, cfg *Config) *Rasterizer {
	return &Rasterizer{
		fonts:              fonts,
		scale:              clampScale(cfg.Scale),
		avatarMaxBytes:     cfg.AvatarMaxBytes,
		avatarMaxDimension: cfg.AvatarMaxDimension,
	}
}

func clampScale(scale float64) float64 {
	if scale <= 0 {
		return 1
	}
	return min(max(scale, minScale), maxScale)
}

type measuredLine struct {
	textLine
	box *canvas.Text
}

func (r *Rasterizer) Rasterize(form SignatureForm, opts RasterOptions) (*image.RGBA, error) {
	view := newSignatureView(form)
	layout := layoutFor(view)

	var avatar image.Image
	if view.Avatar != "" {
		// an avatar that does not decode or is over the limits is left out like
		// any other malformed optional field
		if img, err := DecodeDataURI(string(view.Avatar), r.avatarMaxBytes, r.avatarMaxDimension); err == nil {
			avatar = img
		}
	}

	family, err := r.fonts.Family()
	if err != nil {
		return nil, fmt.Errorf("failed to load font family: %w", err)
	}

	fg := canvas.Hex(view.TextColor)
	bg := canvas.Hex(view.BackgroundColor)

	lines := make([]measuredLine, 0, len(layout.lines))
	var textW, textH float64
	for _, line := range layout.lines {
		face := family.Face(line.size, fg, line.weight.canvasStyle(), canvas.FontNormal)
		box := canvas.NewTextBox(face, line.text, 0, 0, canvas.Left, canvas.Top, 0.0, 0.0)
		width := mmToPx(box.Bounds().W())

		lines = append(lines, measuredLine{textLine: line, box: box})
		textW = max(textW, width)
		textH += line.size*lineHeightFactor + 2*line.marginY
	}

	var avatarW, avatarH float64
	if avatar != nil {
		b := avatar.Bounds()
		avatarW = layout.avatarWidth
		avatarH = avatarW * float64(b.Dy()) / float64(b.Dx())
	}

	var contentW, contentH float64
	if layout.avatarAbove {
		contentW = max(avatarW, textW)
		contentH = avatarH + textH
		if avatar != nil && textH > 0 {
			contentH += layout.avatarGap
		}
	} else {
		contentW = avatarW + textW
		contentH = max(avatarH, textH)
		if avatar != nil && textW > 0 {
			contentW += layout.avatarGap
		}
	}

	var qrSide float64
	if opts.QRCode != nil {
		qrSide = max(contentH, minQRCodeSide)
		if contentW > 0 {
			contentW += qrCodeGap
		}
		contentW += qrSide
		contentH = max(contentH, qrSide)
	}

	width := layout.borderLeft + 2*layout.padding + contentW
	height := 2*layout.padding + contentH

	c := canvas.New(pxToMM(width), pxToMM(height))
	ctx := canvas.NewContext(c)

	ctx.SetFillColor(bg)
	ctx.DrawPath(0, 0, canvas.Rectangle(pxToMM(width), pxToMM(height)))
	if layout.borderLeft > 0 {
		ctx.SetFillColor(fg)
		ctx.DrawPath(0, 0, canvas.Rectangle(pxToMM(layout.borderLeft), pxToMM(height)))
	}

	// Positions below are px from the top-left corner, the canvas origin is bottom-left.
	x := layout.borderLeft + layout.padding
	top := layout.padding
	if avatar != nil {
		drawImage(ctx, avatar, x, top, avatarW, avatarH, height)
		if layout.avatarAbove {
			top += avatarH + layout.avatarGap
		} else {
			x += avatarW + layout.avatarGap
		}
	}

	for _, line := range lines {
		top += line.marginY
		// the text box hangs below its anchor, center it in the line box
		ctx.DrawText(pxToMM(x), pxToMM(height-top-line.size*halfLeadingFactor), line.box)
		top += line.size*lineHeightFactor + line.marginY
	}

	if opts.QRCode != nil {
		drawImage(ctx, opts.QRCode, width-layout.padding-qrSide, layout.padding, qrSide, qrSide, height)
	}

	scale := r.scale
	if opts.Scale > 0 {
		scale = clampScale(opts.Scale)
	}

	return rasterizer.Draw(c, canvas.DPI(DPI*scale), canvas.DefaultColorSpace), nil
}

func drawImage(ctx *canvas.Context, img image.Image, left, top, w, h, canvasHeight float64) {
	dpmm := float64(img.Bounds().Dx()) / pxToMM(w)
	ctx.DrawImage(pxToMM(left), pxToMM(canvasHeight-top-h), img, canvas.DPMM(dpmm))
}
