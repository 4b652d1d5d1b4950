package autosig

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Page description for pdfcpu, the image covers the whole page and the page takes the image dimensions
const pdfImportDescription = "pos:full"

// AssemblePDF wraps encoded images into a PDF with one page per image.
func AssemblePDF(images ...[]byte) ([]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no image to assemble into pdf")
	}

	imp, err := api.Import(pdfImportDescription, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pdf import description: %w", err)
	}

	readers := make([]io.Reader, 0, len(images))
	for _, img := range images {
		readers = append(readers, bytes.NewReader(img))
	}

	var buf bytes.Buffer
	if err := api.ImportImages(nil, &buf, readers, imp, nil); err != nil {
		return nil, fmt.Errorf("failed to import images into pdf: %w", err)
	}

	return buf.Bytes(), nil
}
