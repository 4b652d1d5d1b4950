package autosig

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

type FontWeight string

const (
	FontWeightRegular FontWeight = "regular"
	FontWeightBold    FontWeight = "bold"
)

func (w FontWeight) canvasStyle() canvas.FontStyle {
	if w == FontWeightBold {
		return canvas.FontBold
	}
	return canvas.FontRegular
}

type FontMetadata struct {
	Name   string     `json:"name"`
	Path   string     `json:"path"`
	Weight FontWeight `json:"weight,omitempty"`
}

func getFontMetadataByPath(fontPath string) (*FontMetadata, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	font, err := sfnt.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	name, err := font.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return nil, fmt.Errorf("retrieving font name: %w", err)
	}

	weight := FontWeightRegular
	if sub, err := font.Name(nil, sfnt.NameIDSubfamily); err == nil && strings.Contains(strings.ToLower(sub), "bold") {
		weight = FontWeightBold
	}

	return &FontMetadata{
		Name:   name,
		Path:   fontPath,
		Weight: weight,
	}, nil
}

// Scan through the directory to process .ttf and .otf files.
func ScanFontDir(dir string) ([]FontMetadata, error) {
	var fonts []FontMetadata

	err := filepath.Walk(dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(info.Name()))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}

		meta, err := getFontMetadataByPath(path)
		if err != nil {
			log.Printf("Skipping %q: %v", path, err)
			return nil
		}

		fonts = append(fonts, *meta)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fonts, nil
}

// List the available font family and its path
func GetAvailableFonts(path string) ([]*FontMetadata, error) {
	var fonts []*FontMetadata

	data, err := os.ReadFile(path)
	if err != nil {
		return fonts, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &fonts); err != nil {
		return fonts, fmt.Errorf("unmarshalling %s: %w", path, err)
	}

	return fonts, nil
}

// FontLoader keeps the raw font files of one family in memory. Each call to
// Family parses them into a new canvas family, so concurrent rasterizations
// never share one.
type FontLoader struct {
	Name    string
	regular []byte
	bold    []byte
}

// NewFontLoader loads cfg.FontFamily from the font metadata file. When the
// family is not configured or cannot be loaded it uses the Go fonts.
func NewFontLoader(cfg *Config) (*FontLoader, error) {
	fallback := &FontLoader{Name: "Go", regular: goregular.TTF, bold: gobold.TTF}

	if cfg.FontFamily == "" {
		return fallback, nil
	}

	fonts, err := GetAvailableFonts(cfg.FontMetadataPath)
	if err != nil {
		return fallback, err
	}

	fl := &FontLoader{Name: cfg.FontFamily}
	for _, font := range fonts {
		if font.Name != cfg.FontFamily {
			continue
		}

		data, err := os.ReadFile(font.Path)
		if err != nil {
			return fallback, fmt.Errorf("failed to read font file %s: %w", font.Path, err)
		}

		if font.Weight == FontWeightBold {
			fl.bold = data
		} else if fl.regular == nil {
			fl.regular = data
		}
	}

	if fl.regular == nil {
		return fallback, fmt.Errorf("font %s not found in %s", cfg.FontFamily, cfg.FontMetadataPath)
	}
	if fl.bold == nil {
		fl.bold = fl.regular
	}

	return fl, nil
}

func (fl *FontLoader) Family() (*canvas.FontFamily, error) {
	family := canvas.NewFontFamily(fl.Name)
	if err := family.LoadFont(fl.regular, 0, FontWeightRegular.canvasStyle()); err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}
	if err := family.LoadFont(fl.bold, 0, FontWeightBold.canvasStyle()); err != nil {
		return nil, fmt.Errorf("failed to load bold font: %w", err)
	}
	return family, nil
}
