package autosig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func writeTestFonts(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string][]byte{
		"Go-Regular.ttf": goregular.TTF,
		"Go-Bold.TTF":    gobold.TTF,
		"readme.txt":     []byte("not a font"),
		"broken.otf":     []byte("not a font either"),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestScanFontDir(t *testing.T) {
	dir := writeTestFonts(t)

	fonts, err := ScanFontDir(dir)
	if err != nil {
		t.Fatalf("ScanFontDir failed: %v", err)
	}
	if len(fonts) != 2 {
		t.Fatalf("expected 2 fonts, got %d: %+v", len(fonts), fonts)
	}

	weights := map[FontWeight]bool{}
	for _, f := range fonts {
		if f.Name != "Go" {
			t.Errorf("expected family Go, got %q", f.Name)
		}
		weights[f.Weight] = true
	}
	if !weights[FontWeightRegular] || !weights[FontWeightBold] {
		t.Errorf("expected regular and bold weights, got %v", weights)
	}
}

func TestFontLoader(t *testing.T) {
	dir := writeTestFonts(t)
	fonts, err := ScanFontDir(dir)
	if err != nil {
		t.Fatalf("ScanFontDir failed: %v", err)
	}

	data, err := json.Marshal(fonts)
	if err != nil {
		t.Fatalf("failed to marshal font metadata: %v", err)
	}
	metaPath := filepath.Join(dir, "font_metadata.json")
	if err := os.WriteFile(metaPath, data, 0644); err != nil {
		t.Fatalf("failed to write font metadata: %v", err)
	}

	available, err := GetAvailableFonts(metaPath)
	if err != nil {
		t.Fatalf("GetAvailableFonts failed: %v", err)
	}
	if len(available) != 2 {
		t.Errorf("expected 2 available fonts, got %d", len(available))
	}

	tests := []struct {
		name      string
		cfg       Config
		expectErr bool
	}{
		{name: "configured family", cfg: Config{FontMetadataPath: metaPath, FontFamily: "Go"}},
		{name: "embedded fallback", cfg: Config{FontMetadataPath: metaPath}},
		{name: "unknown family", cfg: Config{FontMetadataPath: metaPath, FontFamily: "Nope"}, expectErr: true},
		{name: "missing metadata", cfg: Config{FontMetadataPath: filepath.Join(dir, "missing.json"), FontFamily: "Go"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, err := NewFontLoader(&tt.cfg)
			if tt.expectErr != (err != nil) {
				t.Errorf("expected error %v, got %v", tt.expectErr, err)
			}
			if loader == nil {
				t.Fatal("expected a usable loader even on error")
			}

			family, err := loader.Family()
			if err != nil {
				t.Fatalf("Family failed: %v", err)
			}
			if family == nil {
				t.Error("Family returned nil")
			}
		})
	}
}
