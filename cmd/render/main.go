package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/SeakMengs/AutoSig/internal/config"
	"github.com/SeakMengs/AutoSig/internal/env"
	"github.com/SeakMengs/AutoSig/internal/util"
	"github.com/SeakMengs/AutoSig/pkg/autosig"
)

func init() {
	env.LoadEnv(".env")
}

type job struct {
	path string
}

type result struct {
	path  string
	files []string
	err   error
}

func main() {
	formats := flag.String("formats", "html,png,pdf", "comma separated export formats: html, png, pdf, zip")
	outDir := flag.String("out", ".", "output directory")
	includeQR := flag.Bool("qrcode", false, "draw the website QR code in png and pdf exports and write it next to them")
	scale := flag.Float64("scale", 0, "rasterization scale, 0 uses EXPORT_SCALE")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] form.json...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var exportFormats []autosig.Format
	for _, f := range strings.Split(*formats, ",") {
		format, err := autosig.ParseFormat(f)
		if err != nil {
			logger.Fatalf("Invalid -formats: %v", err)
		}
		exportFormats = append(exportFormats, format)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		logger.Fatalf("Failed to create output directory: %v", err)
	}

	sigCfg := cfg.Signature.Autosig()
	fonts, err := autosig.NewFontLoader(sigCfg)
	if err != nil {
		logger.Warnf("Using the embedded %s font: %v", fonts.Name, err)
	}
	exporter := autosig.NewExporter(sigCfg, fonts)
	opts := autosig.ExportOptions{IncludeQRCode: *includeQR, Scale: *scale}

	jobs := make(chan job)
	results := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < util.DetermineWorkers(flag.NArg()); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				files, err := renderForm(exporter, j.path, *outDir, exportFormats, opts)
				results <- result{path: j.path, files: files, err: err}
			}
		}()
	}

	go func() {
		for _, path := range flag.Args() {
			jobs <- job{path: path}
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	failed := 0
	for res := range results {
		if res.err != nil {
			failed++
			logger.Errorw("Failed to render form", "form", res.path, "error", res.err)
			continue
		}
		logger.Infow("Rendered form", "form", res.path, "files", res.files)
	}

	_ = logger.Sync()
	if failed > 0 {
		os.Exit(1)
	}
}

func renderForm(exporter *autosig.Exporter, path, outDir string, formats []autosig.Format, opts autosig.ExportOptions) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var form autosig.SignatureForm
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}

	base := filepath.Base(path)
	var written []string

	write := func(fileName string, data []byte) error {
		out := filepath.Join(outDir, util.SanitizeFileName(fileName))
		if err := os.WriteFile(out, data, 0644); err != nil {
			return err
		}
		written = append(written, out)
		return nil
	}

	for _, format := range formats {
		res, err := exporter.Export(form, format, opts)
		if err != nil {
			return written, err
		}

		name := util.ReplaceExt(base, filepath.Ext(res.FileName))
		if format == autosig.FormatZIP {
			name = util.ReplaceExt(base, "") + "-" + res.FileName
		}
		if err := write(name, res.Data); err != nil {
			return written, err
		}
	}

	if opts.IncludeQRCode && form.HasWebsite() {
		qr, err := exporter.QRCode(form, 0)
		if err != nil {
			return written, err
		}
		if err := write(util.ReplaceExt(base, "")+"-"+qr.FileName, qr.Data); err != nil {
			return written, err
		}
	}

	return written, nil
}
