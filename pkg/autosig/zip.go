package autosig

import (
	"archive/zip"
	"bytes"
	"time"
)

type BundleFile struct {
	Name string
	Data []byte
}

func addBytesToZip(archive *zip.Writer, file BundleFile, modified time.Time) error {
	header := &zip.FileHeader{
		Name:     file.Name,
		Method:   zip.Deflate,
		Modified: modified,
	}

	writer, err := archive.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = writer.Write(file.Data)
	return err
}

// Zip files in memory, empty files are skipped
func ZipBytes(files []BundleFile) ([]byte, error) {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	now := time.Now()

	for _, file := range files {
		if len(file.Data) == 0 {
			continue
		}
		if err := addBytesToZip(archive, file, now); err != nil {
			archive.Close()
			return nil, err
		}
	}

	if err := archive.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
