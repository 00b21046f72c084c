package backup

import (
	"archive/zip"
	"fmt"
	"os"
	"time"
)

// zipFile writes a zip archive at outputPath containing a single
// file with the given name, content and modification time.
func zipFile(outputPath, name string, content []byte, modTime time.Time) (err error) {
	const perm = 0o600
	file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return fmt.Errorf("creating zip file: %w", err)
	}

	writer := zip.NewWriter(file)
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modTime,
	}
	fileWriter, err := writer.CreateHeader(header)
	if err != nil {
		_ = writer.Close()
		_ = file.Close()
		return fmt.Errorf("creating zip entry: %w", err)
	}

	_, err = fileWriter.Write(content)
	if err != nil {
		_ = writer.Close()
		_ = file.Close()
		return fmt.Errorf("writing zip entry: %w", err)
	}

	err = writer.Close()
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("closing zip writer: %w", err)
	}

	return file.Close()
}
