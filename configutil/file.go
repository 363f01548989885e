package configutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// certificateRoot holds one directory per database, so each connection URL
// can point its ssl parameters at stable paths.
const certificateRoot = "/tmp"

// writeDBCertificate stores PEM content for dbName and returns the file path.
// An existing file is overwritten on every start.
func writeDBCertificate(dbName, fileName, pem string) (string, error) {
	dir := filepath.Join(certificateRoot, dbName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create certificate directory for %s: %w", dbName, err)
	}

	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, []byte(pem), 0600); err != nil {
		return "", fmt.Errorf("failed to write %s for %s: %w", fileName, dbName, err)
	}
	return path, nil
}
