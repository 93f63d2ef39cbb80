package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func cleanLocalPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("path required")
	}
	return filepath.Clean(path), nil
}

// readLocalFile reads a GitHub App private key off disk, the one local file
// path the CLI accepts (GITHUB_APP_PRIVATE_KEY_PATH).
func readLocalFile(path string) ([]byte, error) {
	path, err := cleanLocalPath(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- local CLI path handling intentionally supports variable paths.
	return os.ReadFile(path)
}
