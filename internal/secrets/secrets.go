// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file in the directory is one secret: the filename is the key name
// and the trimmed file contents are the value.
//
// Supported key file: openai-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads every file in dir into a key-to-value map. A missing
// directory is not an error; Load returns an empty map. Unreadable files
// produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	loaded := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			loaded[entry.Name()] = value
		}
	}

	return loaded, nil
}

// APIKey resolves the chat API key. The OPENAI_API_KEY environment
// variable wins; the openai-api-key secret file is the fallback. An empty
// result is not an error here — the chat backend surfaces the absence on
// its first call.
func APIKey(loaded map[string]string) string {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		return v
	}
	return loaded["openai-api-key"]
}
