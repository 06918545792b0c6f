// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openai-api-key"), []byte("sk-test-123\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty-key"), []byte("  \n"), 0o600))

	loaded, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "sk-test-123", loaded["openai-api-key"])
	assert.NotContains(t, loaded, ".gitignore")
	assert.NotContains(t, loaded, "empty-key")
}

func TestLoad_MissingDirectory(t *testing.T) {
	loaded, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestAPIKey_EnvWins(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	got := APIKey(map[string]string{"openai-api-key": "sk-from-file"})
	assert.Equal(t, "sk-from-env", got)
}

func TestAPIKey_FileFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	got := APIKey(map[string]string{"openai-api-key": "sk-from-file"})
	assert.Equal(t, "sk-from-file", got)
}

func TestAPIKey_AbsentIsEmptyNotFatal(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	assert.Empty(t, APIKey(map[string]string{}))
}
