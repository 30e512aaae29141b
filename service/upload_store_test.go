package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energy-billing/invoice-reader/dto"
)

func TestUploadStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewUploadStore(dir, 1024, nil)

	path, err := store.Save("fatura.pdf", strings.NewReader("%PDF-1.4 test"))
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, "-fatura.pdf"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))
}

func TestUploadStore_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	store := NewUploadStore(dir, 0, nil)

	path, err := store.Save("../../etc/passwd.pdf", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, "-passwd.pdf"))

	path, err = store.Save("", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "-invoice.pdf"))
}

func TestUploadStore_TooLarge(t *testing.T) {
	dir := t.TempDir()
	store := NewUploadStore(dir, 4, nil)

	_, err := store.Save("big.pdf", strings.NewReader("12345"))
	assert.ErrorIs(t, err, dto.ErrFileTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
