package service

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energy-billing/invoice-reader/dto"
)

func TestExtractText_MarksEveryPage(t *testing.T) {
	path := writePDF(t,
		[]string{"DISTRIBUIDORA", "FIRSTPAGE"},
		[]string{"SECONDPAGE"},
	)

	text, err := NewPDFProcessor(false, nil).ExtractText(path, "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "\n--- Page 1 ---\n"), "text starts with the first page marker")
	first := strings.Index(text, "FIRSTPAGE")
	marker := strings.Index(text, "\n--- Page 2 ---\n")
	second := strings.Index(text, "SECONDPAGE")
	require.True(t, first > 0)
	require.True(t, marker > 0)
	assert.Less(t, first, marker)
	assert.Less(t, marker, second)
	assert.NotContains(t, text, "--- Page 3 ---")
}

func TestExtractText_BlankPageStillMarked(t *testing.T) {
	path := writePDF(t, []string{"ONLYPAGE"}, nil)

	text, err := NewPDFProcessor(false, nil).ExtractText(path, "")
	require.NoError(t, err)

	assert.Contains(t, text, "ONLYPAGE")
	assert.Contains(t, text, "\n--- Page 2 ---\n")
}

func TestExtractText_Validated(t *testing.T) {
	path := writePDF(t, []string{"VALIDPDF"})

	text, err := NewPDFProcessor(true, nil).ExtractText(path, "")
	require.NoError(t, err)
	assert.Contains(t, text, "VALIDPDF")
}

func TestExtractText_NotFound(t *testing.T) {
	_, err := NewPDFProcessor(false, nil).ExtractText(filepath.Join(t.TempDir(), "missing.pdf"), "")

	assert.ErrorIs(t, err, dto.ErrFileNotFound)
}

func TestExtractText_Corrupt(t *testing.T) {
	path := writeFile(t, "broken.pdf", []byte("this is not a pdf"))

	for _, validate := range []bool{false, true} {
		_, err := NewPDFProcessor(validate, nil).ExtractText(path, "")

		var extractErr *dto.ExtractionError
		require.True(t, errors.As(err, &extractErr), "validate=%v: %v", validate, err)
		assert.Equal(t, path, extractErr.Path)
		assert.Error(t, extractErr.Cause)
		assert.False(t, errors.Is(err, dto.ErrFileNotFound))
	}
}

func TestExtractText_PasswordOnPlainFile(t *testing.T) {
	path := writePDF(t, []string{"PLAIN"})

	text, err := NewPDFProcessor(false, nil).ExtractText(path, "secret")
	require.NoError(t, err)
	assert.Contains(t, text, "PLAIN")
}

func TestExtractText_PasswordOnCorruptFile(t *testing.T) {
	path := writeFile(t, "broken.pdf", []byte("this is not a pdf"))

	_, err := NewPDFProcessor(false, nil).ExtractText(path, "secret")

	var extractErr *dto.ExtractionError
	assert.True(t, errors.As(err, &extractErr))
}

func TestPageCount(t *testing.T) {
	path := writePDF(t, []string{"A"}, []string{"B"}, []string{"C"})

	n, err := NewPDFProcessor(false, nil).PageCount(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = NewPDFProcessor(false, nil).PageCount(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorIs(t, err, dto.ErrFileNotFound)
}
