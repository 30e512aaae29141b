package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/require"
)

// writePDF renders one page per entry of pages, one text cell per line.
func writePDF(t *testing.T, pages ...[]string) string {
	t.Helper()

	doc := gofpdf.New("P", "mm", "A4", "")
	for _, lines := range pages {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 10)
		for _, line := range lines {
			doc.Cell(0, 6, line)
			doc.Ln(6)
		}
	}

	path := filepath.Join(t.TempDir(), "fatura.pdf")
	require.NoError(t, doc.OutputFileAndClose(path))
	return path
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
