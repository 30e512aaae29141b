package service

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/unicode/norm"

	"github.com/energy-billing/invoice-reader/dto"
)

// PageMarker precedes the text of every page; %d is the 1-based page number.
const PageMarker = "--- Page %d ---"

type PDFProcessor interface {
	// ExtractText returns the text of every page, each preceded by "\n" + PageMarker + "\n".
	ExtractText(path, password string) (string, error)
	PageCount(path string) (int, error)
}

type pdfProcessor struct {
	validate bool
	log      *slog.Logger
}

// NewPDFProcessor returns a processor backed by ledongthuc/pdf for text and
// pdfcpu for validation and decryption. With validate set, files that fail
// pdfcpu's relaxed validation are rejected before any text is read.
func NewPDFProcessor(validate bool, log *slog.Logger) PDFProcessor {
	if log == nil {
		log = slog.Default()
	}
	return &pdfProcessor{validate: validate, log: log}
}

func (p *pdfProcessor) ExtractText(path, password string) (string, error) {
	if err := checkExists(path); err != nil {
		return "", err
	}

	src := path
	if password != "" {
		encrypted, err := isEncrypted(path, password)
		if err != nil {
			return "", &dto.ExtractionError{Path: path, Cause: err}
		}
		if encrypted {
			decrypted, cleanup, err := decryptToTemp(path, password)
			if err != nil {
				return "", &dto.ExtractionError{Path: path, Cause: err}
			}
			defer cleanup()
			src = decrypted
		} else {
			p.log.Debug("password ignored for unencrypted pdf", "path", path)
		}
	}

	if p.validate {
		if err := api.ValidateFile(src, relaxedConfig()); err != nil {
			return "", &dto.ExtractionError{Path: path, Cause: fmt.Errorf("validate: %w", err)}
		}
	}

	text, pages, err := readPages(src)
	if err != nil {
		return "", &dto.ExtractionError{Path: path, Cause: err}
	}

	p.log.Debug("pdf text extracted", "path", path, "pages", pages, "chars", len(text))
	return norm.NFC.String(text), nil
}

func (p *pdfProcessor) PageCount(path string) (int, error) {
	if err := checkExists(path); err != nil {
		return 0, err
	}
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, &dto.ExtractionError{Path: path, Cause: err}
	}
	return n, nil
}

func checkExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dto.ErrFileNotFound
		}
		return &dto.ExtractionError{Path: path, Cause: err}
	}
	return nil
}

// readPages opens path, concatenates the page texts and closes the file
// before returning. ledongthuc/pdf panics on some malformed inputs, so the
// panic is turned into an error here.
func readPages(path string) (text string, pages int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	defer func() {
		if r := recover(); r != nil {
			text, pages, err = "", 0, fmt.Errorf("pdf reader: %v", r)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return "", 0, err
	}

	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", 0, err
	}

	var b strings.Builder
	pages = r.NumPage()
	for i := 1; i <= pages; i++ {
		var pageText string
		page := r.Page(i)
		if !page.V.IsNull() {
			pageText, err = page.GetPlainText(nil)
			if err != nil {
				return "", 0, fmt.Errorf("page %d: %w", i, err)
			}
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf(PageMarker, i))
		b.WriteString("\n")
		b.WriteString(pageText)
	}
	return b.String(), pages, nil
}

// isEncrypted reads the cross reference table of path with password and
// reports whether the file carries an Encrypt dictionary. A wrong password for
// an encrypted file is an error.
func isEncrypted(path, password string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	conf := relaxedConfig()
	conf.UserPW = password
	conf.OwnerPW = password

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return false, fmt.Errorf("read: %w", err)
	}
	return ctx.Encrypt != nil, nil
}

// decryptToTemp writes a decrypted copy of path to a temp file. The returned
// cleanup removes it.
func decryptToTemp(path, password string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "invoice-decrypted-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp.Close()
	cleanup := func() { os.Remove(tmp.Name()) }

	conf := relaxedConfig()
	conf.UserPW = password
	conf.OwnerPW = password

	if err := api.DecryptFile(path, tmp.Name(), conf); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("decrypt: %w", err)
	}
	return tmp.Name(), cleanup, nil
}

func relaxedConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}
