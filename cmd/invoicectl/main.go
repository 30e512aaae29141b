// Command invoicectl extracts energy invoice data from local PDFs.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/energy-billing/invoice-reader/config"
	"github.com/energy-billing/invoice-reader/service"
	"github.com/energy-billing/invoice-reader/utils"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type deps struct {
	pdf      service.PDFProcessor
	invoices *service.InvoiceService
	exporter *service.ExportService
}

func newApp(out io.Writer) *cli.App {
	var d deps

	return &cli.App{
		Name:  "invoicectl",
		Usage: "read energy invoice PDFs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "password", Usage: "password for encrypted PDFs", EnvVars: []string{"INVOICE_PDF_PASSWORD"}},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := config.NewLogger(cfg.Log, c.App.ErrWriter)
			d.pdf = service.NewPDFProcessor(cfg.PDF.Validate, logger)
			d.invoices = service.NewInvoiceService(d.pdf, utils.NewInvoiceParser(cfg.Layout, logger), cfg.PDF.Password, logger)
			d.exporter = service.NewExportService(logger)
			return nil
		},
		Writer:    out,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "print the extracted invoice as JSON",
				ArgsUsage: "<file.pdf>",
				Action: func(c *cli.Context) error {
					path, err := fileArg(c)
					if err != nil {
						return err
					}
					result := d.invoices.ExtractInvoiceData(path, c.String("password"))
					enc := json.NewEncoder(c.App.Writer)
					enc.SetIndent("", "    ")
					enc.SetEscapeHTML(false)
					if err := enc.Encode(result); err != nil {
						return err
					}
					if !result.OK() {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
			{
				Name:      "export",
				Usage:     "write the extracted invoice as an XLSX workbook",
				ArgsUsage: "<file.pdf>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output workbook", Required: true},
				},
				Action: func(c *cli.Context) error {
					path, err := fileArg(c)
					if err != nil {
						return err
					}
					result := d.invoices.ExtractInvoiceData(path, c.String("password"))
					if !result.OK() {
						return cli.Exit(result.Err, 1)
					}
					body, err := d.exporter.ExportXLSX(result.Invoice)
					if err != nil {
						return err
					}
					if err := os.WriteFile(c.String("out"), body, 0o644); err != nil {
						return fmt.Errorf("failed to write workbook: %w", err)
					}
					fmt.Fprintf(c.App.Writer, "wrote %s\n", c.String("out"))
					return nil
				},
			},
			{
				Name:      "info",
				Usage:     "print the page count",
				ArgsUsage: "<file.pdf>",
				Action: func(c *cli.Context) error {
					path, err := fileArg(c)
					if err != nil {
						return err
					}
					n, err := d.pdf.PageCount(path)
					if err != nil {
						return cli.Exit(err.Error(), 1)
					}
					fmt.Fprintf(c.App.Writer, "%s: %d pages\n", path, n)
					return nil
				},
			},
		},
	}
}

func fileArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.Exit("expected exactly one PDF path", 2)
	}
	return c.Args().First(), nil
}
