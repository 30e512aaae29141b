package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/energy-billing/invoice-reader/dto"
)

const (
	invoiceSheet = "Fatura"
	itemsSheet   = "Itens"
)

// ExportService renders extracted invoices as XLSX workbooks.
type ExportService struct {
	log *slog.Logger
}

func NewExportService(log *slog.Logger) *ExportService {
	if log == nil {
		log = slog.Default()
	}
	return &ExportService{log: log}
}

// ExportXLSX returns a workbook with the invoice header on one sheet and the
// line items, followed by a total row, on another.
func (s *ExportService) ExportXLSX(record *dto.InvoiceRecord) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	header := [][2]any{
		{"Arquivo", record.SourcePath},
		{"Unidade Consumo", record.ConsumerUnit},
		{"Referência", record.ReferencePeriod},
		{"Vencimento", record.DueDate},
		{"Data Leitura Anterior", record.PreviousReadingDate},
		{"Data Leitura Atual", record.CurrentReadingDate},
		{"Data Leitura Próxima", record.NextReadingDate},
		{"Dias Lidos", record.DaysRead},
		{"Medidor", record.MeterID},
		{"Leitura Anterior", record.PreviousReading},
		{"Leitura Atual", record.CurrentReading},
		{"Total Apurado", record.TotalMeasured},
		{"Valor Total", record.TotalValue},
	}
	for i, kv := range header {
		if err := writeRow(f, invoiceSheet, i+1, kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(invoiceSheet, "A1", fmt.Sprintf("A%d", len(header)), bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(invoiceSheet, "A", "A", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(invoiceSheet, "B", "B", 40); err != nil {
		return nil, err
	}

	if err := writeRow(f, itemsSheet, 1, "Item", "Unidade", "Quantidade", "Valor"); err != nil {
		return nil, err
	}
	row := 2
	for _, item := range record.LineItems {
		if err := writeRow(f, itemsSheet, row, item.Description, item.Unit, item.Quantity, item.Value); err != nil {
			return nil, err
		}
		row++
	}
	if err := writeRow(f, itemsSheet, row, "Total", "", "", record.TotalValue); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(itemsSheet, "A1", "D1", bold); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(itemsSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(itemsSheet, "A", "A", 40); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice exported", "path", record.SourcePath, "items", len(record.LineItems), "took", time.Since(start))
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
