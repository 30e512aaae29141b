package utils

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/energy-billing/invoice-reader/dto"
)

var errMalformedItem = errors.New("malformed line item")

// InvoiceParser turns the text of an energy invoice into a record.
// It makes a single forward pass; for each line the first matching rule wins:
// line item, fixed line position, meter reading.
type InvoiceParser struct {
	layout dto.Layout
	log    *slog.Logger
}

func NewInvoiceParser(layout dto.Layout, log *slog.Logger) *InvoiceParser {
	if log == nil {
		log = slog.Default()
	}
	return &InvoiceParser{layout: layout, log: log}
}

// ParseInvoice parses text with the default layout.
func ParseInvoice(path, text string) *dto.InvoiceRecord {
	return NewInvoiceParser(dto.DefaultLayout(), nil).Parse(path, text)
}

// Parse builds the record for the document stored at path from its extracted text.
func (p *InvoiceParser) Parse(path, text string) *dto.InvoiceRecord {
	record := dto.NewInvoiceRecord(path)
	var total float64

	for i, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)

		switch {
		case p.isLineItem(line):
			item, err := p.parseLineItem(line)
			if err != nil {
				p.log.Debug("skipping line item", "line", i, "text", line, "error", err)
				continue
			}
			record.LineItems = append(record.LineItems, item)
			total += item.Value

		case i == p.layout.ConsumerUnitLine:
			record.ConsumerUnit = line

		case i == p.layout.ReferenceLine && runeLen(line) >= p.layout.ReferenceMinLen:
			record.ReferencePeriod = substr(line, p.layout.Reference)
			record.DueDate = substr(line, p.layout.DueDate)

		case i == p.layout.ReadingLine:
			p.parseReadingDates(line, record)

		case p.isMeterLine(line):
			p.parseMeter(line, record)
		}
	}

	record.TotalValue = RoundCents(total)
	p.log.Debug("invoice parsed", "path", path, "items", len(record.LineItems), "total", record.TotalValue)
	return record
}

func (p *InvoiceParser) isLineItem(line string) bool {
	if p.layout.UnitToken == "" || !strings.Contains(line, p.layout.UnitToken) {
		return false
	}
	for _, prefix := range p.layout.ItemPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// parseLineItem reads "<description> <code> KWH <quantity> <x> <symbol><value> ...".
// The lookback before the unit token skips the fixed-width code field.
func (p *InvoiceParser) parseLineItem(line string) (dto.LineItem, error) {
	pos := runeIndex(line, p.layout.UnitToken)
	if pos < 0 {
		return dto.LineItem{}, errMalformedItem
	}

	description := strings.TrimSpace(substr(line, dto.Span{Start: 0, End: pos - p.layout.CodeLookback}))
	rest := string([]rune(line)[pos+runeLen(p.layout.UnitToken):])
	cols := strings.Fields(rest)
	if len(cols) <= p.layout.QuantityToken || len(cols) <= p.layout.ValueToken {
		return dto.LineItem{}, fmt.Errorf("%w: %d columns after %s", errMalformedItem, len(cols), p.layout.UnitToken)
	}

	quantity, err := ParseBRNumber(cols[p.layout.QuantityToken])
	if err != nil {
		return dto.LineItem{}, fmt.Errorf("%w: quantity: %v", errMalformedItem, err)
	}

	// first character is the currency or sign symbol
	valueCol := []rune(cols[p.layout.ValueToken])
	value, err := ParseBRNumber(string(valueCol[1:]))
	if err != nil {
		return dto.LineItem{}, fmt.Errorf("%w: value: %v", errMalformedItem, err)
	}

	return dto.LineItem{
		Description: description,
		Unit:        dto.UnitKWH,
		Quantity:    quantity,
		Value:       value,
	}, nil
}

func (p *InvoiceParser) parseReadingDates(line string, record *dto.InvoiceRecord) {
	record.PreviousReadingDate = substr(line, p.layout.PreviousReadingDate)
	record.CurrentReadingDate = substr(line, p.layout.CurrentReadingDate)
	record.DaysRead = substr(line, p.layout.DaysRead)

	if p.layout.NextReadingMarker == "" || !strings.Contains(line, p.layout.NextReadingMarker) {
		return
	}
	cols := strings.Fields(line)
	if len(cols) > p.layout.NextReadingToken {
		record.NextReadingDate = substr(cols[p.layout.NextReadingToken], dto.Span{Start: 0, End: p.layout.NextReadingLen})
	}
}

func (p *InvoiceParser) isMeterLine(line string) bool {
	if len(p.layout.MeterKeywords) == 0 {
		return false
	}
	for _, kw := range p.layout.MeterKeywords {
		if !strings.Contains(line, kw) {
			return false
		}
	}
	return true
}

func (p *InvoiceParser) parseMeter(line string, record *dto.InvoiceRecord) {
	cols := strings.Fields(line)
	if len(cols) < p.layout.MeterMinTokens {
		return
	}
	for _, idx := range []int{p.layout.MeterIDToken, p.layout.MeterPrevToken, p.layout.MeterCurToken, p.layout.MeterTotToken} {
		if idx >= len(cols) {
			return
		}
	}
	record.MeterID = cols[p.layout.MeterIDToken]
	record.PreviousReading = cols[p.layout.MeterPrevToken]
	record.CurrentReading = cols[p.layout.MeterCurToken]
	record.TotalMeasured = cols[p.layout.MeterTotToken]
}

// RoundCents rounds v to two decimal places, halves to even.
func RoundCents(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
