package dto

import "encoding/json"

// UnitKWH is the unit token that marks an energy line item.
const UnitKWH = "KWH"

// LineItem is one billed consumption entry.
type LineItem struct {
	Description string  `json:"item"`
	Unit        string  `json:"unidade"`
	Quantity    float64 `json:"quantidade"`
	Value       float64 `json:"valor"`
}

// InvoiceRecord holds the fields extracted from a single invoice PDF.
type InvoiceRecord struct {
	SourcePath          string     `json:"arquivo"`
	ConsumerUnit        string     `json:"unidadeConsumo"`
	ReferencePeriod     string     `json:"referencia"`
	DueDate             string     `json:"vencimento"`
	PreviousReadingDate string     `json:"data_leitura_anterior"`
	CurrentReadingDate  string     `json:"data_leitura_atual"`
	NextReadingDate     string     `json:"data_leitura_proxima"`
	DaysRead            string     `json:"diasLidos"`
	MeterID             string     `json:"medidor"`
	PreviousReading     string     `json:"leituraAnterior"`
	CurrentReading      string     `json:"leituraAtual"`
	TotalMeasured       string     `json:"totalApurado"`
	LineItems           []LineItem `json:"itens"`
	TotalValue          float64    `json:"valorTotal"`
}

// NewInvoiceRecord returns an empty record for path with a non-nil item list.
func NewInvoiceRecord(path string) *InvoiceRecord {
	return &InvoiceRecord{
		SourcePath: path,
		LineItems:  []LineItem{},
	}
}

// ErrorResult is the JSON form of a failed extraction.
type ErrorResult struct {
	Erro string `json:"erro"`
}

type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNotFound
	KindExtraction
)

// ExtractionResult is either a record or an error message, never both.
// Kind classifies the error and is not serialized.
type ExtractionResult struct {
	Invoice *InvoiceRecord
	Err     string
	Kind    ErrorKind
}

// OK reports whether the result carries a record.
func (r ExtractionResult) OK() bool {
	return r.Invoice != nil
}

func (r ExtractionResult) MarshalJSON() ([]byte, error) {
	if r.Invoice != nil {
		return json.Marshal(r.Invoice)
	}
	return json.Marshal(ErrorResult{Erro: r.Err})
}
