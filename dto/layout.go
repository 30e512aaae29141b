package dto

// Span is a half-open range of character offsets [Start, End).
type Span struct {
	Start int `mapstructure:"start"`
	End   int `mapstructure:"end"`
}

// Layout describes where an invoice template keeps each field.
// Line indices are zero-based and count the page markers inserted by the extractor.
type Layout struct {
	ItemPrefixes  []string `mapstructure:"item_prefixes"`
	UnitToken     string   `mapstructure:"unit_token"`
	CodeLookback  int      `mapstructure:"code_lookback"`
	QuantityToken int      `mapstructure:"quantity_token"`
	ValueToken    int      `mapstructure:"value_token"`

	ConsumerUnitLine int `mapstructure:"consumer_unit_line"`

	ReferenceLine   int  `mapstructure:"reference_line"`
	ReferenceMinLen int  `mapstructure:"reference_min_len"`
	Reference       Span `mapstructure:"reference"`
	DueDate         Span `mapstructure:"due_date"`

	ReadingLine         int    `mapstructure:"reading_line"`
	PreviousReadingDate Span   `mapstructure:"previous_reading_date"`
	CurrentReadingDate  Span   `mapstructure:"current_reading_date"`
	DaysRead            Span   `mapstructure:"days_read"`
	NextReadingMarker   string `mapstructure:"next_reading_marker"`
	NextReadingToken    int    `mapstructure:"next_reading_token"`
	NextReadingLen      int    `mapstructure:"next_reading_len"`

	MeterKeywords  []string `mapstructure:"meter_keywords"`
	MeterMinTokens int      `mapstructure:"meter_min_tokens"`
	MeterIDToken   int      `mapstructure:"meter_id_token"`
	MeterPrevToken int      `mapstructure:"meter_previous_token"`
	MeterCurToken  int      `mapstructure:"meter_current_token"`
	MeterTotToken  int      `mapstructure:"meter_total_token"`
}

// DefaultLayout is the template of the distributor invoices the reader was built for.
func DefaultLayout() Layout {
	return Layout{
		ItemPrefixes:  []string{"(0R)", "(0S)", "(2M)", "(2V)"},
		UnitToken:     UnitKWH,
		CodeLookback:  4,
		QuantityToken: 0,
		ValueToken:    2,

		ConsumerUnitLine: 3,

		ReferenceLine:   5,
		ReferenceMinLen: 18,
		Reference:       Span{Start: 0, End: 7},
		DueDate:         Span{Start: 8, End: 18},

		ReadingLine:         10,
		PreviousReadingDate: Span{Start: 0, End: 10},
		CurrentReadingDate:  Span{Start: 11, End: 21},
		DaysRead:            Span{Start: 22, End: 24},
		NextReadingMarker:   "SERIE",
		NextReadingToken:    3,
		NextReadingLen:      10,

		MeterKeywords:  []string{"Energia", "Único"},
		MeterMinTokens: 8,
		MeterIDToken:   0,
		MeterPrevToken: 3,
		MeterCurToken:  4,
		MeterTotToken:  7,
	}
}
