package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractionResult_MarshalRecord(t *testing.T) {
	record := NewInvoiceRecord("/tmp/fatura.pdf")
	record.ConsumerUnit = "UC 123"

	out, err := json.Marshal(ExtractionResult{Invoice: record})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "/tmp/fatura.pdf", got["arquivo"])
	assert.Equal(t, "UC 123", got["unidadeConsumo"])
	assert.Equal(t, []any{}, got["itens"])
	assert.Equal(t, 0.0, got["valorTotal"])
	assert.NotContains(t, got, "erro")
}

func TestExtractionResult_MarshalError(t *testing.T) {
	res := ExtractionResult{Err: "File not found", Kind: KindNotFound}

	out, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"erro":"File not found"}`, string(out))
	assert.False(t, res.OK())
}

func TestLineItem_JSONKeys(t *testing.T) {
	out, err := json.Marshal(LineItem{Description: "ENERGIA", Unit: UnitKWH, Quantity: 100, Value: 84.3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"item":"ENERGIA","unidade":"KWH","quantidade":100,"valor":84.3}`, string(out))
}

func TestExtractionError_Unwrap(t *testing.T) {
	cause := errors.New("bad xref")
	err := error(&ExtractionError{Path: "a.pdf", Cause: cause})

	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "extract a.pdf: bad xref")
}

func TestProcessPDFRequest_Validate(t *testing.T) {
	ok := ProcessPDFRequest{FilePath: "a.pdf"}
	blank := ProcessPDFRequest{FilePath: "  "}

	assert.NoError(t, ok.Validate())
	assert.Error(t, blank.Validate())
}
