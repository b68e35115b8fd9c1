package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billsight/internal/domain"
	"billsight/internal/parser"
)

func TestDecodeResponse_Valid(t *testing.T) {
	out, err := parser.DecodeResponse("m", []byte(`{"a":1}`))

	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(out))
}

func TestDecodeResponse_Invalid(t *testing.T) {
	_, err := parser.DecodeResponse("amazon.titan-text-lite-v1", []byte(strings.Repeat("x", 500)))

	assert.ErrorIs(t, err, domain.ErrInvalidModelOutput)
	assert.Contains(t, err.Error(), "amazon.titan-text-lite-v1")
	assert.Less(t, len(err.Error()), 400)
}
