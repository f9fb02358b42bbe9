package codegen

import (
	"testing"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeControlSurfaceForms(t *testing.T) {
	// Unified, v2 dash-joined and lowercase forms of the same card must
	// collapse to one canonical key.
	forms := []string{
		"MO-C000123AB-001",
		"MOC-000123AB001",
		"mo-c000123ab-001",
		"MOC000123AB001",
	}

	for _, f := range forms {
		got, err := Normalize(f, CodeControl)
		require.NoError(t, err, f)
		assert.Equal(t, "MOC000123AB001", got, f)
	}
}

func TestNormalizeControlLegacyPrefix(t *testing.T) {
	// Pre-region cards carried no region letters.
	got, err := Normalize("C-000123AB001", CodeControl)
	require.NoError(t, err)
	assert.Equal(t, "MOC000123AB001", got)
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := map[string]CodeType{
		"MO-C000123AB-001": CodeControl,
		"C-000123AB001":    CodeControl,
		"00042":            CodeControl,
		"MO-B000123AB":     CodeBatch,
		"moc-482910":       CodePasscode,
	}

	for in, ct := range inputs {
		once, err := Normalize(in, ct)
		require.NoError(t, err, in)
		twice, err := Normalize(once, ct)
		require.NoError(t, err, in)
		assert.Equal(t, once, twice, in)
	}
}

func TestNormalizeSequenceReference(t *testing.T) {
	got, err := Normalize("42", CodeControl)
	require.NoError(t, err)
	assert.Equal(t, "00042", got)

	got, err = Normalize("00042", CodeControl)
	require.NoError(t, err)
	assert.Equal(t, "00042", got)

	_, err = Normalize("123456", CodeControl)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "control", verr.Field)
}

func TestNormalizeRejectsMalformed(t *testing.T) {
	cases := []struct {
		input    string
		codeType CodeType
	}{
		{"", CodeControl},
		{"---", CodeControl},
		{"MOC", CodeControl},       // letters only
		{"MOC.00123", CodeControl}, // illegal character
		{"MO", CodeBatch},          // no digits
		{"MOC12345", CodePasscode}, // wrong length
		{"M1C482910", CodePasscode},
		{"MOC48291A", CodePasscode},
	}

	for _, c := range cases {
		_, err := Normalize(c.input, c.codeType)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr, "%s %s", c.codeType, c.input)
	}
}

func TestNormalizePasscode(t *testing.T) {
	got, err := Normalize(" moc-482910 ", CodePasscode)
	require.NoError(t, err)
	assert.Equal(t, "MOC482910", got)
}
