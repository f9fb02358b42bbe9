package codegen

import (
	"fmt"
	"testing"
	"time"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixedGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator()
	require.NoError(t, err)
	g.now = func() time.Time { return time.Unix(1700482910, 0) }
	g.batchSuffix = func() string { return "AB" }
	g.passcodeTail = func() string { return "482910" }
	return g
}

func TestGenerateBatchNumberAuto(t *testing.T) {
	g := newFixedGenerator(t)

	got, err := g.GenerateBatchNumber(domain.ModeAuto, "", "mo")
	require.NoError(t, err)
	assert.Equal(t, "MO-B482910AB", got)

	// Must survive its own normalization.
	_, err = Normalize(got, CodeBatch)
	assert.NoError(t, err)
}

func TestGenerateBatchNumberManual(t *testing.T) {
	g := newFixedGenerator(t)

	got, err := g.GenerateBatchNumber(domain.ModeManual, "mo-b000123ab", "MO")
	require.NoError(t, err)
	assert.Equal(t, "MO-B000123AB", got)

	_, err = g.GenerateBatchNumber(domain.ModeManual, "XX-B000123AB", "MO")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "customInput", verr.Field)
}

func TestGenerateRangeBatchNumber(t *testing.T) {
	g := newFixedGenerator(t)

	got, err := g.GenerateRangeBatchNumber("MO", 101, 150)
	require.NoError(t, err)
	assert.Equal(t, "MO-R0010100150", got)

	_, err = g.GenerateRangeBatchNumber("MO", 150, 101)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestGenerateControlNumbersDistinctWithinBatch(t *testing.T) {
	g := newFixedGenerator(t)

	prefix, err := ControlPrefix("MO-B000123AB")
	require.NoError(t, err)
	assert.Equal(t, "MO-C000123AB", prefix)

	seen := make(map[string]bool)
	for i := 1; i <= 3; i++ {
		cn, err := g.GenerateControlNumber(prefix, i, domain.ModeAuto, "")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("MO-C000123AB-%03d", i), cn)

		key, err := Normalize(cn, CodeControl)
		require.NoError(t, err)
		assert.False(t, seen[key], "duplicate normalized control number %s", key)
		seen[key] = true
	}
}

func TestGenerateControlNumberManual(t *testing.T) {
	g := newFixedGenerator(t)

	got, err := g.GenerateControlNumber("MO-C000123AB", 1, domain.ModeManual, "moc-005000")
	require.NoError(t, err)
	assert.Equal(t, "MOC-005000", got)

	_, err = g.GenerateControlNumber("MO-C000123AB", 1, domain.ModeManual, "")
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestGenerateControlNumberIndexBounds(t *testing.T) {
	g := newFixedGenerator(t)

	_, err := g.GenerateControlNumber("MO-C000123AB", 0, domain.ModeAuto, "")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = g.GenerateControlNumber("MO-C000123AB", 1000, domain.ModeAuto, "")
	assert.ErrorAs(t, err, &verr)
}

func TestGeneratePasscode(t *testing.T) {
	g := newFixedGenerator(t)

	got, err := g.GeneratePasscode("moc", domain.ModeAuto, "")
	require.NoError(t, err)
	assert.Equal(t, "MOC482910", got)

	got, err = g.GeneratePasscode("MOC", domain.ModeManual, "moc-111222")
	require.NoError(t, err)
	assert.Equal(t, "MOC111222", got)

	_, err = g.GeneratePasscode("MOC", domain.ModeManual, "CVT111222")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "customPasscode", verr.Field)

	_, err = g.GeneratePasscode("MO", domain.ModeAuto, "")
	assert.ErrorAs(t, err, &verr)
}
