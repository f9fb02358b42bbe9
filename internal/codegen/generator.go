package codegen

import (
	"fmt"
	"strings"
	"time"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/jaevor/go-nanoid"
)

const (
	passcodePrefixLen = 3
	passcodeDigits    = 6
	passcodeLength    = passcodePrefixLen + passcodeDigits
	// ControlIndexWidth is the zero-padded in-batch index width.
	ControlIndexWidth = 3
)

// Generator produces batch numbers, control numbers and passcodes.
// Auto mode relies on wall-clock time plus a nanoid disambiguator; global
// uniqueness is still enforced by the storage layer's unique constraints,
// so a collision surfaces as a ConflictError and the caller regenerates.
type Generator struct {
	now          func() time.Time
	batchSuffix  func() string
	passcodeTail func() string
}

func NewGenerator() (*Generator, error) {
	suffix, err := nanoid.CustomASCII("ABCDEFGHJKLMNPQRSTUVWXYZ", 2)
	if err != nil {
		return nil, err
	}
	tail, err := nanoid.CustomASCII("0123456789", passcodeDigits)
	if err != nil {
		return nil, err
	}
	return &Generator{
		now:          time.Now,
		batchSuffix:  suffix,
		passcodeTail: tail,
	}, nil
}

// GenerateBatchNumber produces a batch id such as MO-B482910KJ.
// Manual mode validates and echoes the caller's input instead.
func (g *Generator) GenerateBatchNumber(mode domain.GenerationMode, customInput, locationPrefix string) (string, error) {
	prefix := strings.ToUpper(strings.TrimSpace(locationPrefix))
	if len(prefix) != 2 || !isAlphaString(prefix) {
		return "", &domain.ValidationError{Field: "locationPrefix", Value: locationPrefix, Reason: "expected a 2-letter region code"}
	}

	switch mode {
	case domain.ModeAuto:
		return fmt.Sprintf("%s-B%06d%s", prefix, g.now().Unix()%1000000, g.batchSuffix()), nil
	case domain.ModeManual:
		normalized, err := Normalize(customInput, CodeBatch)
		if err != nil {
			return "", err
		}
		if !strings.HasPrefix(normalized, prefix+"B") {
			return "", &domain.ValidationError{Field: "customInput", Value: customInput, Reason: "batch number does not match location prefix"}
		}
		return prefix + "-" + normalized[len(prefix):], nil
	case domain.ModeRange:
		return "", &domain.ValidationError{Field: "mode", Value: string(mode), Reason: "range batches use GenerateRangeBatchNumber"}
	}
	return "", &domain.ValidationError{Field: "mode", Value: string(mode), Reason: "unknown generation mode"}
}

// GenerateRangeBatchNumber derives the batch id from an explicit sequence
// interval, e.g. MO-R0010100150 for [101,150].
func (g *Generator) GenerateRangeBatchNumber(locationPrefix string, start, end int) (string, error) {
	prefix := strings.ToUpper(strings.TrimSpace(locationPrefix))
	if len(prefix) != 2 || !isAlphaString(prefix) {
		return "", &domain.ValidationError{Field: "locationPrefix", Value: locationPrefix, Reason: "expected a 2-letter region code"}
	}
	if start < 1 || end < start {
		return "", &domain.ValidationError{Field: "range", Value: fmt.Sprintf("[%d,%d]", start, end), Reason: "start must be >= 1 and <= end"}
	}
	return fmt.Sprintf("%s-R%05d%05d", prefix, start, end), nil
}

// ControlPrefix derives the control number prefix from a batch number by
// swapping the batch kind letter for the control kind: MO-B000123AB -> MO-C000123AB.
func ControlPrefix(batchNumber string) (string, error) {
	normalized, err := Normalize(batchNumber, CodeBatch)
	if err != nil {
		return "", err
	}
	// normalized: <2-letter region><kind><core>
	if len(normalized) < 4 {
		return "", &domain.ValidationError{Field: "batchNumber", Value: batchNumber, Reason: "batch number too short"}
	}
	return normalized[:2] + "-C" + normalized[3:], nil
}

// GenerateControlNumber builds the identifier printed on card cardIndex of
// a batch, e.g. MO-C000123AB-001. Uniqueness within the batch follows from
// the index; manual mode substitutes a caller-supplied template.
func (g *Generator) GenerateControlNumber(batchPrefix string, cardIndex int, mode domain.GenerationMode, customFormat string) (string, error) {
	if cardIndex < 1 || cardIndex > 999 {
		return "", &domain.ValidationError{Field: "cardIndex", Value: fmt.Sprintf("%d", cardIndex), Reason: "index out of range 1..999"}
	}

	if mode == domain.ModeManual {
		if customFormat == "" {
			return "", &domain.ValidationError{Field: "customFormat", Value: "", Reason: "manual mode requires a custom control number"}
		}
		if _, err := Normalize(customFormat, CodeControl); err != nil {
			return "", err
		}
		return strings.ToUpper(strings.TrimSpace(customFormat)), nil
	}

	if batchPrefix == "" {
		return "", &domain.ValidationError{Field: "batchPrefix", Value: "", Reason: "empty batch prefix"}
	}
	return fmt.Sprintf("%s-%0*d", batchPrefix, ControlIndexWidth, cardIndex), nil
}

// GeneratePasscode produces the fixed-shape secret paired with a control
// number: a 3-letter location code followed by 6 digits.
func (g *Generator) GeneratePasscode(locationCode string, mode domain.GenerationMode, customPasscode string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(locationCode))
	if len(code) != passcodePrefixLen || !isAlphaString(code) {
		return "", &domain.ValidationError{Field: "locationCode", Value: locationCode, Reason: "expected a 3-letter location code"}
	}

	if mode == domain.ModeManual {
		normalized, err := Normalize(customPasscode, CodePasscode)
		if err != nil {
			return "", err
		}
		if !strings.HasPrefix(normalized, code) {
			return "", &domain.ValidationError{Field: "customPasscode", Value: customPasscode, Reason: "passcode does not match location code"}
		}
		return normalized, nil
	}

	return code + g.passcodeTail(), nil
}

func isAlphaString(s string) bool {
	for _, r := range s {
		if !isUpperAlpha(r) {
			return false
		}
	}
	return len(s) > 0
}
