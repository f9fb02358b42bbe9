package codegen

import (
	"strings"

	"github.com/dentalink/loyalty-card-service/internal/domain"
)

type CodeType string

const (
	CodeControl  CodeType = "control"
	CodeBatch    CodeType = "batch"
	CodePasscode CodeType = "passcode"
)

// SequenceWidth is the zero-padded width of the printed sequence reference.
const SequenceWidth = 5

// legacyControlPrefixes translates pre-region control number heads to the
// current region-qualified head. Cards issued before regions were introduced
// all belong to the original Missouri program.
var legacyControlPrefixes = map[string]string{
	"C":  "MOC",
	"DC": "MOC",
}

// Normalize maps any accepted surface form of a code to its single canonical
// lookup key. Idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(input string, codeType CodeType) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	s = strings.NewReplacer("-", "", " ", "", "_", "").Replace(s)
	if s == "" {
		return "", &domain.ValidationError{Field: string(codeType), Value: input, Reason: "empty code"}
	}

	switch codeType {
	case CodeControl:
		return normalizeControl(s, input)
	case CodeBatch:
		return normalizeBatch(s, input)
	case CodePasscode:
		return normalizePasscode(s, input)
	}
	return "", &domain.ValidationError{Field: "codeType", Value: string(codeType), Reason: "unknown code type"}
}

func normalizeControl(s, raw string) (string, error) {
	// An all-digit input is the printed sequence reference.
	if isDigits(s) {
		if len(s) > SequenceWidth {
			return "", &domain.ValidationError{Field: "control", Value: raw, Reason: "sequence reference too long"}
		}
		return leftPad(s, SequenceWidth), nil
	}

	head, rest := splitAlphaHead(s)
	if head == "" || rest == "" {
		return "", &domain.ValidationError{Field: "control", Value: raw, Reason: "expected letters followed by digits"}
	}
	if mapped, ok := legacyControlPrefixes[head]; ok {
		head = mapped
	}
	for _, r := range rest {
		if !isAlnum(r) {
			return "", &domain.ValidationError{Field: "control", Value: raw, Reason: "unexpected character"}
		}
	}
	return head + rest, nil
}

func normalizeBatch(s, raw string) (string, error) {
	head, rest := splitAlphaHead(s)
	if len(head) < 3 || rest == "" {
		return "", &domain.ValidationError{Field: "batch", Value: raw, Reason: "expected region and kind letters followed by digits"}
	}
	for _, r := range rest {
		if !isAlnum(r) {
			return "", &domain.ValidationError{Field: "batch", Value: raw, Reason: "unexpected character"}
		}
	}
	return s, nil
}

func normalizePasscode(s, raw string) (string, error) {
	if len(s) != passcodeLength {
		return "", &domain.ValidationError{Field: "passcode", Value: raw, Reason: "wrong length"}
	}
	for i, r := range s {
		if i < passcodePrefixLen && !isUpperAlpha(r) {
			return "", &domain.ValidationError{Field: "passcode", Value: raw, Reason: "expected 3-letter location prefix"}
		}
		if i >= passcodePrefixLen && !isDigit(r) {
			return "", &domain.ValidationError{Field: "passcode", Value: raw, Reason: "expected digits after prefix"}
		}
	}
	return s, nil
}

func splitAlphaHead(s string) (head, rest string) {
	for i, r := range s {
		if !isUpperAlpha(r) {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
func isUpperAlpha(r rune) bool { return r >= 'A' && r <= 'Z' }
func isAlnum(r rune) bool      { return isDigit(r) || isUpperAlpha(r) }

func leftPad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
