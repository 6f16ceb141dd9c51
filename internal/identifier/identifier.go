// Package identifier validates, normalizes and formats the identifiers that
// make up a student record: CPF (Brazilian taxpayer number), RA (enrollment
// number) and email.
//
// Every function here is pure. Nothing returns an error: callers get a
// boolean verdict or a transformed string and decide what to report.
package identifier

import (
	"net/mail"
	"strings"
)

const (
	// CPFLength is the number of digits in a normalized CPF.
	CPFLength = 11

	// RAMinLength and RAMaxLength bound a normalized RA.
	RAMinLength = 6
	RAMaxLength = 20
)

// NormalizeDigits strips every character that is not an ASCII digit.
//
//	NormalizeDigits("529.982.247-25") == "52998224725"
func NormalizeDigits(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1 // dropping the rune
	}, raw)
}

// NormalizeEmail returns the storage form of an email: trimmed and lower-cased.
// Uniqueness lookups use this form so "Ana@Example.com" collides with "ana@example.com".
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidateCPFChecksum reports whether raw holds a valid CPF. Punctuation is
// ignored, so "529.982.247-25" and "52998224725" give the same answer.
//
// THE CHECK DIGITS:
// ──────────────────
// The first nine digits are the base number. The 10th digit is computed from
// digits 1..9 with weights 10..2, the 11th from digits 1..10 with weights 11..2:
//
//	r := sum % 11
//	digit := 0 if r < 2, else 11 - r
//
// Strings of eleven identical digits ("111.111.111-11") satisfy the formula
// but are not issued, so they are rejected up front.
// ─────────────────────────────────────────────────────────────────────────────
func ValidateCPFChecksum(raw string) bool {
	cpf := NormalizeDigits(raw)
	if len(cpf) != CPFLength {
		return false
	}

	if strings.Count(cpf, cpf[:1]) == CPFLength {
		return false
	}

	digits := make([]int, CPFLength)
	for i := range cpf {
		digits[i] = int(cpf[i] - '0')
	}

	return digits[9] == checkDigit(digits[:9]) && digits[10] == checkDigit(digits[:10])
}

// checkDigit applies the mod-11 rule to base, weighting the first digit with
// len(base)+1 and the last with 2.
func checkDigit(base []int) int {
	sum := 0
	weight := len(base) + 1
	for _, d := range base {
		sum += d * weight
		weight--
	}

	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

// FormatCPF renders a CPF as XXX.XXX.XXX-XX. Input that does not normalize to
// exactly eleven digits is returned unchanged.
func FormatCPF(raw string) string {
	cpf := NormalizeDigits(raw)
	if len(cpf) != CPFLength {
		return raw
	}

	return cpf[0:3] + "." + cpf[3:6] + "." + cpf[6:9] + "-" + cpf[9:11]
}

// ValidateRAShape reports whether raw normalizes to an RA of 6 to 20 digits.
func ValidateRAShape(raw string) bool {
	n := len(NormalizeDigits(raw))
	return n >= RAMinLength && n <= RAMaxLength
}

// ValidateEmailShape reports whether raw is exactly one mailbox address.
//
// net/mail accepts display names ("Ana <ana@example.com>") and surrounding
// whitespace, so the parsed address must round-trip to the original input.
func ValidateEmailShape(raw string) bool {
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return false
	}
	return addr.Address == raw
}
