package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCPFChecksum(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"valid digits only", "52998224725", true},
		{"valid punctuated", "529.982.247-25", true},
		{"valid with spaces", " 529 982 247 25 ", true},
		{"second valid number", "11144477735", true},
		{"check digit zero", "12345678909", true},
		{"bad checksum", "12345678901", false},
		{"bad second digit", "52998224726", false},
		{"all ones", "11111111111", false},
		{"all zeros punctuated", "000.000.000-00", false},
		{"too short", "5299822472", false},
		{"too long", "529982247250", false},
		{"empty", "", false},
		{"letters only", "abcdefghijk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCPFChecksum(tt.raw))
		})
	}
}

func TestValidateCPFChecksum_RejectsEveryRepeatedDigit(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		raw := string([]rune{d, d, d, d, d, d, d, d, d, d, d})
		assert.False(t, ValidateCPFChecksum(raw), raw)
	}
}

func TestNormalizeDigits(t *testing.T) {
	assert.Equal(t, "52998224725", NormalizeDigits("529.982.247-25"))
	assert.Equal(t, "123456", NormalizeDigits("RA-123.456"))
	assert.Equal(t, "", NormalizeDigits("no digits"))
	assert.Equal(t, "", NormalizeDigits(""))
}

func TestFormatCPF(t *testing.T) {
	assert.Equal(t, "529.982.247-25", FormatCPF("52998224725"))
	assert.Equal(t, "529.982.247-25", FormatCPF("529.982.247-25"))
	assert.Equal(t, "529.982.247-25", FormatCPF("529982247/25"))

	// not eleven digits: returned untouched
	assert.Equal(t, "1234", FormatCPF("1234"))
	assert.Equal(t, "12.34", FormatCPF("12.34"))
}

func TestFormatCPF_IsLeftInverseOfNormalize(t *testing.T) {
	for _, raw := range []string{"52998224725", "529.982.247-25", "12345678901", "000-000-000.00"} {
		assert.Equal(t, NormalizeDigits(raw), NormalizeDigits(FormatCPF(raw)), raw)
	}
}

func TestValidateRAShape(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"123456", true},
		{"12345678901234567890", true},
		{"12.345-6", true},
		{"12345", false},
		{"123456789012345678901", false},
		{"abcdef", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidateRAShape(tt.raw), tt.raw)
	}
}

func TestValidateEmailShape(t *testing.T) {
	valid := []string{"test@example.com", "ana.silva+tag@escola.edu.br"}
	for _, raw := range valid {
		assert.True(t, ValidateEmailShape(raw), raw)
	}

	invalid := []string{
		"invalid-email",
		"test@",
		"@example.com",
		"",
		" test@example.com",
		"test@example.com ",
		"Ana <ana@example.com>",
		"a@example.com, b@example.com",
	}
	for _, raw := range invalid {
		assert.False(t, ValidateEmailShape(raw), raw)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}
