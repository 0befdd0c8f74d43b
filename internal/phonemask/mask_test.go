package phonemask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"no digits", "abc-()", ""},
		{"one digit", "5", "(5)"},
		{"two digits", "51", "(51)"},
		{"three digits", "519", "(51) 9"},
		{"seven digits", "5199988", "(51) 99988"},
		{"eight digits", "51999887", "(51) 99988-7"},
		{"ten digits", "5199988776", "(51) 99988-776"},
		{"eleven digits", "51999887766", "(51) 99988-7766"},
		{"extra digits dropped", "5199988776612345", "(51) 99988-7766"},
		{"already masked", "(51) 99988-7766", "(51) 99988-7766"},
		{"masked plus keystroke", "(51) 9998", "(51) 9998"},
		{"backspace over dash", "(51) 99988-", "(51) 99988"},
		{"non-ascii digits ignored", "٥١", ""},
		{"mixed noise", "tel: +55 51", "(55) 51"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.raw), "Format(%q)", tt.raw)
		})
	}
}

func TestFormat_ShortInputsWrapAreaCode(t *testing.T) {
	for _, digits := range []string{"1", "12"} {
		assert.Equal(t, "("+digits+")", Format(digits))
	}
}

func TestFormat_StableOnOwnDigits(t *testing.T) {
	inputs := []string{"", "4", "41", "419", "4199", "41998877", "4199887766", "41998877665", "419988776655544"}
	for _, in := range inputs {
		once := Format(in)
		assert.Equal(t, once, Format(Digits(once)), "Format(Digits(Format(%q)))", in)
	}
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "11912345678", Digits("(11) 91234-5678"))
}
