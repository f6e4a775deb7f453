package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ruleCase struct {
	name  string
	value string
	valid bool
	msg   string
}

func runRuleCases(t *testing.T, rule Rule, cases []ruleCase) {
	t.Helper()
	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := rule(tt.value)
			assert.Equal(t, tt.valid, r.Valid)
			if tt.valid {
				assert.Empty(t, r.Message)
				return
			}
			assert.NotEmpty(t, r.Message)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, r.Message)
			}
		})
	}
}

func TestRequired(t *testing.T) {
	t.Parallel()
	runRuleCases(t, Required, []ruleCase{
		{name: "empty", value: "", msg: MsgRequired},
		{name: "spaces", value: "   ", msg: MsgRequired},
		{name: "tabs and newlines", value: "\t\n", msg: MsgRequired},
		{name: "text", value: "Maria", valid: true},
		{name: "padded text", value: "  Maria  ", valid: true},
	})
}

func TestCPF(t *testing.T) {
	t.Parallel()
	runRuleCases(t, CPF, []ruleCase{
		{name: "grouped", value: "123.456.789-09", valid: true},
		{name: "eleven digits", value: "12345678909", valid: true},
		{name: "padded digits", value: " 12345678909 ", valid: true},
		{name: "blank", value: " ", msg: MsgRequired},
		{name: "ten digits", value: "1234567890", msg: MsgInvalidCPF},
		{name: "twelve digits", value: "123456789012", msg: MsgInvalidCPF},
		{name: "dash in wrong place", value: "123.456.78-909", msg: MsgInvalidCPF},
		{name: "dots only", value: "123.456.789.09", msg: MsgInvalidCPF},
		{name: "missing punctuation", value: "123456.789-09", msg: MsgInvalidCPF},
		{name: "extra group digit", value: "1234.456.789-09", msg: MsgInvalidCPF},
		{name: "letters", value: "abc.def.ghi-jk", msg: MsgInvalidCPF},
	})
}

func TestPhone(t *testing.T) {
	t.Parallel()
	runRuleCases(t, Phone, []ruleCase{
		{name: "mobile with area", value: "(11) 91234-5678", valid: true},
		{name: "landline with area", value: "(11) 1234-5678", valid: true},
		{name: "no space after area", value: "(11)912345678", valid: true},
		{name: "no area hyphenated", value: "91234-5678", valid: true},
		{name: "eight digits", value: "12345678", valid: true},
		{name: "eleven digits", value: "11912345678", valid: true},
		{name: "blank", value: "", msg: MsgRequired},
		{name: "seven digits", value: "1234567", msg: MsgInvalidPhone},
		{name: "twelve digits", value: "119123456789", msg: MsgInvalidPhone},
		{name: "three digit area", value: "(111) 91234-5678", msg: MsgInvalidPhone},
		{name: "letters", value: "phone", msg: MsgInvalidPhone},
	})
}

func TestEmail(t *testing.T) {
	t.Parallel()
	runRuleCases(t, Email, []ruleCase{
		{name: "simple", value: "ana@example.com", valid: true},
		{name: "subdomain", value: "ana@mail.example.com.br", valid: true},
		{name: "blank", value: "  ", msg: MsgRequired},
		{name: "no at", value: "ana.example.com", msg: MsgInvalidEmail},
		{name: "no dot after at", value: "ana@example", msg: MsgInvalidEmail},
		{name: "nothing before at", value: "@example.com", msg: MsgInvalidEmail},
		{name: "nothing after dot", value: "ana@example.", msg: MsgInvalidEmail},
	})
}

func TestPassword(t *testing.T) {
	t.Parallel()
	runRuleCases(t, Password, []ruleCase{
		{name: "six chars", value: "abcdef", valid: true},
		{name: "multibyte", value: "çãõéíú", valid: true},
		{name: "five chars", value: "abcde", msg: MsgShortPassword},
		{name: "padded counts spaces", value: " abcd ", valid: true},
		{name: "blank", value: "      ", msg: MsgRequired},
	})
}

func TestURL(t *testing.T) {
	t.Parallel()
	runRuleCases(t, URL, []ruleCase{
		{name: "empty is optional", value: "", valid: true},
		{name: "blank is optional", value: "   ", valid: true},
		{name: "https", value: "https://via.placeholder.com/100x100?text=Produto+1", valid: true},
		{name: "opaque", value: "mailto:ana@example.com", valid: true},
		{name: "relative", value: "/images/a.png", msg: MsgInvalidURL},
		{name: "no scheme", value: "example.com/a.png", msg: MsgInvalidURL},
		{name: "bare scheme", value: "http://", msg: MsgInvalidURL},
		{name: "space in host", value: "http://exa mple.com", msg: MsgInvalidURL},
	})
}

func TestPositiveNumber(t *testing.T) {
	t.Parallel()
	runRuleCases(t, PositiveNumber, []ruleCase{
		{name: "integer", value: "10", valid: true},
		{name: "decimal", value: "1200.50", valid: true},
		{name: "small", value: "0.01", valid: true},
		{name: "padded", value: " 3 ", valid: true},
		{name: "zero", value: "0", msg: MsgNotPositive},
		{name: "negative", value: "-5", msg: MsgNotPositive},
		{name: "text", value: "ten", msg: MsgNotPositive},
		{name: "nan", value: "NaN", msg: MsgNotPositive},
		{name: "infinity", value: "Inf", msg: MsgNotPositive},
		{name: "empty", value: "", msg: MsgRequired},
	})
}

func TestPositiveInteger(t *testing.T) {
	t.Parallel()
	runRuleCases(t, PositiveInteger, []ruleCase{
		{name: "whole", value: "3", valid: true},
		{name: "whole with decimals", value: "3.0", valid: true},
		{name: "fraction", value: "2.5", msg: MsgNotWholeNumber},
		{name: "largest int32", value: "2147483647", valid: true},
		{name: "above int32", value: "2147483648", msg: MsgTooLarge},
		{name: "exponent above int32", value: "1e10", msg: MsgTooLarge},
		{name: "zero", value: "0", msg: MsgNotPositive},
		{name: "empty", value: "", msg: MsgRequired},
	})
}

func TestErrorsCheckDoesNotShortCircuit(t *testing.T) {
	t.Parallel()
	var errs Errors
	ok := true
	ok = errs.Check("nome", "", Required) && ok
	ok = errs.Check("cpf", "123", CPF) && ok
	ok = errs.Check("email", "ana@example.com", Email) && ok
	assert.False(t, ok)
	assert.Len(t, errs, 2)
	assert.Equal(t, MsgRequired, errs.Message("nome"))
	assert.Equal(t, MsgInvalidCPF, errs.Message("cpf"))
	assert.Empty(t, errs.Message("email"))
	assert.Contains(t, errs.Error(), "cpf: ")
	assert.Equal(t, map[string]string{"nome": MsgRequired, "cpf": MsgInvalidCPF}, errs.Map())
}
