package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Photo    string `form:"foto" validate:"url_optional"`
	Name     string `form:"nome" validate:"notblank"`
	CPF      string `form:"cpf" validate:"cpf"`
	Price    string `json:"preco" validate:"positive"`
	LeadTime string `validate:"positive_int"`
	Note     string
}

func TestValidatorReportsEveryFieldInOrder(t *testing.T) {
	t.Parallel()
	v := New()
	errs := v.Struct(&sampleForm{Photo: "nope", Name: " ", CPF: "1", Price: "0", LeadTime: "1.5"})
	require.Len(t, errs, 5)
	assert.Equal(t, Errors{
		{Field: "foto", Message: MsgInvalidURL},
		{Field: "nome", Message: MsgRequired},
		{Field: "cpf", Message: MsgInvalidCPF},
		{Field: "preco", Message: MsgNotPositive},
		{Field: "LeadTime", Message: MsgNotWholeNumber},
	}, errs)
}

func TestValidatorAcceptsValidStruct(t *testing.T) {
	t.Parallel()
	v := New()
	form := &sampleForm{Name: "Fone", CPF: "12345678909", Price: "10", LeadTime: "3"}
	assert.Empty(t, v.Struct(form))
	assert.NoError(t, v.Validate(form))
}

func TestValidatorValidateReturnsErrors(t *testing.T) {
	t.Parallel()
	err := New().Validate(&sampleForm{})
	require.Error(t, err)
	var errs Errors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, MsgRequired, errs.Message("nome"))
	assert.Equal(t, MsgRequired, errs.Message("cpf"))
	assert.Empty(t, errs.Message("foto"))
}
