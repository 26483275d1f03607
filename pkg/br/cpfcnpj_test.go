package br_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorcampo/gestor-api/pkg/br"
)

// ──────────────────────────────────────────────────────────────────────────────
// Propriedade de ida e volta: um documento de 11 ou 14 dígitos formatado com a
// máscara e depois reduzido a dígitos deve ser idêntico ao original.
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatDigits_IdaEVolta(t *testing.T) {
	casos := []string{
		"52998224725",     // CPF válido
		"11144477735",     // CPF válido
		"11222333000181",  // CNPJ válido
		"00000000000191",  // CNPJ válido (Banco do Brasil)
	}
	for _, d := range casos {
		mascarado := br.Format(d)
		assert.NotEqual(t, d, mascarado, "a máscara deve inserir separadores em %s", d)
		assert.Equal(t, d, br.Digits(mascarado), "Digits(Format(%s)) deve devolver o original", d)
	}
}

func TestFormat_CPF(t *testing.T) {
	assert.Equal(t, "529.982.247-25", br.Format("52998224725"))
}

func TestFormat_CNPJ(t *testing.T) {
	assert.Equal(t, "11.222.333/0001-81", br.Format("11222333000181"))
}

func TestFormat_ComprimentoInesperado(t *testing.T) {
	// Comprimentos fora de 11/14 passam sem alteração
	assert.Equal(t, "12345", br.Format("12345"))
	assert.Equal(t, "", br.Format(""))
}

func TestDigits_RemoveMascara(t *testing.T) {
	assert.Equal(t, "52998224725", br.Digits("529.982.247-25"))
	assert.Equal(t, "11222333000181", br.Digits("11.222.333/0001-81"))
}

// ── Validação ─────────────────────────────────────────────────────────────────

func TestValidate_CPFValido(t *testing.T) {
	require.NoError(t, br.Validate("529.982.247-25"))
	require.NoError(t, br.Validate("52998224725"))
}

func TestValidate_CPFDigitoErrado(t *testing.T) {
	assert.Error(t, br.Validate("52998224726"))
}

func TestValidate_CPFTodosIguais(t *testing.T) {
	assert.Error(t, br.Validate("11111111111"))
}

func TestValidate_CNPJValido(t *testing.T) {
	require.NoError(t, br.Validate("11.222.333/0001-81"))
	require.NoError(t, br.Validate("11222333000181"))
}

func TestValidate_CNPJDigitoErrado(t *testing.T) {
	assert.Error(t, br.Validate("11222333000182"))
}

func TestValidate_ComprimentoInvalido(t *testing.T) {
	assert.Error(t, br.Validate("123"))
	assert.Error(t, br.Validate(""))
}
