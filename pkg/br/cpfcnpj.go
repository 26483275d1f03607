// Package br reúne utilidades de documentos brasileiros (CPF/CNPJ):
// extração de dígitos, máscara de exibição e validação dos dígitos verificadores.
package br

import (
	"fmt"
	"unicode"
)

// pesos para o cálculo dos dígitos verificadores do CNPJ (módulo 11).
var (
	cnpjWeights1 = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Digits devolve apenas os dígitos de s ("123.456.789-09" -> "12345678909").
// É a inversa de Format: Digits(Format(d)) == d para qualquer d de 11 ou 14 dígitos.
func Digits(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// Format aplica a máscara de exibição conforme o comprimento:
// 11 dígitos -> CPF 000.000.000-00; 14 dígitos -> CNPJ 00.000.000/0000-00.
// Qualquer outro comprimento é devolvido sem alteração.
func Format(s string) string {
	d := Digits(s)
	switch len(d) {
	case 11:
		return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
	case 14:
		return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
	default:
		return s
	}
}

// Validate verifica os dígitos verificadores de um CPF (11 dígitos) ou CNPJ (14 dígitos).
// Aceita o documento com ou sem máscara.
func Validate(s string) error {
	d := Digits(s)
	switch len(d) {
	case 11:
		return validateCPF(d)
	case 14:
		return validateCNPJ(d)
	default:
		return fmt.Errorf("br: documento deve ter 11 (CPF) ou 14 (CNPJ) dígitos, recebidos %d", len(d))
	}
}

func validateCPF(d string) error {
	if allEqual(d) {
		return fmt.Errorf("br: CPF com todos os dígitos iguais é inválido")
	}
	dv1 := cpfCheckDigit(d[:9], 10)
	dv2 := cpfCheckDigit(d[:10], 11)
	if d[9] != dv1 || d[10] != dv2 {
		return fmt.Errorf("br: dígitos verificadores do CPF inválidos")
	}
	return nil
}

// cpfCheckDigit calcula um dígito verificador do CPF: soma ponderada com peso
// decrescente a partir de startWeight, resto módulo 11 (resto < 2 => 0).
func cpfCheckDigit(base string, startWeight int) byte {
	var sum int
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * (startWeight - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		rest = 0
	}
	return byte('0' + rest)
}

func validateCNPJ(d string) error {
	if allEqual(d) {
		return fmt.Errorf("br: CNPJ com todos os dígitos iguais é inválido")
	}
	dv1 := cnpjCheckDigit(d[:12], cnpjWeights1[:])
	dv2 := cnpjCheckDigit(d[:13], cnpjWeights2[:])
	if d[12] != dv1 || d[13] != dv2 {
		return fmt.Errorf("br: dígitos verificadores do CNPJ inválidos")
	}
	return nil
}

func cnpjCheckDigit(base string, weights []int) byte {
	var sum int
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * weights[i]
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte('0' + (11 - rest))
}

func allEqual(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
