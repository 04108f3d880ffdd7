// Package rules reúne las reglas de formato del dominio: documento y contacto de
// clientes, slugs de tienda y métodos de pago.
package rules

import (
	"unicode"

	"github.com/jhoicas/CellStock-api/internal/domain"
)

const (
	documentDigits  = 11
	contactMinDigit = 10
	contactMaxDigit = 11
)

// Digits devuelve solo los dígitos ASCII de s.
func Digits(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// NormalizeDocument valida el documento de identidad (CPF) por cantidad de dígitos.
// No verifica los dígitos de control; "123.456.789-01" es válido.
func NormalizeDocument(doc string) (string, error) {
	d := Digits(doc)
	if len(d) != documentDigits {
		return "", domain.InvalidInput("cpf inválido: debe tener 11 dígitos")
	}
	return d, nil
}

// NormalizeContact valida el número de WhatsApp: 10 u 11 dígitos.
func NormalizeContact(contact string) (string, error) {
	d := Digits(contact)
	if len(d) < contactMinDigit || len(d) > contactMaxDigit {
		return "", domain.InvalidInput("whatsapp inválido: debe tener 10 u 11 dígitos")
	}
	return d, nil
}
