package rules

import (
	"slices"
	"strings"

	"github.com/jhoicas/CellStock-api/internal/domain/entity"
)

// NormalizePayment pasa a minúsculas y valida contra entity.PaymentMethods.
// Cualquier valor fuera del conjunto cae en entity.PaymentCash.
func NormalizePayment(method string) string {
	m := strings.ToLower(strings.TrimSpace(method))
	if slices.Contains(entity.PaymentMethods, m) {
		return m
	}
	return entity.PaymentCash
}
