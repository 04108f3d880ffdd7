package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// dateLayouts formatos aceptados, en orden; gana el primero que parsea.
var dateLayouts = []string{"02/01/2006", "2006-01-02", "02-01-2006", "2006/01/02"}

// normalizeKeys pasa las claves a minúsculas sin espacios.
func normalizeKeys(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

func lookup(r Row, names []string) (any, bool) {
	for _, n := range names {
		if v, ok := r[n]; ok && v != nil {
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				continue
			}
			return v, true
		}
	}
	return nil, false
}

func has(r Row, names []string) bool {
	_, ok := lookup(r, names)
	return ok
}

// text devuelve el campo como string recortado. Los números de JSON llegan
// como float64; los enteros se formatean sin decimales.
func text(r Row, names []string) string {
	v, ok := lookup(r, names)
	if !ok {
		return ""
	}
	return toString(v)
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// ParseAmount normaliza un importe: quita símbolos de moneda, descarta "."
// como separador de miles y usa "," como separador decimal. Lo que no parsea
// vale 0. Los valores numéricos se usan tal cual.
func ParseAmount(v any) decimal.Decimal {
	switch t := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case int64:
		return decimal.NewFromInt(t)
	}
	s := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == ',' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, toString(v))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDate prueba los formatos conocidos sobre el valor completo y sobre sus
// primeros 10 caracteres (fechas con hora). Si nada parsea devuelve now.
func ParseDate(v any, now time.Time) time.Time {
	if t, ok := v.(time.Time); ok {
		return t.UTC()
	}
	s := toString(v)
	if s == "" || v == nil {
		return now
	}
	candidates := []string{s}
	if len(s) > 10 {
		candidates = append(candidates, s[:10])
	}
	for _, c := range candidates {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, c); err == nil {
				return t.UTC()
			}
		}
	}
	return now
}

// parseBattery acepta "95", "95%" o 95. Fuera de 0-100 o ilegible => sin dato.
func parseBattery(r Row) *int {
	s := strings.TrimSuffix(strings.TrimSpace(text(r, fieldBattery)), "%")
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || f < 0 || f > 100 {
		return nil
	}
	b := int(f)
	return &b
}

// refs admite una lista JSON o un texto separado por comas.
func refs(r Row, names []string) []string {
	v, ok := lookup(r, names)
	if !ok {
		return nil
	}
	var raw []string
	switch t := v.(type) {
	case []any:
		for _, x := range t {
			raw = append(raw, toString(x))
		}
	case []string:
		raw = t
	default:
		raw = strings.FieldsFunc(toString(v), func(r rune) bool { return r == ',' || r == ';' })
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
