package fifo

import "github.com/shopspring/decimal"

// DefaultMaxAmount magnitud máxima aceptada para cantidades y precios
// cuando la configuración no define otra: 99,999,999.99.
var DefaultMaxAmount = decimal.New(9_999_999_999, -2)

// ValidAmount valida la precisión de un monto externo: rechaza valores que
// excedan max o con más de 2 decimales significativos. Protege contra
// corrupción de datos y contra desbordes vía cantidades/precios inyectados.
// (NaN e infinitos no existen en decimal.Decimal: se rechazan al parsear.)
func ValidAmount(v, max decimal.Decimal) bool {
	if v.GreaterThan(max) {
		return false
	}
	// Más de 2 decimales significativos: 10.125 != 10.12 truncado.
	return v.Equal(v.Truncate(2))
}
