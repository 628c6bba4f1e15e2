package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrProductNotFound       = errors.New("producto no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInvalidQuantity       = errors.New("cantidad inválida")
	ErrInvalidPrice          = errors.New("precio unitario inválido")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrProductInUse          = errors.New("el producto tiene transacciones asociadas")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrRegistryMisconfigured = errors.New("registro de productos no configurado")
)

// ProductInUseError indica que un producto no puede eliminarse porque tiene
// transacciones registradas. Incluye el conteo para que el caller lo reporte.
type ProductInUseError struct {
	ProductID    string
	Transactions int64
}

func (e *ProductInUseError) Error() string {
	return fmt.Sprintf("el producto %s tiene %d transacciones asociadas", e.ProductID, e.Transactions)
}

// Is permite errors.Is(err, ErrProductInUse).
func (e *ProductInUseError) Is(target error) bool {
	return target == ErrProductInUse
}
