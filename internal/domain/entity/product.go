package entity

import "time"

// Product entidad mínima del registro de productos. El motor FIFO sólo
// necesita verificar existencia y poder eliminar; el resto del catálogo
// vive en el sistema que consuma esta API.
type Product struct {
	ID        string
	SKU       string
	Name      string
	CreatedAt time.Time
}
