package repository

import "github.com/jhoicas/fifo-costing-api/internal/domain/entity"

// ProductRepository define el puerto del registro de productos (DIP).
// Cualquier almacenamiento de productos que satisfaga esta interfaz puede
// inyectarse en el motor FIFO; no hay resolución dinámica de modelos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// Exists verifica existencia sin cargar la entidad.
	Exists(id string) (bool, error)
	// ExistsForUpdate verifica existencia bloqueando la fila del producto
	// (SELECT ... FOR UPDATE) dentro de la transacción en curso. Serializa
	// los escritores concurrentes del mismo producto.
	ExistsForUpdate(id string) (bool, error)
	Delete(id string) error
}
