package fifo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fifo-costing-api/internal/domain"
	"github.com/jhoicas/fifo-costing-api/internal/domain/entity"
	"github.com/jhoicas/fifo-costing-api/internal/domain/fifo"
	"github.com/jhoicas/fifo-costing-api/internal/domain/repository"
)

// Config opciones del registrador de transacciones.
type Config struct {
	// AutoReference genera referencias "<prefijo>-<unix>" cuando el caller
	// no envía una.
	AutoReference bool
	// InPrefix y OutPrefix prefijos de las referencias autogeneradas.
	// Vacíos = "IN" / "OUT".
	InPrefix  string
	OutPrefix string
	// MaxAmount magnitud máxima aceptada para cantidades y precios.
	// Cero = fifo.DefaultMaxAmount (99,999,999.99).
	MaxAmount decimal.Decimal
}

// RecorderUseCase registra entradas y salidas de stock. Valida y cotiza
// antes de escribir; la inserción corre dentro de una transacción con la
// fila del producto bloqueada (FOR UPDATE), de modo que a lo sumo un
// registro en vuelo por producto pasa entre la verificación de stock y el
// insert. Sin eso, dos salidas concurrentes podrían pasar ambas la
// verificación contra datos viejos y sobrevender.
type RecorderUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	cfg         Config
}

// NewRecorderUseCase construye el caso de uso. Un registro de productos
// ausente es un error de configuración del operador, no un dato faltante:
// se falla duro en el arranque.
func NewRecorderUseCase(txRunner TxRunner, productRepo repository.ProductRepository, cfg Config) (*RecorderUseCase, error) {
	if txRunner == nil || productRepo == nil {
		return nil, domain.ErrRegistryMisconfigured
	}
	if cfg.MaxAmount.IsZero() {
		cfg.MaxAmount = fifo.DefaultMaxAmount
	}
	if cfg.InPrefix == "" {
		cfg.InPrefix = "IN"
	}
	if cfg.OutPrefix == "" {
		cfg.OutPrefix = "OUT"
	}
	return &RecorderUseCase{txRunner: txRunner, productRepo: productRepo, cfg: cfg}, nil
}

// OutboundResult resultado de registrar una salida.
type OutboundResult struct {
	TransactionID int64
	FifoUnitCost  decimal.Decimal
}

// RegisterInbound registra una entrada (compra/recepción) y devuelve el ID
// de la transacción persistida.
func (uc *RecorderUseCase) RegisterInbound(ctx context.Context, productID string, quantity, unitPrice decimal.Decimal, reference string) (int64, error) {
	exists, err := uc.productRepo.Exists(productID)
	if err != nil {
		return 0, fmt.Errorf("verificar producto: %w", err)
	}
	if !exists {
		return 0, domain.ErrProductNotFound
	}
	if !quantity.GreaterThan(decimal.Zero) || !fifo.ValidAmount(quantity, uc.cfg.MaxAmount) {
		return 0, domain.ErrInvalidQuantity
	}
	if !unitPrice.GreaterThan(decimal.Zero) || !fifo.ValidAmount(unitPrice, uc.cfg.MaxAmount) {
		return 0, domain.ErrInvalidPrice
	}

	now := time.Now()
	if reference == "" && uc.cfg.AutoReference {
		reference = fmt.Sprintf("%s-%d", uc.cfg.InPrefix, now.Unix())
	}
	tx := &entity.Transaction{
		ProductID:       productID,
		Direction:       entity.DirectionIn,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		TotalAmount:     quantity.Mul(unitPrice).Round(2),
		TransactionDate: now,
		Reference:       reference,
		CreatedAt:       now,
	}

	err = uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) error {
		ok, err := productRepo.ExistsForUpdate(productID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrProductNotFound
		}
		return txRepo.Create(tx)
	})
	if err != nil {
		return 0, err
	}
	return tx.ID, nil
}

// RegisterOutbound registra una salida (venta/consumo). El costo unitario
// se cotiza bajo FIFO dentro de la misma transacción que verifica el stock
// e inserta, así el UnitPrice persistido es exactamente el cotizado y la
// verificación nunca corre contra una lectura vieja.
func (uc *RecorderUseCase) RegisterOutbound(ctx context.Context, productID string, quantity decimal.Decimal, reference string) (*OutboundResult, error) {
	exists, err := uc.productRepo.Exists(productID)
	if err != nil {
		return nil, fmt.Errorf("verificar producto: %w", err)
	}
	if !exists {
		return nil, domain.ErrProductNotFound
	}
	if !quantity.GreaterThan(decimal.Zero) || !fifo.ValidAmount(quantity, uc.cfg.MaxAmount) {
		return nil, domain.ErrInvalidQuantity
	}

	now := time.Now()
	if reference == "" && uc.cfg.AutoReference {
		reference = fmt.Sprintf("%s-%d", uc.cfg.OutPrefix, now.Unix())
	}

	var result OutboundResult
	err = uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) error {
		// Bloquea la fila del producto: serializa escritores concurrentes.
		ok, err := productRepo.ExistsForUpdate(productID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrProductNotFound
		}

		available, err := availableStock(txRepo, productID)
		if err != nil {
			return err
		}
		if quantity.GreaterThan(available) {
			return domain.ErrInsufficientStock
		}

		inbound, err := txRepo.ListByProduct(productID, entity.DirectionIn)
		if err != nil {
			return err
		}
		outbound, err := txRepo.ListByProduct(productID, entity.DirectionOut)
		if err != nil {
			return err
		}
		quote := fifo.QuoteCost(fifo.RebuildBatches(inbound, outbound), available, quantity)
		if quote.Status != fifo.QuotePriced {
			return domain.ErrInsufficientStock
		}

		tx := &entity.Transaction{
			ProductID:       productID,
			Direction:       entity.DirectionOut,
			Quantity:        quantity,
			UnitPrice:       quote.UnitCost,
			TotalAmount:     quantity.Mul(quote.UnitCost).Round(2),
			TransactionDate: now,
			Reference:       reference,
			CreatedAt:       now,
		}
		if err := txRepo.Create(tx); err != nil {
			return err
		}
		result = OutboundResult{TransactionID: tx.ID, FifoUnitCost: quote.UnitCost}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// availableStock = Σ entradas − Σ salidas. Cero sin transacciones; un valor
// negativo delata datos corruptos y no se recorta.
func availableStock(txRepo repository.TransactionRepository, productID string) (decimal.Decimal, error) {
	totalIn, err := txRepo.SumQuantity(productID, entity.DirectionIn)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sumar entradas: %w", err)
	}
	totalOut, err := txRepo.SumQuantity(productID, entity.DirectionOut)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sumar salidas: %w", err)
	}
	return totalIn.Sub(totalOut), nil
}
