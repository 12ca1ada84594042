package inventory

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

// Mensajes canónicos de rechazo por fila. Los consumen los usuarios en el reporte
// del lote, por eso se mantienen estables.
const (
	msgMissingFields    = "Missing required fields"
	msgInvalidFormat    = "Invalid store_id or quantity format"
	msgQuantityPositive = "Quantity must be greater than 0"
	msgSoldPositive     = "Quantity sold must be greater than 0"
	msgInvalidStores    = "Invalid source or destination store"
)

// Rejection rechazo esperado de una fila (validación o regla de negocio).
// No aborta el lote: se reporta con su número de línea.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string { return r.Reason }

func reject(format string, args ...any) error {
	return &Rejection{Reason: fmt.Sprintf(format, args...)}
}

// field devuelve el valor de la columna sin espacios; "" si la columna no existe.
func field(row Row, name string) string {
	return strings.TrimSpace(row[name])
}

// optional normaliza campos opcionales: vacío significa ausente (NULL en BD).
func optional(row Row, name string) *string {
	v := field(row, name)
	if v == "" {
		return nil
	}
	return &v
}

// required devuelve los valores de las columnas o ok=false si alguna está vacía.
func required(row Row, names ...string) ([]string, bool) {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = field(row, n)
		if out[i] == "" {
			return nil, false
		}
	}
	return out, true
}

// atois convierte todos los valores o falla con el primer error.
func atois(values ...string) ([]int, error) {
	out := make([]int, len(values))
	for i, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// applyImport: crea el producto si no existe, suma la cantidad en la tienda y registra un asiento Import.
// Columnas: ean, style_name, size, brand, style_design_code, model_no, store_id, quantity.
func applyImport(ctx context.Context, repos TxRepos, b batchMeta, row Row) error {
	vals, ok := required(row, "ean", "store_id", "quantity")
	if !ok {
		return reject(msgMissingFields)
	}
	ean := vals[0]
	nums, err := atois(vals[1], vals[2])
	if err != nil {
		return reject(msgInvalidFormat)
	}
	storeID, qty := nums[0], nums[1]
	if qty <= 0 {
		return reject(msgQuantityPositive)
	}

	exists, err := repos.Stores.Exists(ctx, storeID)
	if err != nil {
		return err
	}
	if !exists {
		return reject("Store %d does not exist", storeID)
	}

	product, err := repos.Products.GetByEAN(ctx, ean)
	if err != nil {
		return err
	}
	if product == nil {
		// Primera aparición: se toma la descripción de esta fila; filas posteriores no la modifican.
		product = &entity.Product{
			EAN:             ean,
			StyleName:       field(row, "style_name"),
			Size:            field(row, "size"),
			Brand:           field(row, "brand"),
			StyleDesignCode: optional(row, "style_design_code"),
			ModelNo:         optional(row, "model_no"),
			CreatedAt:       b.Now,
		}
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
	}

	if err := repos.Stock.Adjust(ctx, ean, storeID, qty); err != nil {
		return err
	}
	return repos.Ledger.Append(ctx, newMovement(b, ean, storeID, qty, entity.MovementTypeImport))
}

// applyTransfer: resta en origen, suma en destino (fila creada si no existe) y registra dos asientos Transfer.
// Columnas: ean, source_store_id, destination_store_id, quantity.
func applyTransfer(ctx context.Context, repos TxRepos, b batchMeta, row Row) error {
	vals, ok := required(row, "ean", "source_store_id", "destination_store_id", "quantity")
	if !ok {
		return reject(msgMissingFields)
	}
	ean := vals[0]
	nums, err := atois(vals[1], vals[2], vals[3])
	if err != nil {
		return reject(msgInvalidFormat)
	}
	sourceID, destID, qty := nums[0], nums[1], nums[2]
	if qty <= 0 {
		return reject(msgQuantityPositive)
	}

	// Se valida el par como conjunto: ambas deben existir y ser distintas.
	found, err := repos.Stores.ExistingIDs(ctx, sourceID, destID)
	if err != nil {
		return err
	}
	if len(found) != 2 {
		return reject(msgInvalidStores)
	}

	product, err := repos.Products.GetByEAN(ctx, ean)
	if err != nil {
		return err
	}
	if product == nil {
		return reject("Product %s does not exist", ean)
	}

	// Bloquea la fila de origen para que la verificación de saldo siga vigente al escribir.
	origin, err := repos.Stock.GetForUpdate(ctx, ean, sourceID)
	if err != nil {
		return err
	}
	if !domaininv.Sufficient(origin.Quantity, qty) {
		return reject("Insufficient stock. Available: %d, Requested: %d", origin.Quantity, qty)
	}

	if err := repos.Stock.Adjust(ctx, ean, sourceID, -qty); err != nil {
		return err
	}
	if err := repos.Stock.Adjust(ctx, ean, destID, qty); err != nil {
		return err
	}
	if err := repos.Ledger.Append(ctx, newMovement(b, ean, sourceID, -qty, entity.MovementTypeTransfer)); err != nil {
		return err
	}
	return repos.Ledger.Append(ctx, newMovement(b, ean, destID, qty, entity.MovementTypeTransfer))
}

// applySale: resta la cantidad vendida y registra un asiento Sale negativo.
// Columnas: ean, store_id, quantity_sold.
func applySale(ctx context.Context, repos TxRepos, b batchMeta, row Row) error {
	vals, ok := required(row, "ean", "store_id", "quantity_sold")
	if !ok {
		return reject(msgMissingFields)
	}
	ean := vals[0]
	nums, err := atois(vals[1], vals[2])
	if err != nil {
		return reject(msgInvalidFormat)
	}
	storeID, sold := nums[0], nums[1]
	if sold <= 0 {
		return reject(msgSoldPositive)
	}

	exists, err := repos.Stores.Exists(ctx, storeID)
	if err != nil {
		return err
	}
	if !exists {
		return reject("Store %d does not exist", storeID)
	}

	product, err := repos.Products.GetByEAN(ctx, ean)
	if err != nil {
		return err
	}
	if product == nil {
		return reject("Product %s does not exist", ean)
	}

	stock, err := repos.Stock.GetForUpdate(ctx, ean, storeID)
	if err != nil {
		return err
	}
	if !domaininv.Sufficient(stock.Quantity, sold) {
		return reject("Insufficient stock. Available: %d, Sold: %d", stock.Quantity, sold)
	}

	if err := repos.Stock.Adjust(ctx, ean, storeID, -sold); err != nil {
		return err
	}
	return repos.Ledger.Append(ctx, newMovement(b, ean, storeID, -sold, entity.MovementTypeSale))
}

func newMovement(b batchMeta, ean string, storeID, delta int, typ string) *entity.StockMovement {
	return &entity.StockMovement{
		BatchID:        b.ID,
		ProductEAN:     ean,
		StoreID:        storeID,
		QuantityChange: delta,
		Type:           typ,
		CreatedAt:      b.Now,
		CreatedBy:      b.Caller,
	}
}
