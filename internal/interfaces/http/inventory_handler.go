package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/csvrows"
)

// InventoryHandler maneja las cargas masivas y las consultas de inventario (protegido).
type InventoryHandler struct {
	batch  *inventory.BatchUseCase
	stock  *inventory.StockStatusUseCase
	ledger *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(batch *inventory.BatchUseCase, stock *inventory.StockStatusUseCase, ledger *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{batch: batch, stock: stock, ledger: ledger}
}

// Import godoc
// @Summary      Importar inventario inicial desde CSV
// @Description  Columnas: ean, style_name, size, brand, style_design_code, model_no, store_id, quantity.
//
//	Crea los productos nuevos y suma la cantidad en la tienda. Las filas inválidas se reportan sin abortar el lote.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "archivo CSV"
// @Success      200   {object}  dto.BatchReport
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventory/import [post]
func (h *InventoryHandler) Import(c *fiber.Ctx) error {
	return h.upload(c, inventory.KindImport)
}

// Transfer godoc
// @Summary      Trasladar stock entre tiendas desde CSV
// @Description  Columnas: ean, source_store_id, destination_store_id, quantity.
// @Tags         inventory
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "archivo CSV"
// @Success      200   {object}  dto.BatchReport
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	return h.upload(c, inventory.KindTransfer)
}

// Sales godoc
// @Summary      Registrar ventas de cierre de día desde CSV
// @Description  Columnas: ean, store_id, quantity_sold.
// @Tags         inventory
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "archivo CSV"
// @Success      200   {object}  dto.BatchReport
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventory/sales [post]
func (h *InventoryHandler) Sales(c *fiber.Ctx) error {
	return h.upload(c, inventory.KindSale)
}

func (h *InventoryHandler) upload(c *fiber.Ctx, kind inventory.Kind) error {
	username := GetUsername(c)
	if username == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo 'file' requerido (multipart/form-data)"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	records, err := csvrows.Read(f)
	if err != nil {
		msg := "CSV inválido"
		if errors.Is(err, csvrows.ErrNoHeader) {
			msg = "CSV vacío o sin cabecera"
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: msg})
	}
	rows := make([]inventory.Row, len(records))
	for i, r := range records {
		rows[i] = inventory.Row(r)
	}

	report, err := h.batch.Apply(c.Context(), kind, rows, username)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// StockStatus godoc
// @Summary      Saldo actual por producto y tienda
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockStatusDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-status [get]
func (h *InventoryHandler) StockStatus(c *fiber.Ctx) error {
	items, err := h.stock.GetStockStatus(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

// StockStatusPDF godoc
// @Summary      Saldo actual por producto y tienda (PDF)
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-status/pdf [get]
func (h *InventoryHandler) StockStatusPDF(c *fiber.Ctx) error {
	doc, filename, err := h.stock.GetStockStatusPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(doc)
}

// Transactions godoc
// @Summary      Ledger de movimientos (más recientes primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        ean       query  string  false  "Filtrar por EAN"
// @Param        store_id  query  int     false  "Filtrar por tienda"
// @Param        limit     query  int     false  "Tamaño de página (default 50, max 500)"
// @Param        offset    query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.LedgerPageDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) Transactions(c *fiber.Ctx) error {
	q := dto.LedgerQuery{
		PageRequest: dto.PageRequest{
			Limit:  c.QueryInt("limit", 0),
			Offset: c.QueryInt("offset", 0),
		},
		EAN:     c.Query("ean"),
		StoreID: c.QueryInt("store_id", 0),
	}
	page, err := h.ledger.ListMovements(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}
