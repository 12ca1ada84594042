package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// Kind tipo de operación masiva.
type Kind string

// Tipos de lote soportados.
const (
	KindImport   Kind = "import"
	KindTransfer Kind = "transfer"
	KindSale     Kind = "sale"
)

// Row fila cruda del CSV: nombre de columna → valor sin procesar.
type Row map[string]string

// headerOffset convierte la posición 0-based de la fila en el número de línea de la hoja
// (la línea 1 es la cabecera).
const headerOffset = 2

// batchMeta datos comunes a todas las filas de un lote.
type batchMeta struct {
	ID     string
	Caller string
	Now    time.Time
}

// rowHandler valida y aplica una fila. Devuelve *Rejection para rechazos esperados
// o cualquier otro error para fallos inesperados de la fila.
type rowHandler func(ctx context.Context, repos TxRepos, b batchMeta, row Row) error

// BatchUseCase procesa lotes de importación, traslado y venta.
// Cada fila se valida y aplica de forma independiente (savepoint por fila);
// todas las filas aceptadas se confirman juntas en una sola transacción.
type BatchUseCase struct {
	txRunner TxRunner
	log      zerolog.Logger
	handlers map[Kind]rowHandler
	now      func() time.Time
}

// NewBatchUseCase construye el procesador de lotes.
func NewBatchUseCase(txRunner TxRunner, log zerolog.Logger) *BatchUseCase {
	return &BatchUseCase{
		txRunner: txRunner,
		log:      log.With().Str("component", "batch").Logger(),
		handlers: map[Kind]rowHandler{
			KindImport:   applyImport,
			KindTransfer: applyTransfer,
			KindSale:     applySale,
		},
		now: time.Now,
	}
}

// Apply procesa las filas en orden y devuelve el reporte por fila.
//
// Retorna:
//   - (report, nil) aunque haya filas rechazadas (status "partial").
//   - domain.ErrUnauthorized si caller está vacío.
//   - domain.ErrInvalidInput si kind no es un tipo de lote conocido.
//   - un error que envuelve domain.ErrStorage si la transacción no pudo abrirse o confirmarse;
//     en ese caso no se persiste ninguna fila.
func (uc *BatchUseCase) Apply(ctx context.Context, kind Kind, rows []Row, caller string) (*dto.BatchReport, error) {
	if caller == "" {
		return nil, domain.ErrUnauthorized
	}
	handler, ok := uc.handlers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: tipo de lote %q", domain.ErrInvalidInput, kind)
	}

	meta := batchMeta{ID: uuid.New().String(), Caller: caller, Now: uc.now().UTC()}
	started := time.Now()

	var report *dto.BatchReport
	err := uc.txRunner.RunBatch(ctx, func(tx BatchTx) error {
		// El reporte se construye dentro de la transacción: si el commit falla se descarta completo.
		report = &dto.BatchReport{BatchID: meta.ID, Errors: []dto.RowError{}}
		for i, row := range rows {
			if err := ctx.Err(); err != nil {
				return err
			}
			line := i + headerOffset
			err := tx.Row(ctx, func(repos TxRepos) error {
				return handler(ctx, repos, meta, row)
			})
			if err == nil {
				report.SuccessCount++
				continue
			}
			var rej *Rejection
			if errors.As(err, &rej) {
				report.Errors = append(report.Errors, dto.RowError{Row: line, Error: rej.Reason})
				continue
			}
			if errors.Is(err, domain.ErrStorage) {
				// El savepoint no pudo abrirse o deshacerse: la transacción ya no es utilizable.
				return err
			}
			uc.log.Warn().Err(err).
				Str("batch_id", meta.ID).
				Str("kind", string(kind)).
				Int("row", line).
				Msg("fila descartada por fallo inesperado")
			report.Errors = append(report.Errors, dto.RowError{Row: line, Error: err.Error()})
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).
			Str("batch_id", meta.ID).
			Str("kind", string(kind)).
			Str("caller", caller).
			Msg("lote abortado")
		if !errors.Is(err, domain.ErrStorage) {
			err = fmt.Errorf("%w: %w", domain.ErrStorage, err)
		}
		return nil, fmt.Errorf("procesar lote %s: %w", kind, err)
	}

	report.ErrorCount = len(report.Errors)
	report.Status = dto.BatchStatusSuccess
	if report.ErrorCount > 0 {
		report.Status = dto.BatchStatusPartial
	}

	uc.log.Info().
		Str("batch_id", meta.ID).
		Str("kind", string(kind)).
		Str("caller", caller).
		Int("rows", len(rows)).
		Int("success_count", report.SuccessCount).
		Int("error_count", report.ErrorCount).
		Dur("elapsed", time.Since(started)).
		Msg("lote procesado")

	return report, nil
}
