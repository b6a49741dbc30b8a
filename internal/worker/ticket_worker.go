package worker

// ticket_worker.go
// Processes ticket jobs from QueueTickets: fetches the sale, renders the PDF
// receipt and, when the payload carries a customer email, chains an email job.

import (
	"context"
	"encoding/json"
	"fmt"

	"maquillarte/internal/infra"
	"maquillarte/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TicketJobPayload is the job envelope sent to QueueTickets.
type TicketJobPayload struct {
	VentaID      string  `json:"venta_id"`
	ClienteEmail *string `json:"cliente_email,omitempty"`
}

type TicketWorker struct {
	ventaRepo     repository.VentaRepository
	dispatcher    *Dispatcher
	storagePath   string
	nombreNegocio string
}

func NewTicketWorker(ventaRepo repository.VentaRepository, dispatcher *Dispatcher, storagePath, nombreNegocio string) *TicketWorker {
	return &TicketWorker{
		ventaRepo:     ventaRepo,
		dispatcher:    dispatcher,
		storagePath:   storagePath,
		nombreNegocio: nombreNegocio,
	}
}

func (w *TicketWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload TicketJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("ticket_worker: invalid payload")
		return
	}

	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("ticket_worker: invalid venta_id")
		return
	}

	venta, err := w.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("ticket_worker: venta not found")
		return
	}

	pdfPath, err := infra.GenerateTicketPDF(venta, w.nombreNegocio, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("ticket_worker: PDF generation failed")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("venta_id", payload.VentaID).Msg("ticket_worker: PDF generated")

	if payload.ClienteEmail != nil && *payload.ClienteEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail:    *payload.ClienteEmail,
			Subject:    fmt.Sprintf("Comprobante %s", w.nombreNegocio),
			Body:       fmt.Sprintf("Adjunto encontrarás tu comprobante de compra.\nTotal: $%s", venta.Total.StringFixed(2)),
			Attachment: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.ClienteEmail).Msg("ticket_worker: failed to enqueue email")
		}
	}
}
