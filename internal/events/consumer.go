package events

import (
	"context"
	"net/http"

	"resort/config"
	"resort/infras/kafka"
	"resort/infras/otel"
	"resort/infras/s3"
	invoiceService "resort/internal/domains/invoice/service"
	"resort/shared/constant"
	"resort/shared/failure"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const invoiceExtension = ".txt"

// Consumer archives the printable invoice of every confirmed booking to object storage.
type Consumer struct {
	cfg      *config.Config
	kafka    kafka.Client
	invoices invoiceService.Invoice
	storage  s3.S3
	otel     otel.Otel
}

func NewConsumer(cfg *config.Config, kafka kafka.Client, invoices invoiceService.Invoice, storage s3.S3, otel otel.Otel) *Consumer {
	return &Consumer{
		cfg:      cfg,
		kafka:    kafka,
		invoices: invoices,
		storage:  storage,
		otel:     otel,
	}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	log.Info().Str("topic", c.cfg.Kafka.Topics.BookingEvents).Msg("Booking event consumer started")

	return c.kafka.Consume(ctx, c.cfg.Kafka.ConsumerGroup, c.cfg.Kafka.Topics.BookingEvents, c.Handle) //nolint:wrapcheck
}

// Handle processes one booking event. Malformed and unknown events are skipped so
// they do not block the partition; storage failures are returned for redelivery.
func (c *Consumer) Handle(ctx context.Context, msg kafkaGo.Message) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Handle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	event, decodeErr := kafka.Decode[BookingEvent](msg)
	if decodeErr != nil {
		log.Error().Err(decodeErr).Str("key", string(msg.Key)).Msg("Skipping malformed booking event")

		return nil
	}

	if header := kafka.Header(msg, HeaderEventType); header != "" && header != event.Type {
		log.Warn().Str("header", header).Str("type", event.Type).Msg("Booking event header and payload disagree")
	}

	switch event.Type {
	case TypeBookingConfirmed:
		return c.archiveInvoice(ctx, event)
	case TypeBookingCancelled:
		log.Info().Str("booking_id", event.BookingID).Str("room_id", event.RoomID).Msg("Booking cancelled")

		return nil
	default:
		log.Warn().Str("type", event.Type).Msg("Skipping unknown booking event")

		return nil
	}
}

func (c *Consumer) archiveInvoice(ctx context.Context, event BookingEvent) error {
	text, err := c.invoices.Render(systemContext(ctx), event.InvoiceID)
	if err != nil {
		if failure.GetCode(err) == http.StatusNotFound {
			log.Warn().Str("invoice_id", event.InvoiceID).Msg("Invoice of confirmed booking not found")

			return nil
		}

		return err
	}

	url, err := c.storage.UploadFileBytes(ctx, c.cfg.Booking.InvoiceDir, event.InvoiceNumber+invoiceExtension, constant.ContentTypeText, []byte(text))
	if err != nil {
		return err //nolint:wrapcheck
	}

	log.Info().Str("booking_id", event.BookingID).Str("invoice", event.InvoiceNumber).Str("url", url).Msg("Invoice archived")

	return nil
}

// systemContext lets the worker read invoices of every customer.
func systemContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUsername, constant.ContextSystem)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}
