package events_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resort/config"
	kafkaMocks "resort/infras/kafka/mocks"
	"resort/infras/otel/mocks"
	s3Mocks "resort/infras/s3/mocks"
	invoiceMocks "resort/internal/domains/invoice/mocks"
	"resort/internal/events"
	"resort/shared/constant"
	"resort/shared/failure"
)

const topic = "resort.booking.events"

type fixture struct {
	kafka    *kafkaMocks.MockClient
	invoices *invoiceMocks.MockInvoiceService
	storage  *s3Mocks.MockS3
	consumer *events.Consumer
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Booking.InvoiceDir = "invoices"
	cfg.Kafka.ConsumerGroup = "resort-worker"
	cfg.Kafka.Topics.BookingEvents = topic

	f := &fixture{
		kafka:    kafkaMocks.NewMockClient(ctrl),
		invoices: invoiceMocks.NewMockInvoiceService(ctrl),
		storage:  s3Mocks.NewMockS3(ctrl),
	}

	f.consumer = events.NewConsumer(cfg, f.kafka, f.invoices, f.storage, mocks.NewOtel())

	return f
}

func encode(t *testing.T, event events.BookingEvent) kafkaGo.Message {
	msg := event.Message()

	kafkaMsg, err := msg.ToKafkaMessage(topic)
	require.NoError(t, err)

	return kafkaMsg
}

func confirmed() events.BookingEvent {
	return events.BookingEvent{
		Type:          events.TypeBookingConfirmed,
		BookingID:     "booking-1",
		InvoiceID:     "invoice-1",
		InvoiceNumber: "INV-1849203011",
		UserID:        "user-1",
		RoomID:        "room-1",
		Status:        "confirmed",
	}
}

func TestBookingEvent_Message(t *testing.T) {
	msg := encode(t, confirmed())

	assert.Equal(t, "booking-1", string(msg.Key))
	assert.Equal(t, topic, msg.Topic)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, events.HeaderEventType, msg.Headers[0].Key)
	assert.Equal(t, events.TypeBookingConfirmed, string(msg.Headers[0].Value))
}

func TestConsumer_Handle(t *testing.T) {
	tests := []struct {
		name      string
		msg       func(t *testing.T) kafkaGo.Message
		setupMock func(f *fixture)
		wantErr   bool
	}{
		{
			name: "archives invoice of confirmed booking",
			msg:  func(t *testing.T) kafkaGo.Message { return encode(t, confirmed()) },
			setupMock: func(f *fixture) {
				f.invoices.EXPECT().
					Render(gomock.Any(), "invoice-1").
					DoAndReturn(func(ctx context.Context, _ string) (string, error) {
						assert.Equal(t, constant.RoleAdmin, ctx.Value(constant.ContextKeyUserRole))

						return "+====+\n", nil
					})
				f.storage.EXPECT().
					UploadFileBytes(gomock.Any(), "invoices", "INV-1849203011.txt", constant.ContentTypeText, []byte("+====+\n")).
					Return("https://cdn.example.com/invoices/INV-1849203011.txt", nil)
			},
		},
		{
			name: "storage failure is retried",
			msg:  func(t *testing.T) kafkaGo.Message { return encode(t, confirmed()) },
			setupMock: func(f *fixture) {
				f.invoices.EXPECT().Render(gomock.Any(), "invoice-1").Return("text", nil)
				f.storage.EXPECT().
					UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("bucket unavailable"))
			},
			wantErr: true,
		},
		{
			name: "missing invoice is skipped",
			msg:  func(t *testing.T) kafkaGo.Message { return encode(t, confirmed()) },
			setupMock: func(f *fixture) {
				f.invoices.EXPECT().Render(gomock.Any(), "invoice-1").Return("", failure.NotFound("invoice not found"))
			},
		},
		{
			name: "cancellation needs no archive",
			msg: func(t *testing.T) kafkaGo.Message {
				event := confirmed()
				event.Type = events.TypeBookingCancelled

				return encode(t, event)
			},
			setupMock: func(*fixture) {},
		},
		{
			name: "malformed payload is skipped",
			msg: func(*testing.T) kafkaGo.Message {
				return kafkaGo.Message{Topic: topic, Key: []byte("booking-1"), Value: []byte("{not json")}
			},
			setupMock: func(*fixture) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.consumer.Handle(context.Background(), tt.msg(t))

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestConsumer_Run(t *testing.T) {
	f := newFixture(t)

	f.kafka.EXPECT().Consume(gomock.Any(), "resort-worker", topic, gomock.Any()).Return(nil)

	assert.NoError(t, f.consumer.Run(context.Background()))
}

func TestConsumer_Handle_RenderError(t *testing.T) {
	f := newFixture(t)

	f.invoices.EXPECT().Render(gomock.Any(), "invoice-1").Return("", failure.InternalError(errors.New("db down")))

	err := f.consumer.Handle(context.Background(), encode(t, confirmed()))

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}
