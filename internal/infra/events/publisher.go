package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// TopicPrefix префикс топиков событий бронирования
const TopicPrefix = "seatbooking.events."

// NewRedisPublisher создает watermill publisher поверх redis streams
func NewRedisPublisher(rdb redis.UniversalClient, logger watermill.LoggerAdapter) (message.Publisher, error) {
	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: rdb,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("events: failed to create redis stream publisher: %w", err)
	}
	return publisher, nil
}

// NewEventBus создает шину событий с JSON-сериализацией; топик = префикс + имя события
func NewEventBus(pub message.Publisher, logger watermill.LoggerAdapter) (*cqrs.EventBus, error) {
	return cqrs.NewEventBusWithConfig(pub, cqrs.EventBusConfig{
		GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
			return TopicPrefix + params.EventName, nil
		},
		Marshaler: cqrs.JSONMarshaler{
			GenerateName: cqrs.StructName,
		},
		Logger: logger,
	})
}

// Bus шина, в которую публикуются события
type Bus interface {
	Publish(ctx context.Context, event any) error
}

// Publisher публикует события жизненного цикла бронирования
type Publisher struct {
	bus Bus
	now func() time.Time
}

// NewPublisher создает публикатор событий бронирования
func NewPublisher(bus Bus) *Publisher {
	return &Publisher{bus: bus, now: time.Now}
}

// BookingConfirmed публикует событие подтверждения
func (p *Publisher) BookingConfirmed(ctx context.Context, b *domain.Booking) error {
	event := BookingConfirmed{
		Header:        p.header(),
		BookingID:     b.ID,
		ReferenceCode: b.ReferenceCode,
		UserID:        b.UserID,
		LocationID:    b.LocationID,
		SeatIDs:       b.SeatIDs,
		StartAt:       b.Window.Start,
		EndAt:         b.Window.End,
		TotalAmount:   b.TotalAmount,
	}
	if b.PaymentReference != nil {
		event.PaymentReference = *b.PaymentReference
	}
	return p.publish(ctx, event)
}

// PaymentFailed публикует событие неуспешной оплаты
func (p *Publisher) PaymentFailed(ctx context.Context, bookingID int64, reference, gatewayStatus string) error {
	return p.publish(ctx, BookingPaymentFailed{
		Header:           p.header(),
		BookingID:        bookingID,
		PaymentReference: reference,
		GatewayStatus:    gatewayStatus,
	})
}

// BookingRescheduled публикует событие переноса
func (p *Publisher) BookingRescheduled(ctx context.Context, b *domain.Booking) error {
	return p.publish(ctx, BookingRescheduled{
		Header:         p.header(),
		BookingID:      b.ID,
		SeatIDs:        b.SeatIDs,
		StartAt:        b.Window.Start,
		EndAt:          b.Window.End,
		RescheduleCost: b.RescheduleCost,
		CreditAmount:   b.CreditAmount,
	})
}

func (p *Publisher) header() Header {
	return Header{
		ID:          uuid.NewString(),
		PublishedAt: p.now().UTC(),
	}
}

func (p *Publisher) publish(ctx context.Context, event any) error {
	if err := p.bus.Publish(ctx, event); err != nil {
		return fmt.Errorf("%w: %T: %v", ErrPublish, event, err)
	}
	return nil
}

// NopPublisher отбрасывает события, когда публикация выключена
type NopPublisher struct{}

func (NopPublisher) BookingConfirmed(context.Context, *domain.Booking) error    { return nil }
func (NopPublisher) PaymentFailed(context.Context, int64, string, string) error { return nil }
func (NopPublisher) BookingRescheduled(context.Context, *domain.Booking) error  { return nil }
