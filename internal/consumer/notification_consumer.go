package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Eursukkul/nexo-service/internal/events"
	"github.com/Eursukkul/nexo-service/pkg/logger"
	"github.com/Eursukkul/nexo-service/pkg/mailer"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	NotificationQueue   = "nexo.notifications"
	NotificationBinding = "#"
)

// errBadPayload marks messages that will never succeed and must not be requeued.
var errBadPayload = errors.New("bad payload")

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Acknowledger is the subset of amqp.Delivery the consumer needs.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type NotificationConsumer struct {
	mail Mailer
	log  *logger.Logger
}

func NewNotificationConsumer(mail Mailer, log *logger.Logger) *NotificationConsumer {
	return &NotificationConsumer{mail: mail, log: log}
}

// Start handles deliveries until msgs is closed.
func (nc *NotificationConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			nc.handle(ctx, msg.RoutingKey, msg.Body, msg.Redelivered, &msg)
		}
		nc.log.Info("notification channel closed, stopping consumer")
	}()
}

// handle acks on success. A bad payload is dropped; a mail failure is
// requeued once and dropped on redelivery.
func (nc *NotificationConsumer) handle(ctx context.Context, routingKey string, body []byte, redelivered bool, ack Acknowledger) {
	err := nc.process(ctx, routingKey, body)
	switch {
	case err == nil:
		nc.settle(routingKey, "ack", ack.Ack(false))
	case errors.Is(err, errBadPayload):
		nc.log.Warn("dropping notification", "routing_key", routingKey, "error", err)
		nc.settle(routingKey, "nack", ack.Nack(false, false))
	case redelivered:
		nc.log.Error("notification failed after redelivery, dropping", "routing_key", routingKey, "error", err)
		nc.settle(routingKey, "nack", ack.Nack(false, false))
	default:
		nc.log.Warn("notification failed, requeueing", "routing_key", routingKey, "error", err)
		nc.settle(routingKey, "requeue", ack.Nack(false, true))
	}
}

// settle logs a delivery acknowledgement the broker refused.
func (nc *NotificationConsumer) settle(routingKey, action string, err error) {
	if err != nil {
		nc.log.Warn("failed to acknowledge notification", "routing_key", routingKey, "action", action, "error", err)
	}
}

func (nc *NotificationConsumer) process(ctx context.Context, routingKey string, body []byte) error {
	var msg mailer.Message

	switch routingKey {
	case events.UserRegistered:
		var ev events.UserRegisteredEvent
		if err := decode(body, &ev); err != nil {
			return err
		}
		msg = welcomeMail(ev)

	case events.BookingCreated, events.BookingStatusChanged:
		var ev events.BookingEvent
		if err := decode(body, &ev); err != nil {
			return err
		}
		if ev.Status == "" {
			return fmt.Errorf("%w: booking event without status", errBadPayload)
		}
		msg = bookingMail(routingKey, ev)

	case events.WalletPaymentUpdated:
		var ev events.PaymentEvent
		if err := decode(body, &ev); err != nil {
			return err
		}
		msg = paymentMail(ev)

	default:
		nc.log.Debug("ignoring event", "routing_key", routingKey)
		return nil
	}

	if len(msg.To) == 0 || msg.To[0] == "" {
		return fmt.Errorf("%w: %s event has no recipient", errBadPayload, routingKey)
	}
	if err := nc.mail.Send(ctx, msg); err != nil {
		return err
	}
	nc.log.Info("notification sent", "routing_key", routingKey, "to", msg.To[0])
	return nil
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", errBadPayload, err)
	}
	return nil
}

func welcomeMail(ev events.UserRegisteredEvent) mailer.Message {
	name := ev.FullName
	if name == "" {
		name = ev.Email
	}
	return mailer.Message{
		To:      []string{ev.Email},
		Subject: "Welcome to NEXO!",
		Body:    fmt.Sprintf("Hello %s,\n\nWelcome to NEXO platform. We're glad to have you here!", name),
	}
}

func bookingMail(routingKey string, ev events.BookingEvent) mailer.Message {
	subject := "Booking Confirmation - NEXO"
	intro := "Your booking has been received."
	if routingKey == events.BookingStatusChanged {
		subject = fmt.Sprintf("Booking %s - NEXO", strings.ToUpper(ev.Status[:1])+ev.Status[1:])
		intro = fmt.Sprintf("Your booking is now %s.", ev.Status)
	}
	body := fmt.Sprintf("%s\n\nBooking #%d (%s)\n%s\nFrom %s to %s\nTotal: %s NPR\nStatus: %s",
		intro, ev.BookingID, ev.Kind, ev.Summary,
		ev.StartDate.Format("2006-01-02"), ev.EndDate.Format("2006-01-02"),
		ev.TotalPrice.StringFixed(2), ev.Status)
	return mailer.Message{To: []string{ev.Email}, Subject: subject, Body: body}
}

func paymentMail(ev events.PaymentEvent) mailer.Message {
	return mailer.Message{
		To:      []string{ev.Email},
		Subject: fmt.Sprintf("Payment %s - Nexo Paisa", ev.Status),
		Body: fmt.Sprintf("Your payment of %s %s (reference %s) is %s.",
			ev.Amount.StringFixed(2), ev.Currency, ev.Reference, ev.Status),
	}
}
