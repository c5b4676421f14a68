package rabbitmq

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// HandlerFunc is function which handles consumed messages.
type HandlerFunc func(ctx context.Context, message []byte) error

// RabbitMQ consumes and publishes amqp messages on one exchange.
type RabbitMQ struct {
	channel   *amqp.Channel
	exchange  string
	isRunning chan struct{}
}

// NewRabbitMQ opens a channel on connection and declares the exchange.
func NewRabbitMQ(connection *amqp.Connection, exchange string) (*RabbitMQ, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("can't open channel: %w", err)
	}

	err = channel.ExchangeDeclare(exchange, "direct", true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("can't declare exchange: %w", err)
	}

	return &RabbitMQ{
		channel:  channel,
		exchange: exchange,
	}, nil
}

// DeclareQueue declares a durable queue and binds it to routingKey on the
// exchange, so publisher and consumer can start in any order.
func (mq *RabbitMQ) DeclareQueue(queue, routingKey string) error {
	if _, err := mq.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("can't declare queue: %w", err)
	}
	if err := mq.channel.QueueBind(queue, routingKey, mq.exchange, false, nil); err != nil {
		return fmt.Errorf("can't bind queue: %w", err)
	}

	return nil
}

// Publish publishes message to routing key.
func (mq *RabbitMQ) Publish(ctx context.Context, routingKey string, message []byte) error {
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         message,
	}

	return mq.channel.PublishWithContext(
		ctx,
		mq.exchange,
		routingKey,
		false,
		false,
		msg,
	)
}

// Consume consumes messages from queue one at a time and passes them to
// handler. A handler error nacks the delivery without requeue; retry is
// the handler's responsibility. Returned channel carries handler and
// ack/nack errors. Consuming runs in background until ctx is closed.
func (mq *RabbitMQ) Consume(ctx context.Context, queue string, handler HandlerFunc) (<-chan error, error) {
	consumerID, err := uuid.NewUUID()
	if err != nil {
		return nil, fmt.Errorf("can't create consumer ID: %w", err)
	}

	// one un-acked pipeline run per worker
	if err := mq.channel.Qos(1, 0, false); err != nil {
		return nil, fmt.Errorf("can't set channel QoS: %w", err)
	}

	deliveries, err := mq.channel.Consume(
		queue,
		consumerID.String(),
		false, // auto acknowledge
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("can't start consuming: %w", err)
	}

	consumingErrors := make(chan error)
	mq.isRunning = make(chan struct{})
	go func() {
		defer close(mq.isRunning)
		mq.consumeMessages(ctx, deliveries, consumingErrors, handler)
	}()

	return consumingErrors, nil
}

func (mq *RabbitMQ) consumeMessages(
	ctx context.Context,
	deliveries <-chan amqp.Delivery,
	consumingErrors chan error,
	handler HandlerFunc,
) {
	for delivery := range deliveries {
		settleErr := mq.settleDelivery(ctx, &delivery, handler(ctx, delivery.Body), consumingErrors)
		if settleErr != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// settleDelivery acks the delivery on handler success and nacks it
// otherwise, reporting handler and settle failures to consumingErrors.
// A non-nil return means the context was closed while reporting.
func (mq *RabbitMQ) settleDelivery(
	ctx context.Context,
	delivery *amqp.Delivery,
	handlerErr error,
	consumingErrors chan error,
) error {
	if handlerErr == nil {
		if err := delivery.Ack(false); err != nil {
			return pushError(ctx, fmt.Errorf("can't ack message: %w", err), consumingErrors)
		}
		return nil
	}

	if err := pushError(ctx, handlerErr, consumingErrors); err != nil {
		return err
	}
	if err := delivery.Nack(false, false); err != nil {
		return pushError(ctx, fmt.Errorf("can't nack message: %w", err), consumingErrors)
	}

	return nil
}

// Done returns channel which will be closed when consuming is finished.
func (mq *RabbitMQ) Done() chan struct{} {
	return mq.isRunning
}

func pushError(ctx context.Context, err error, errChan chan error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case errChan <- err:
	}
	return nil
}
