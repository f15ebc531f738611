package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublisherClosed = errors.New("rabbitmq: publisher closed")

// amqpConn is a connection plus one channel bound to a declared work queue.
type amqpConn struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
}

func dialQueue(url, queue string) (*amqpConn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := DeclareQueue(ch, queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &amqpConn{conn: conn, ch: ch, Queue: queue}, nil
}

// DeclareQueue declares the durable work queue shared by publisher and worker.
func DeclareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	return err
}

func (a *amqpConn) Close() {
	if a == nil {
		return
	}
	if a.ch != nil {
		_ = a.ch.Close()
	}
	if a.conn != nil {
		_ = a.conn.Close()
	}
}

// RabbitPublisher publishes JSON jobs to one queue via the default exchange.
// Publishing is serialized; an AMQP channel is not safe for concurrent writers.
type RabbitPublisher struct {
	mu sync.Mutex
	*amqpConn
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	a, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	return &RabbitPublisher{amqpConn: a}, nil
}

func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.amqpConn.Close()
	p.amqpConn = nil
}

// PublishJSON publishes body as a persistent JSON message with a fresh message id.
func (p *RabbitPublisher) PublishJSON(ctx context.Context, body any) error {
	msg, err := jsonPublishing(body, time.Now().UTC())
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.amqpConn == nil {
		return ErrPublisherClosed
	}
	return p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		msg,
	)
}

func jsonPublishing(body any, now time.Time) (amqp.Publishing, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    now,
		Body:         b,
	}, nil
}

// AttemptHeader counts how many times a delivery has already failed.
const AttemptHeader = "x-attempt"

// DeadLetterQueue is where deliveries that will not be retried again end up.
func DeadLetterQueue(queue string) string { return queue + ".dead" }

// RetryPolicy caps redeliveries and spaces them out exponentially.
type RetryPolicy struct {
	MaxAttempts int
	Base        time.Duration
	Max         time.Duration
}

// Backoff is the wait before retrying after the given failed attempt (1-based).
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt < 1 || p.Base <= 0 {
		return 0
	}
	d := p.Base
	for i := 1; i < attempt; i++ {
		d *= 2
		if p.Max > 0 && d >= p.Max {
			return p.Max
		}
	}
	if p.Max > 0 && d > p.Max {
		return p.Max
	}
	return d
}

// Exhausted reports whether attempt failures use up the policy.
func (p RetryPolicy) Exhausted(attempt int) bool {
	return p.MaxAttempts > 0 && attempt >= p.MaxAttempts
}

// AttemptOf reads AttemptHeader; a missing or malformed header counts as zero.
func AttemptOf(h amqp.Table) int {
	switch v := h[AttemptHeader].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	}
	return 0
}

// RabbitConsumer receives deliveries from one queue with manual acks.
// Retry and DeadLetter publish on the consuming channel, so call them from
// the goroutine that reads Deliveries.
type RabbitConsumer struct {
	*amqpConn
}

// NewRabbitConsumer declares queue and its dead-letter queue and limits
// unacked deliveries to prefetch.
func NewRabbitConsumer(url, queue string, prefetch int) (*RabbitConsumer, error) {
	a, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	if err := DeclareQueue(a.ch, DeadLetterQueue(queue)); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.ch.Qos(prefetch, 0, false); err != nil {
		a.Close()
		return nil, err
	}
	return &RabbitConsumer{amqpConn: a}, nil
}

// republishing copies d with extra headers so it can be queued again.
func republishing(d amqp.Delivery, headers amqp.Table) amqp.Publishing {
	h := amqp.Table{}
	for k, v := range d.Headers {
		h[k] = v
	}
	for k, v := range headers {
		h[k] = v
	}
	return amqp.Publishing{
		Headers:      h,
		ContentType:  d.ContentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    d.MessageId,
		Timestamp:    d.Timestamp,
		Body:         d.Body,
	}
}

// Retry queues a copy of d marked with attempt failures, then acks d.
func (c *RabbitConsumer) Retry(ctx context.Context, d amqp.Delivery, attempt int) error {
	return c.moveTo(ctx, d, c.Queue, amqp.Table{AttemptHeader: int32(attempt)})
}

// DeadLetter parks d on the dead-letter queue with the reason, then acks d.
func (c *RabbitConsumer) DeadLetter(ctx context.Context, d amqp.Delivery, attempt int, reason string) error {
	return c.moveTo(ctx, d, DeadLetterQueue(c.Queue), amqp.Table{AttemptHeader: int32(attempt), "x-error": reason})
}

func (c *RabbitConsumer) moveTo(ctx context.Context, d amqp.Delivery, queue string, headers amqp.Table) error {
	if err := c.ch.PublishWithContext(ctx, "", queue, false, false, republishing(d, headers)); err != nil {
		return err
	}
	return d.Ack(false)
}

// Deliveries starts consuming. The channel closes when the consumer is closed.
func (c *RabbitConsumer) Deliveries(tag string) (<-chan amqp.Delivery, error) {
	return c.ch.Consume(c.Queue, tag, false, false, false, false, nil)
}
