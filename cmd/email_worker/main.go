package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fittrack-api/config"
	"github.com/oksasatya/fittrack-api/pkg/helpers"
	"github.com/oksasatya/fittrack-api/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	// prefetch for fair dispatch across workers
	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, 16)
	if err != nil {
		logger.Fatalf("rabbitmq: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries(cfg.AppName + "-email-worker")
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	done := make(chan struct{})

	w := &worker{
		logger: logger,
		sender: mg,
		queue:  consumer,
		policy: helpers.RetryPolicy{
			MaxAttempts: cfg.EmailMaxAttempts,
			Base:        cfg.EmailRetryBase,
			Max:         cfg.EmailRetryMax,
		},
	}
	go func() {
		defer close(done)
		for msg := range msgs {
			w.handle(ctx, msg)
		}
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	<-ctx.Done()
	logger.Info("shutting down...")
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// requeuer moves a delivery back onto the work queue or onto the dead-letter queue.
type requeuer interface {
	Retry(ctx context.Context, d amqp.Delivery, attempt int) error
	DeadLetter(ctx context.Context, d amqp.Delivery, attempt int, reason string) error
}

type worker struct {
	logger *logrus.Logger
	sender mailer.Sender
	queue  requeuer
	policy helpers.RetryPolicy
	sleep  func(ctx context.Context, d time.Duration) error
}

type outcome int

const (
	sent outcome = iota
	retryLater
	deadLetter
)

// decide maps a processing result and the failures so far to what happens next.
func decide(err error, attempt int, p helpers.RetryPolicy) outcome {
	switch {
	case err == nil:
		return sent
	case errors.Is(err, mailer.ErrBadJob), p.Exhausted(attempt):
		return deadLetter
	}
	return retryLater
}

func (w *worker) handle(ctx context.Context, msg amqp.Delivery) {
	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	err := mailer.Process(c, w.sender, msg.Body)
	cancel()

	attempt := helpers.AttemptOf(msg.Headers)
	if err != nil {
		attempt++
	}
	fields := logrus.Fields{"message_id": msg.MessageId, "attempt": attempt}

	switch decide(err, attempt, w.policy) {
	case sent:
		helpers.LogInfo(w.logger, "email sent", fields)
		_ = msg.Ack(false)
	case deadLetter:
		helpers.LogError(w.logger, "email job dead-lettered", err, fields)
		if derr := w.queue.DeadLetter(ctx, msg, attempt, err.Error()); derr != nil {
			helpers.LogError(w.logger, "dead-letter failed, dropping", derr, fields)
			_ = msg.Nack(false, false)
		}
	case retryLater:
		wait := w.policy.Backoff(attempt)
		fields["retry_in"] = wait.String()
		helpers.LogError(w.logger, "send failed, retrying", err, fields)
		if serr := w.wait(ctx, wait); serr != nil {
			// shutting down; the broker redelivers it to the next worker
			_ = msg.Nack(false, true)
			return
		}
		if rerr := w.queue.Retry(ctx, msg, attempt); rerr != nil {
			helpers.LogError(w.logger, "retry publish failed, requeueing", rerr, fields)
			_ = msg.Nack(false, true)
		}
	}
}

func (w *worker) wait(ctx context.Context, d time.Duration) error {
	if w.sleep != nil {
		return w.sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
