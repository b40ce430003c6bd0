// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/tomtom215/setlist/internal/logging"
	"github.com/tomtom215/setlist/internal/metrics"
)

// BusConfig holds router and pub/sub settings.
type BusConfig struct {
	// CloseTimeout bounds how long Close waits for in-flight handlers.
	CloseTimeout time.Duration

	// OutputBuffer is the per-subscriber channel buffer.
	OutputBuffer int64

	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
}

// DefaultBusConfig returns production defaults.
func DefaultBusConfig() BusConfig {
	return BusConfig{
		CloseTimeout:         10 * time.Second,
		OutputBuffer:         64,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     5 * time.Second,
		RetryMultiplier:      2.0,
	}
}

// Bus publishes and dispatches domain events in process.
type Bus struct {
	pubsub   *gochannel.GoChannel
	router   *message.Router
	logger   watermill.LoggerAdapter
	handlers atomic.Int32
	running  atomic.Bool
}

// NewBus creates a bus. Handlers must be registered before Run.
func NewBus(cfg BusConfig, logger *slog.Logger) (*Bus, error) {
	var wmLogger watermill.LoggerAdapter = watermill.NopLogger{}
	if logger != nil {
		wmLogger = watermill.NewSlogLogger(logger)
	}

	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.OutputBuffer,
	}, wmLogger)

	router, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: cfg.CloseTimeout,
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      cfg.RetryMaxRetries,
			InitialInterval: cfg.RetryInitialInterval,
			MaxInterval:     cfg.RetryMaxInterval,
			Multiplier:      cfg.RetryMultiplier,
			Logger:          wmLogger,
		}.Middleware,
	)

	return &Bus{pubsub: pubsub, router: router, logger: wmLogger}, nil
}

// PublishFeedbackRecorded publishes ev. The request id in ctx, if any,
// becomes the message correlation id.
func (b *Bus) PublishFeedbackRecorded(ctx context.Context, ev FeedbackRecorded) error {
	return b.publish(ctx, TopicFeedbackRecorded, ev)
}

func (b *Bus) publish(ctx context.Context, topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		middleware.SetCorrelationID(id, msg)
	}
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	metrics.EventsPublished.WithLabelValues(topic).Inc()
	return nil
}

// OnFeedbackRecorded registers a consumer for TopicFeedbackRecorded.
func (b *Bus) OnFeedbackRecorded(name string, fn func(ctx context.Context, ev FeedbackRecorded) error) {
	b.handlers.Add(1)
	b.router.AddConsumerHandler(name, TopicFeedbackRecorded, b.pubsub, func(msg *message.Message) error {
		var ev FeedbackRecorded
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			// Malformed payloads never succeed on retry.
			metrics.RecordEventConsumed(TopicFeedbackRecorded, err)
			b.logger.Error("dropping malformed event", err, watermill.LogFields{"topic": TopicFeedbackRecorded})
			return nil
		}

		ctx := msg.Context()
		if id := middleware.MessageCorrelationID(msg); id != "" {
			ctx = logging.ContextWithRequestID(ctx, id)
		}
		err := fn(ctx, ev)
		metrics.RecordEventConsumed(TopicFeedbackRecorded, err)
		return err
	})
}

// HandlerCount returns the number of registered consumers.
func (b *Bus) HandlerCount() int {
	return int(b.handlers.Load())
}

// Run starts the router and blocks until ctx is canceled or Close is called.
func (b *Bus) Run(ctx context.Context) error {
	b.running.Store(true)
	defer b.running.Store(false)
	return b.router.Run(ctx)
}

// Running is closed once every handler has subscribed.
func (b *Bus) Running() <-chan struct{} {
	return b.router.Running()
}

// IsRunning reports whether Run is active.
func (b *Bus) IsRunning() bool {
	return b.running.Load()
}

// Close stops the router and the pub/sub.
func (b *Bus) Close() error {
	if err := b.router.Close(); err != nil {
		return fmt.Errorf("close router: %w", err)
	}
	return b.pubsub.Close()
}
