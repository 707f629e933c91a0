package nats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/apurvakhangal/unmasked/internal/infrastructure/resilience"
)

// Queue carries analysis ids from the api to the worker pool over a
// core NATS subject with a shared queue group.
type Queue struct {
	conn       *nats.Conn
	subject    string
	executor   *resilience.Executor
	logger     *slog.Logger
	onQueueLag func(time.Duration)
}

type Options struct {
	ConnectTimeout     time.Duration
	ReconnectWait      time.Duration
	MaxReconnects      int
	ResilienceExecutor *resilience.Executor
	Logger             *slog.Logger
	// OnQueueLag reports the time a job spent queued before a worker
	// picked it up.
	OnQueueLag func(time.Duration)
}

func New(url, subject string, options Options) (*Queue, error) {
	if options.ConnectTimeout <= 0 {
		options.ConnectTimeout = 2 * time.Second
	}
	if options.ReconnectWait <= 0 {
		options.ReconnectWait = 2 * time.Second
	}
	if options.MaxReconnects <= 0 {
		options.MaxReconnects = 60
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(
		url,
		nats.Name("unmasked"),
		nats.Timeout(options.ConnectTimeout),
		nats.ReconnectWait(options.ReconnectWait),
		nats.MaxReconnects(options.MaxReconnects),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Queue{
		conn:       conn,
		subject:    subject,
		executor:   options.ResilienceExecutor,
		logger:     logger,
		onQueueLag: options.OnQueueLag,
	}, nil
}

func (q *Queue) Close() {
	if q.conn != nil {
		q.conn.Close()
	}
}

func (q *Queue) PublishAnalysisSubmitted(ctx context.Context, analysisID string) error {
	call := func(context.Context) error {
		msg := nats.NewMsg(q.subject)
		msg.Data = []byte(analysisID)
		msg.Header.Set(enqueuedAtHeader, time.Now().UTC().Format(time.RFC3339Nano))
		if err := q.conn.PublishMsg(msg); err != nil {
			return fmt.Errorf("nats publish: %w", err)
		}
		return nil
	}

	var err error
	if q.executor != nil {
		err = q.executor.Execute(ctx, "nats.publish", call, classifyQueueError)
	} else {
		err = call(ctx)
	}
	return wrapTemporaryIfNeeded(err)
}

// SubscribeAnalysisSubmitted blocks until ctx is done, then drains the
// subscription so in-flight jobs finish before the worker exits.
func (q *Queue) SubscribeAnalysisSubmitted(ctx context.Context, handler func(context.Context, string) error) error {
	sub, err := q.conn.QueueSubscribe(q.subject, "workers", func(msg *nats.Msg) {
		if errors.Is(ctx.Err(), context.Canceled) {
			return
		}

		q.reportQueueLag(msg)

		jobCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := handler(jobCtx, string(msg.Data)); err != nil {
			q.logger.Error("analysis_job_failed", "analysis_id", string(msg.Data), "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	if err := q.conn.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	if err := q.conn.FlushTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("nats flush after drain: %w", err)
	}
	return nil
}

const enqueuedAtHeader = "Enqueued-At"

func (q *Queue) reportQueueLag(msg *nats.Msg) {
	if q.onQueueLag == nil {
		return
	}
	enqueuedAt, err := time.Parse(time.RFC3339Nano, msg.Header.Get(enqueuedAtHeader))
	if err != nil {
		return
	}
	if lag := time.Since(enqueuedAt); lag > 0 {
		q.onQueueLag(lag)
	}
}
