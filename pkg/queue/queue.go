// Package queue provides the Redis-backed run queue. The API enqueues
// run requests; the worker drains them and drives the executor.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const DefaultKey = "opsdeck:runs"

// RunRequest is the wire format of one queued run.
type RunRequest struct {
	WorkflowID  string         `json:"workflow_id"`
	InitialData map[string]any `json:"initial_data,omitempty"`
	EnqueuedAt  time.Time      `json:"enqueued_at"`
}

// RunHandler processes one dequeued run request.
type RunHandler func(ctx context.Context, req RunRequest) error

type Config struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Queue is a Redis list used as a FIFO run queue. Enqueue pushes to
// the tail, the consumer pops from the head.
type Queue struct {
	config Config
	client redis.UniversalClient
	logger *slog.Logger
	stopCh chan struct{}
	wg     sync.WaitGroup
}

func New(config Config, logger *slog.Logger) (*Queue, error) {
	if config.Addr == "" {
		config.Addr = "localhost:6379"
	}

	if config.Key == "" {
		config.Key = DefaultKey
	}

	return &Queue{
		config: config,
		stopCh: make(chan struct{}),
		logger: logger.With(
			"module", "run_queue",
			"key", config.Key,
		),
	}, nil
}

// Connect establishes the Redis connection and verifies it with a
// ping.
func (q *Queue) Connect(ctx context.Context) error {
	q.client = redis.NewClient(&redis.Options{
		Addr:     q.config.Addr,
		Password: q.config.Password,
		DB:       q.config.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := q.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	q.logger.InfoContext(ctx, "Connected to Redis", "addr", q.config.Addr, "db", q.config.DB)

	return nil
}

// Enqueue appends a run request to the queue.
func (q *Queue) Enqueue(ctx context.Context, workflowID string, initialData map[string]any) error {
	if workflowID == "" {
		return errors.New("workflow id is required")
	}

	payload, err := json.Marshal(RunRequest{
		WorkflowID:  workflowID,
		InitialData: initialData,
		EnqueuedAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode run request: %w", err)
	}

	err = q.client.RPush(ctx, q.config.Key, payload).Err()
	if err != nil {
		return fmt.Errorf("failed to enqueue run request: %w", err)
	}

	q.logger.InfoContext(ctx, "Enqueued run request", "workflow_id", workflowID)

	return nil
}

// Start launches the consumer loop. Each dequeued request is handed to
// the handler on its own goroutine so a slow run does not block the
// queue.
func (q *Queue) Start(ctx context.Context, handler RunHandler) {
	q.wg.Add(1)

	go q.consume(ctx, handler)
}

func (q *Queue) consume(ctx context.Context, handler RunHandler) {
	defer q.wg.Done()

	q.logger.InfoContext(ctx, "Starting run queue consumer")

	for {
		select {
		case <-q.stopCh:
			q.logger.InfoContext(ctx, "Run queue consumer stopped")

			return
		case <-ctx.Done():
			q.logger.InfoContext(ctx, "Context cancelled, stopping run queue consumer")

			return
		default:
			err := q.processMessage(ctx, handler)
			if err != nil {
				q.logger.ErrorContext(ctx, "Error processing queued run", "error", err)
				time.Sleep(1 * time.Second)
			}
		}
	}
}

func (q *Queue) processMessage(ctx context.Context, handler RunHandler) error {
	result, err := q.client.BLPop(ctx, 1*time.Second, q.config.Key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}

		return fmt.Errorf("failed to pop run request: %w", err)
	}

	if len(result) < 2 {
		return nil
	}

	var req RunRequest

	err = json.Unmarshal([]byte(result[1]), &req)
	if err != nil {
		return fmt.Errorf("failed to decode run request: %w", err)
	}

	if req.WorkflowID == "" {
		q.logger.WarnContext(ctx, "Dropping run request without workflow id")

		return nil
	}

	q.dispatch(ctx, req, handler)

	return nil
}

// dispatch hands a popped request to the handler on its own goroutine.
// The goroutine is tracked so Stop drains in-flight runs, and it gets
// a context detached from cancellation: the message is already off the
// queue, so aborting the handler at shutdown would lose the run.
func (q *Queue) dispatch(ctx context.Context, req RunRequest, handler RunHandler) {
	q.wg.Add(1)

	runCtx := context.WithoutCancel(ctx)

	go func() {
		defer q.wg.Done()

		err := handler(runCtx, req)
		if err != nil {
			q.logger.ErrorContext(runCtx, "Queued run failed",
				"workflow_id", req.WorkflowID, "error", err)
		}
	}()
}

// HealthCheck verifies the Redis connection is alive.
func (q *Queue) HealthCheck(ctx context.Context) error {
	if q.client == nil {
		return errors.New("run queue is not connected")
	}

	return q.client.Ping(ctx).Err()
}

// Stop halts the consumer and closes the connection.
func (q *Queue) Stop(ctx context.Context) error {
	q.logger.InfoContext(ctx, "Stopping run queue")

	close(q.stopCh)
	q.wg.Wait()

	if q.client != nil {
		err := q.client.Close()
		if err != nil {
			q.logger.ErrorContext(ctx, "Error closing Redis client", "error", err)
		}
	}

	return nil
}
