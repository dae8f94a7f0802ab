package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"chunk-lab/internal/app"
	"chunk-lab/internal/cache"
	"chunk-lab/internal/httputil"
	"chunk-lab/internal/queue"
)

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.Cache.Close()
	if deps.Queue == nil {
		deps.Log.Error("chunk worker needs a queue; set QUEUE_PROVIDER")
		os.Exit(1)
	}
	deps.Log.Info("chunk worker starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return deps.Queue.Worker(ctx, queue.TaskTypeChunk, chunkTaskHandler(deps))
	})

	g.Go(func() error {
		return httputil.ServeHealth(deps, "worker")
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("chunk worker stopped", "err", err)
	}
}

func chunkTaskHandler(deps app.Deps) queue.Handler {
	return func(ctx context.Context, task queue.Task) error {
		var payload queue.ChunkPayload
		if err := json.Unmarshal(task.Payload, &payload); err != nil {
			return err
		}
		return handleChunk(ctx, deps, payload)
	}
}

// handleChunk runs the job and records its outcome. A rejected request
// marks the job failed and is not retried; only a failed job write is
// returned to the queue.
func handleChunk(ctx context.Context, deps app.Deps, payload queue.ChunkPayload) error {
	log := deps.Log.With("job_id", payload.JobID, "strategy", payload.Strategy)
	job := &cache.Job{
		ID:       payload.JobID,
		Strategy: payload.Strategy,
	}

	res, err := deps.Service.Chunk(ctx, payload.Strategy, payload.Text, payload.Params)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		log.Warn("chunk job failed", "err", err)
		job.Status = cache.JobFailed
		job.Error = err.Error()
	} else {
		log.Info("chunk job done", "chunks", len(res.Chunks))
		job.Status = cache.JobReady
		job.Result = &res
	}
	job.UpdatedAt = time.Now().UTC()

	return deps.Cache.SetJob(ctx, job, deps.CacheTTL())
}
