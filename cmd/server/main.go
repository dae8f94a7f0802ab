package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"chunk-lab/internal/app"
	"chunk-lab/internal/cache"
	"chunk-lab/internal/chunking"
	"chunk-lab/internal/extract"
	"chunk-lab/internal/httputil"
	"chunk-lab/internal/queue"
	"chunk-lab/internal/service"
)

type chunkRequest struct {
	Text   *string         `json:"text" validate:"required"`
	Params chunking.Params `json:"params"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.Cache.Close()

	r := newRouter(deps)
	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("chunk server listening", "addr", addr, "strategies", deps.Service.Strategies())
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	if err := srv.ListenAndServe(); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func newRouter(deps app.Deps) http.Handler {
	r := httputil.NewRouter(deps.Log)

	r.Get("/api", strategiesHandler(deps))
	r.Post("/api/chunks/{strategy}", chunkHandler(deps))
	r.Post("/api/chunks/{strategy}/upload", uploadHandler(deps))
	if deps.Queue != nil {
		r.Post("/api/jobs/{strategy}", createJobHandler(deps))
		r.Get("/api/jobs/{id}", jobHandler(deps))
	}
	r.Get("/healthz", httputil.HealthHandler(deps))
	return r
}

func strategiesHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"strategies": deps.Service.Strategies(),
		})
	}
}

func chunkHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeChunkRequest(deps, w, r)
		if !ok {
			return
		}
		strategy := chi.URLParam(r, "strategy")
		res, err := deps.Service.Chunk(r.Context(), strategy, *req.Text, req.Params)
		if err != nil {
			failChunk(deps.Log.With("strategy", strategy), w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, res)
	}
}

func uploadHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxFileSize+1<<20)

		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.Fail(deps.Log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}
		contentType, err := extract.DetectType(header.Filename, header.Header.Get("Content-Type"))
		if err != nil {
			httputil.Fail(deps.Log, w, err.Error(), err, http.StatusBadRequest)
			return
		}

		var params chunking.Params
		if raw := r.FormValue("params"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &params); err != nil {
				httputil.Fail(deps.Log, w, "params must be a JSON object", err, http.StatusBadRequest)
				return
			}
		}

		content, err := io.ReadAll(file)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
			return
		}
		text, err := extract.Text(contentType, content)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to extract text", err, http.StatusUnprocessableEntity)
			return
		}

		strategy := chi.URLParam(r, "strategy")
		res, err := deps.Service.Chunk(r.Context(), strategy, text, params)
		if err != nil {
			failChunk(deps.Log.With("strategy", strategy, "filename", header.Filename), w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, res)
	}
}

func createJobHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeChunkRequest(deps, w, r)
		if !ok {
			return
		}
		strategy := chi.URLParam(r, "strategy")
		if _, err := chunking.Resolve(strategy, req.Params); err != nil {
			failChunk(deps.Log, w, err)
			return
		}

		ctx := r.Context()
		job := &cache.Job{
			ID:        uuid.New(),
			Strategy:  strategy,
			Status:    cache.JobPending,
			UpdatedAt: time.Now().UTC(),
		}
		log := deps.Log.With("job_id", job.ID, "strategy", strategy)
		if err := deps.Cache.SetJob(ctx, job, deps.CacheTTL()); err != nil {
			httputil.Fail(log, w, "failed to record job", err, http.StatusInternalServerError)
			return
		}

		task, err := queue.NewChunkTask(queue.ChunkPayload{
			JobID:    job.ID,
			Strategy: strategy,
			Text:     *req.Text,
			Params:   req.Params,
		})
		if err != nil {
			httputil.Fail(log, w, "marshal payload failed", err, http.StatusInternalServerError)
			return
		}
		if err := queue.EnqueueWithRetry(ctx, deps.Queue, task, 3, 200*time.Millisecond); err != nil {
			job.Status = cache.JobFailed
			job.Error = "enqueue failed"
			job.UpdatedAt = time.Now().UTC()
			if upErr := deps.Cache.SetJob(ctx, job, deps.CacheTTL()); upErr != nil {
				log.Error("failed to mark job failed", "err", upErr)
			}
			httputil.Fail(log, w, "failed to enqueue job; please retry", err, http.StatusInternalServerError)
			return
		}

		httputil.WriteJSON(w, http.StatusAccepted, map[string]any{
			"job_id": job.ID.String(),
			"status": job.Status,
		})
	}
}

func jobHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httputil.Fail(deps.Log, w, "invalid job id", err, http.StatusBadRequest)
			return
		}
		job, err := deps.Cache.GetJob(r.Context(), id)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to load job", err, http.StatusInternalServerError)
			return
		}
		if job == nil {
			httputil.Fail(deps.Log, w, "job not found", nil, http.StatusNotFound)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, job)
	}
}

func decodeChunkRequest(deps app.Deps, w http.ResponseWriter, r *http.Request) (chunkRequest, bool) {
	var req chunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
		return req, false
	}
	if err := httputil.Validator.Struct(&req); err != nil {
		httputil.ValidationError(deps.Log, w, err)
		return req, false
	}
	return req, true
}

// failChunk maps chunking and service errors to HTTP statuses.
func failChunk(log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chunking.ErrUnknownStrategy):
		httputil.Fail(log, w, "Unknown strategy", err, http.StatusNotFound)
	case errors.Is(err, service.ErrTextTooLong):
		httputil.Fail(log, w, err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, chunking.ErrInvalidParameter):
		httputil.Fail(log, w, err.Error(), err, http.StatusBadRequest)
	default:
		httputil.Fail(log, w, "chunking failed", err, http.StatusInternalServerError)
	}
}
