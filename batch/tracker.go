package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/store"
	"github.com/poiesic/grantmatch/vector"
	"github.com/poiesic/grantmatch/vectorcache"
)

const grantKeyPrefix = "grant-"

// Config holds configuration for the batch tracker.
type Config struct {
	// Model is the embedding model name recorded in the descriptor.
	Model string

	// Dimension is the embedding dimension of the target cache.
	Dimension int

	// DescriptorPath is where the job descriptor JSON lives.
	DescriptorPath string
}

// Tracker owns the batch job lifecycle: submit, poll, download.
type Tracker struct {
	grants  store.GrantRepository
	service ai.BatchEmbedder
	config  *Config
	logger  *slog.Logger
}

// NewTracker creates a batch tracker.
func NewTracker(grants store.GrantRepository, service ai.BatchEmbedder, config *Config) *Tracker {
	return &Tracker{
		grants:  grants,
		service: service,
		config:  config,
		logger:  slog.Default().With("component", "batch-tracker"),
	}
}

// Submit snapshots the described catalog, submits one embedding request per
// grant, and persists the job descriptor. The descriptor is written before
// Submit returns so a later process can poll and download the job.
func (t *Tracker) Submit(ctx context.Context) (*core.BatchJob, error) {
	grants, err := t.grants.ListDescribedGrants(ctx)
	if err != nil {
		return nil, err
	}
	if len(grants) == 0 {
		return nil, errors.New("no described grants to embed")
	}

	keys := make([]string, len(grants))
	texts := make([]string, len(grants))
	entries := make([]core.BatchEntry, len(grants))
	for i, grant := range grants {
		keys[i] = makeGrantKey(i)
		texts[i] = grant.EmbedText()
		entries[i] = core.BatchEntry{Index: i, ProgramName: grant.ProgramName}
	}

	jobID, err := t.service.SubmitBatch(ctx, keys, texts)
	if err != nil {
		return nil, fmt.Errorf("batch submission failed: %w", err)
	}

	job := &core.BatchJob{
		JobID:       jobID,
		Model:       t.config.Model,
		SubmittedAt: time.Now().UTC(),
		GrantCount:  len(grants),
		Entries:     entries,
	}

	if err := SaveDescriptor(t.config.DescriptorPath, job); err != nil {
		return nil, fmt.Errorf("job %s submitted but descriptor save failed: %w", jobID, err)
	}

	t.logger.Info("batch job submitted", "jobID", jobID, "grants", len(grants), "model", t.config.Model)
	return job, nil
}

// Job reloads the persisted descriptor of the outstanding job.
func (t *Tracker) Job() (*core.BatchJob, error) {
	return LoadDescriptor(t.config.DescriptorPath)
}

// Poll reports the current job state. It never mutates the descriptor and
// may be called any number of times, including on terminal jobs.
func (t *Tracker) Poll(ctx context.Context, job *core.BatchJob) (core.JobState, error) {
	state, err := t.service.BatchStatus(ctx, job.JobID)
	if err != nil {
		return 0, err
	}
	return mapBatchState(state), nil
}

// Download retrieves the results of a succeeded job and assembles the vector
// cache aligned to the submission-time catalog order. Jobs still in flight
// return core.ErrJobNotReady; jobs in a terminal failure state return
// core.ErrBatchJobFailed. Neither touches any existing cache on disk.
func (t *Tracker) Download(ctx context.Context, job *core.BatchJob) (*vectorcache.Cache, error) {
	state, err := t.Poll(ctx, job)
	if err != nil {
		return nil, err
	}
	switch {
	case state == core.JobStateSucceeded:
	case state.Terminal():
		return nil, fmt.Errorf("%w: job %s ended %s", core.ErrBatchJobFailed, job.JobID, state)
	default:
		return nil, fmt.Errorf("%w: job %s is %s", core.ErrJobNotReady, job.JobID, state)
	}

	results, err := t.service.BatchResults(ctx, job.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve batch results: %w", err)
	}

	dim := t.config.Dimension
	vectors := make([][]float32, job.GrantCount)
	for _, result := range results {
		index, ok := parseGrantKey(result.Key)
		if !ok || index < 0 || index >= job.GrantCount {
			t.logger.Warn("discarding result with unrecognized key", "jobID", job.JobID, "key", result.Key)
			continue
		}
		if len(result.Vector) == 0 {
			// Provider reported a per-item failure; the slot falls back to zero below
			continue
		}
		if len(result.Vector) != dim {
			t.logger.Warn("discarding result with wrong dimension",
				"jobID", job.JobID, "key", result.Key, "got", len(result.Vector), "want", dim)
			continue
		}
		vectors[index] = vector.Normalize(result.Vector)
	}

	missing := 0
	for i, vec := range vectors {
		if vec == nil {
			vectors[i] = vector.Zero(dim)
			missing++
		}
	}
	if missing > 0 {
		t.logger.Warn("batch results incomplete, substituted zero vectors",
			"jobID", job.JobID, "missing", missing, "total", job.GrantCount)
	}

	names := make([]string, job.GrantCount)
	for _, entry := range job.Entries {
		if entry.Index >= 0 && entry.Index < len(names) {
			names[entry.Index] = entry.ProgramName
		}
	}

	t.logger.Info("batch job downloaded", "jobID", job.JobID, "grants", job.GrantCount, "missing", missing)
	return &vectorcache.Cache{
		Dim:     dim,
		Vectors: vectors,
		Names:   names,
	}, nil
}

// mapBatchState translates provider-side states into job lifecycle states.
// Pending and running both map to RUNNING: once the provider has the job,
// the distinction carries no information for callers.
func mapBatchState(state ai.BatchState) core.JobState {
	switch state {
	case ai.BatchPending, ai.BatchRunning:
		return core.JobStateRunning
	case ai.BatchSucceeded:
		return core.JobStateSucceeded
	case ai.BatchFailed:
		return core.JobStateFailed
	case ai.BatchCancelled:
		return core.JobStateCancelled
	case ai.BatchExpired:
		return core.JobStateExpired
	}
	return core.JobStateFailed
}

func makeGrantKey(index int) string {
	return fmt.Sprintf("%s%d", grantKeyPrefix, index)
}

func parseGrantKey(key string) (int, bool) {
	rest, found := strings.CutPrefix(key, grantKeyPrefix)
	if !found {
		return 0, false
	}
	index, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return index, true
}
