package openai

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/poiesic/grantmatch/ai"
	openai "github.com/sashabaranov/go-openai"
)

// batchCompletionWindow is the provider's required completion window for
// batch jobs.
const batchCompletionWindow = "24h"

// BatchClient implements ai.BatchEmbedder using the OpenAI batch-file API:
// requests are uploaded as a JSONL file, processed asynchronously, and the
// results downloaded as a file once the job completes.
type BatchClient struct {
	client *openai.Client
	model  string
	dim    int
	logger *slog.Logger
}

// newBatchClient is an internal constructor that returns the concrete type.
func newBatchClient(config *ai.Config) (*BatchClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = config.EmbeddingHost

	return &BatchClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  config.EmbeddingModel,
		dim:    config.Dimension,
		logger: slog.Default().With("component", "openai-batch"),
	}, nil
}

// NewBatchClient creates a batch embedding client for the provider's
// asynchronous job API.
//
// Returns ai.BatchEmbedder interface to enforce abstraction.
func NewBatchClient(config *ai.Config) (ai.BatchEmbedder, error) {
	return newBatchClient(config)
}

// SubmitBatch uploads one embedding request per keys[i]/texts[i] pair and
// creates a batch job against the embeddings endpoint.
func (b *BatchClient) SubmitBatch(ctx context.Context, keys []string, texts []string) (string, error) {
	if len(keys) != len(texts) {
		return "", fmt.Errorf("key/text count mismatch: %d keys, %d texts", len(keys), len(texts))
	}
	if len(texts) == 0 {
		return "", fmt.Errorf("empty batch submission")
	}

	lines := make([]openai.BatchLineItem, len(texts))
	for i := range texts {
		lines[i] = openai.BatchEmbeddingRequest{
			CustomID: keys[i],
			Method:   "POST",
			URL:      openai.BatchEndpointEmbeddings,
			Body: openai.EmbeddingRequest{
				Input:      texts[i],
				Model:      openai.EmbeddingModel(b.model),
				Dimensions: b.dim,
			},
		}
	}

	b.logger.Info("submitting batch embedding job", "items", len(lines), "model", b.model)

	resp, err := b.client.CreateBatchWithUploadFile(ctx, openai.CreateBatchWithUploadFileRequest{
		Endpoint:         openai.BatchEndpointEmbeddings,
		CompletionWindow: batchCompletionWindow,
		UploadBatchFileRequest: openai.UploadBatchFileRequest{
			FileName: "grant-embeddings.jsonl",
			Lines:    lines,
		},
	})
	if err != nil {
		return "", fmt.Errorf("create batch job: %w", err)
	}

	b.logger.Info("batch job created", "jobID", resp.ID, "status", resp.Status)
	return resp.ID, nil
}

// BatchStatus maps the provider's job status to an ai.BatchState.
// Idempotent; no side effects beyond the status observation.
func (b *BatchClient) BatchStatus(ctx context.Context, jobID string) (ai.BatchState, error) {
	resp, err := b.client.RetrieveBatch(ctx, jobID)
	if err != nil {
		return 0, fmt.Errorf("retrieve batch %s: %w", jobID, err)
	}
	return mapBatchStatus(resp.Status), nil
}

// batchOutputLine is one line of the provider's result file.
type batchOutputLine struct {
	CustomID string `json:"custom_id"`
	Response struct {
		StatusCode int `json:"status_code"`
		Body       struct {
			Data []struct {
				Embedding []float32 `json:"embedding"`
			} `json:"data"`
		} `json:"body"`
	} `json:"response"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// BatchResults downloads and parses the result file of a completed job.
// Delivery order is whatever the provider produced; callers re-order by key.
func (b *BatchClient) BatchResults(ctx context.Context, jobID string) ([]ai.BatchResult, error) {
	resp, err := b.client.RetrieveBatch(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("retrieve batch %s: %w", jobID, err)
	}
	if resp.OutputFileID == nil || *resp.OutputFileID == "" {
		return nil, fmt.Errorf("batch %s has no output file (status %s)", jobID, resp.Status)
	}

	content, err := b.client.GetFileContent(ctx, *resp.OutputFileID)
	if err != nil {
		return nil, fmt.Errorf("download batch output %s: %w", *resp.OutputFileID, err)
	}
	defer content.Close()

	var results []ai.BatchResult
	scanner := bufio.NewScanner(content)
	// Result lines carry full embedding payloads; the default 64KB line
	// limit is too small for 768 floats plus JSON overhead.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var out batchOutputLine
		if err := json.Unmarshal(line, &out); err != nil {
			return nil, fmt.Errorf("parse batch output line: %w", err)
		}

		if out.Error != nil || len(out.Response.Body.Data) == 0 {
			// Per-item failure: surface the key with no vector so the
			// caller can substitute a zero vector at the right index.
			b.logger.Warn("batch item failed", "key", out.CustomID)
			results = append(results, ai.BatchResult{Key: out.CustomID})
			continue
		}

		results = append(results, ai.BatchResult{
			Key:    out.CustomID,
			Vector: out.Response.Body.Data[0].Embedding,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch output: %w", err)
	}

	b.logger.Info("batch results downloaded", "jobID", jobID, "items", len(results))
	return results, nil
}

// mapBatchStatus converts the provider's status string to an ai.BatchState.
func mapBatchStatus(status string) ai.BatchState {
	switch status {
	case "completed":
		return ai.BatchSucceeded
	case "failed":
		return ai.BatchFailed
	case "cancelled", "cancelling":
		return ai.BatchCancelled
	case "expired":
		return ai.BatchExpired
	case "validating":
		return ai.BatchPending
	default:
		// in_progress, finalizing, and anything unrecognized counts as
		// still running; polling is free to retry.
		return ai.BatchRunning
	}
}
