// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/grantmatch"
	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/generate"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "grantmatch",
		Usage: "Match funding seekers to grants with precomputed embeddings",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "match",
				Usage:  "Rank grants for a user profile",
				Action: matchCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User ID to match",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 20,
					},
				),
			},
			{
				Name:   "generate",
				Usage:  "Build the embedding cache with rate-limited synchronous calls",
				Action: generateCommand,
				Flags: append(serviceFlags(),
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Number of grants embedded between pauses",
						Value: 10,
					},
					&cli.DurationFlag{
						Name:  "chunk-delay",
						Usage: "Pause between chunks",
						Value: 2 * time.Second,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts per grant",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
			{
				Name:  "batch",
				Usage: "Manage asynchronous bulk embedding jobs",
				Subcommands: []*cli.Command{
					{
						Name:   "submit",
						Usage:  "Submit the described catalog as one embedding job",
						Action: batchSubmitCommand,
						Flags:  serviceFlags(),
					},
					{
						Name:   "status",
						Usage:  "Check the state of the outstanding job",
						Action: batchStatusCommand,
						Flags:  serviceFlags(),
					},
					{
						Name:   "download",
						Usage:  "Download results of a succeeded job and save the cache",
						Action: batchDownloadCommand,
						Flags:  serviceFlags(),
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Insert sample grants and a demo user for local testing",
				Action: seedCommand,
				Flags:  serviceFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "data",
			Aliases:  []string{"d"},
			Usage:    "Path to the data directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "Embedding service API key",
			EnvVars: []string{"GRANTMATCH_API_KEY"},
		},
		&cli.IntFlag{
			Name:  "dimension",
			Usage: "Embedding dimension",
			Value: ai.DefaultDimension,
		},
	}
}

func openService(c *cli.Context) (*grantmatch.Service, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithDimension(c.Int("dimension")),
	)
	return grantmatch.NewService(c.String("data"), grantmatch.WithAIConfig(aiConfig))
}

func matchCommand(c *cli.Context) error {
	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	matcher := service.NewMatcher()
	results, err := matcher.Match(context.Background(), c.String("user"), c.Int("limit"))
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No matching grants found.")
		return nil
	}

	for i, result := range results {
		fmt.Printf("%2d. %s (%.3f)\n", i+1, result.ProgramName, result.Score)
		fmt.Printf("    Funding:  %s\n", result.FundingDisplay)
		fmt.Printf("    Deadline: %s\n", result.Deadline)
		if result.URL != "" {
			fmt.Printf("    URL:      %s\n", result.URL)
		}
		fmt.Printf("    %s\n\n", result.Description)
	}
	return nil
}

func generateCommand(c *cli.Context) error {
	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	config := generate.DefaultConfig()
	config.ChunkSize = c.Int("chunk-size")
	config.ChunkDelay = c.Duration("chunk-delay")
	config.MaxRetries = c.Int("max-retries")
	config.RetryDelay = c.Duration("retry-delay")
	config.Dimension = c.Int("dimension")

	if config.ChunkSize <= 0 {
		return fmt.Errorf("chunk-size must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	generator, err := service.NewGenerator(config)
	if err != nil {
		return err
	}
	defer generator.Release()

	cache, err := generator.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Cache saved: %d grants, %d failed items\n", cache.Len(), generator.FailedItems())
	return nil
}

func batchSubmitCommand(c *cli.Context) error {
	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	tracker := service.NewBatchTracker()
	job, err := tracker.Submit(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Submitted job %s with %d grants\n", job.JobID, job.GrantCount)
	fmt.Println("Check progress with: grantmatch batch status")
	return nil
}

func batchStatusCommand(c *cli.Context) error {
	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	tracker := service.NewBatchTracker()
	job, err := tracker.Job()
	if err != nil {
		return err
	}

	state, err := tracker.Poll(context.Background(), job)
	if err != nil {
		return err
	}

	fmt.Printf("Job %s: %s (submitted %s, %d grants)\n",
		job.JobID, state, job.SubmittedAt.Format(time.RFC3339), job.GrantCount)
	return nil
}

func batchDownloadCommand(c *cli.Context) error {
	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	tracker := service.NewBatchTracker()
	job, err := tracker.Job()
	if err != nil {
		return err
	}

	cache, err := tracker.Download(context.Background(), job)
	if err != nil {
		return err
	}

	if err := service.CacheStore().Save(cache); err != nil {
		return err
	}

	fmt.Printf("Cache saved: %d grants\n", cache.Len())
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
