// Copyright 2025 MetrodataTeam
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
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	graphrag "github.com/MetrodataTeam/nano-graphrag"
	"github.com/MetrodataTeam/nano-graphrag/ai"
	"github.com/MetrodataTeam/nano-graphrag/reindex"
)

func main() {
	app := &cli.App{
		Name:  "graphrag",
		Usage: "Chunk, embed, and query documents against a local vector index",
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
				Name:      "insert",
				Usage:     "Insert documents from files, or stdin if no files are given",
				ArgsUsage: "[file ...]",
				Action:    insertCommand,
				Flags: append(instanceFlags(),
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Maximum tokens per chunk",
						Value: graphrag.DefaultChunkTokenSize,
					},
					&cli.IntFlag{
						Name:  "chunk-overlap",
						Usage: "Token overlap between consecutive chunks",
						Value: graphrag.DefaultChunkOverlapTokens,
					},
				),
			},
			{
				Name:      "query",
				Usage:     "Ask the completion model a question",
				ArgsUsage: "<question>",
				Action:    queryCommand,
				Flags: append(instanceFlags(),
					&cli.BoolFlag{
						Name:  "cheap",
						Usage: "Use the cheaper completion model",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Find stored chunks similar to the query text",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(instanceFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of results to return",
						Value:   5,
					},
				),
			},
			{
				Name:   "reindex",
				Usage:  "Re-embed all stored chunks and rebuild the vector index",
				Action: reindexCommand,
				Flags: append(instanceFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to process in each batch",
						Value: reindex.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed batches",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// instanceFlags are the flags shared by every command that opens a
// GraphRAG instance.
func instanceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "working-dir",
			Aliases:  []string{"d"},
			Usage:    "Directory holding the storage files",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL (empty for api.openai.com)",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL (defaults to host)",
		},
		&cli.StringFlag{
			Name:  "api-key",
			Usage: "API key (defaults to OPENAI_API_KEY)",
		},
		&cli.StringFlag{
			Name:  "best-model",
			Usage: "Completion model for query",
			Value: "gpt-4o",
		},
		&cli.StringFlag{
			Name:  "cheap-model",
			Usage: "Completion model for query --cheap",
			Value: "gpt-4o-mini",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-3-small",
		},
	}
}

// newInstance builds a GraphRAG instance from the command's flags.
func newInstance(c *cli.Context, extra ...graphrag.Option) (*graphrag.GraphRAG, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithBestModel(c.String("best-model")),
		ai.WithCheapModel(c.String("cheap-model")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithAPIKey(c.String("api-key")),
	)
	if host := c.String("embedding-host"); host != "" {
		ai.WithEmbeddingHost(host)(aiConfig)
	}

	opts := append([]graphrag.Option{
		graphrag.WithWorkingDir(c.String("working-dir")),
		graphrag.WithAIConfig(aiConfig),
	}, extra...)

	rag, err := graphrag.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open graphrag instance: %w", err)
	}
	return rag, nil
}

func insertCommand(c *cli.Context) error {
	ctx := context.Background()

	var texts []string
	if c.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		texts = append(texts, string(data))
	} else {
		for _, path := range c.Args().Slice() {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			texts = append(texts, string(data))
		}
	}

	rag, err := newInstance(c,
		graphrag.WithChunking(c.Int("chunk-size"), c.Int("chunk-overlap")))
	if err != nil {
		return err
	}
	defer rag.Close()

	if err := rag.Insert(ctx, texts...); err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	rag, err := newInstance(c)
	if err != nil {
		return err
	}
	defer rag.Close()

	var answer string
	if c.Bool("cheap") {
		answer, err = rag.QueryCheap(ctx, question)
	} else {
		answer, err = rag.Query(ctx, question)
	}
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Println(answer)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query is required")
	}

	topK := c.Int("top-k")
	if topK <= 0 {
		return fmt.Errorf("top-k must be greater than 0")
	}

	rag, err := newInstance(c)
	if err != nil {
		return err
	}
	defer rag.Close()

	results, err := rag.Search(ctx, query, topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	for i, result := range results {
		fmt.Printf("%d. [%.4f] doc=%s chunk=%s\n", i+1, result.Score, result.FullDocId, result.ChunkId)
		fmt.Println(result.Content)
		fmt.Println()
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.Int("batch-size") <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if c.Int("max-retries") <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	rag, err := newInstance(c)
	if err != nil {
		return err
	}
	defer rag.Close()

	reindexer, err := rag.NewReindexer(
		reindex.WithBatchSize(c.Int("batch-size")),
		reindex.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
		reindex.WithProgress(os.Stderr, c.Int("report-interval")),
	)
	if err != nil {
		return fmt.Errorf("failed to create reindexer: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Working dir: %s\n", c.String("working-dir"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	report, err := reindexer.Run(ctx)
	if err != nil {
		return fmt.Errorf("reindexing failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Reindexed %d chunks in %d batches (%.1fs)\n",
		report.Chunks, report.Batches, report.Elapsed.Seconds())
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
