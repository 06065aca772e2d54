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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/versebase"
	"github.com/poiesic/versebase/ai"
	"github.com/poiesic/versebase/answer"
	"github.com/poiesic/versebase/chunk"
	"github.com/poiesic/versebase/core"
	"github.com/poiesic/versebase/websearch/tavily"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "versebase",
		Usage:  "Retrieval and routing for grounded question answering over the Quran",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Chunk, embed, and index a source text file",
				Action: indexCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the source text file",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Chunk window width in runes",
						Value: chunk.DefaultChunkSize,
					},
					&cli.IntFlag{
						Name:  "overlap",
						Usage: "Overlap between consecutive chunks in runes",
						Value: chunk.DefaultOverlap,
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Answer a single question against the index",
				Action:    askCommand,
				ArgsUsage: "QUESTION",
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of passages to retrieve",
						Value: 3,
					},
				),
			},
			{
				Name:   "serve",
				Usage:  "Serve the chat HTTP API",
				Action: serveCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Listen address",
						Value: ":8000",
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "Source text file to ingest in the background when the index is empty",
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// commonFlags returns the flags shared by every command touching the index.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
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
		&cli.IntFlag{
			Name:  "dimension",
			Usage: "Embedding vector width",
			Value: 768,
		},
		&cli.StringFlag{
			Name:    "tavily-api-key",
			Usage:   "Tavily API key for context search",
			EnvVars: []string{"TAVILY_API_KEY"},
		},
	}
}

// newAssistant builds an Assistant from the common flags.
func newAssistant(c *cli.Context, opts ...versebase.AssistantOption) (*versebase.Assistant, error) {
	searcher, err := tavily.NewClient(c.String("tavily-api-key"))
	if err != nil {
		return nil, fmt.Errorf("creating search client: %w", err)
	}

	cfg := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithDimension(c.Int("dimension")),
	)

	opts = append(opts, versebase.WithAIConfig(cfg))
	return versebase.NewAssistant(c.String("db"), searcher, opts...)
}

func indexCommand(c *cli.Context) error {
	assistant, err := newAssistant(c, versebase.WithChunkOptions(
		chunk.WithChunkSize(c.Int("chunk-size")),
		chunk.WithOverlap(c.Int("overlap")),
	))
	if err != nil {
		return err
	}
	defer assistant.Close()

	path := c.String("file")
	slog.Info("indexing source text", "file", path)
	if err := assistant.IngestFile(c.Context, path); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	slog.Info("indexing complete", "file", path)
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	assistant, err := newAssistant(c,
		versebase.WithTopK(c.Int("top-k")),
		versebase.WithMonitor(answer.NewLogMonitor(nil)),
	)
	if err != nil {
		return err
	}
	defer assistant.Close()

	loaded, err := assistant.LoadIndex(c.Context)
	if err != nil {
		return err
	}
	if !loaded {
		slog.Warn("no persisted index found, answering from context search only")
	}

	result, err := assistant.Ask(c.Context, question)
	if err != nil {
		return err
	}

	fmt.Println(result.Text)
	if len(result.Citations) > 0 {
		refs := make([]string, len(result.Citations))
		for i, ref := range result.Citations {
			refs[i] = ref.String()
		}
		fmt.Printf("\nCitations: %s\n", strings.Join(refs, ", "))
	}
	for _, source := range result.Sources {
		fmt.Printf("Source: %s (%s)\n", source.Title, source.URL)
	}
	for _, annotation := range result.Annotations {
		fmt.Printf("Note: %s\n", annotation)
	}
	return nil
}

func serveCommand(c *cli.Context) error {
	assistant, err := newAssistant(c, versebase.WithMonitor(answer.NewLogMonitor(nil)))
	if err != nil {
		return err
	}
	defer assistant.Close()

	loaded, err := assistant.LoadIndex(c.Context)
	if err != nil {
		return err
	}

	// Missing index plus a source file means ingest in the background;
	// the server answers degraded until the snapshot is published.
	if !loaded && c.String("file") != "" {
		if err := ingestInBackground(c, assistant); err != nil {
			return err
		}
	}

	return serveHTTP(c.Context, assistant, c.String("listen"))
}

func ingestInBackground(c *cli.Context, assistant *versebase.Assistant) error {
	path := c.String("file")
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	slog.Info("starting background ingestion", "file", path)
	return assistant.IngestInBackground(c.Context, func(err error) {
		if err == nil {
			slog.Info("background ingestion complete", "file", path)
		}
	}, core.SourceDocument{Name: path, Text: string(data)})
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
