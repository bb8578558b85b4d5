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
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/cognatedb"
	"github.com/poiesic/cognatedb/core"
	"github.com/poiesic/cognatedb/dataset"
	"github.com/poiesic/cognatedb/ingest"
	"github.com/poiesic/cognatedb/server"
	"github.com/poiesic/cognatedb/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "cognatedb",
		Usage: "Lookup service for the cross-language cognate dataset",
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
				Name:   "compile",
				Usage:  "Compile a CSV dataset into a BadgerDB artifact",
				Action: compileCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "csv",
						Aliases:  []string{"c"},
						Usage:    "Path to the dataset CSV file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the BadgerDB output directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent write workers",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of groups written per batch",
						Value: 250,
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the dataset over a JSON HTTP API",
				Action: serveCommand,
				Flags: append(sourceFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address",
						Value:   ":8080",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Search the dataset for a term",
				ArgsUsage: "<term>",
				Action:    searchCommand,
				Flags: append(sourceFlags(),
					&cli.StringFlag{
						Name:  "language",
						Usage: "Restrict matching to one language code",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results (0 uses the default)",
					},
				),
			},
			{
				Name:      "show",
				Usage:     "Print a single cognate group by id",
				ArgsUsage: "<group-id>",
				Action:    showCommand,
				Flags:     sourceFlags(),
			},
			{
				Name:   "random",
				Usage:  "Print random cognate groups",
				Action: randomCommand,
				Flags: append(sourceFlags(),
					&cli.IntFlag{
						Name:  "count",
						Usage: "Number of groups to draw",
						Value: 1,
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Print dataset statistics",
				Action: statsCommand,
				Flags:  sourceFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// sourceFlags are shared by every command that reads the dataset: it
// comes either from a compiled artifact or straight from CSV.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to a compiled BadgerDB artifact",
		},
		&cli.StringFlag{
			Name:    "csv",
			Aliases: []string{"c"},
			Usage:   "Path to the dataset CSV file",
		},
	}
}

// openDatabase resolves the --db/--csv source flags. Exactly one must
// be set.
func openDatabase(c *cli.Context) (*cognatedb.Database, error) {
	dbPath := c.String("db")
	csvPath := c.String("csv")

	switch {
	case dbPath != "" && csvPath != "":
		return nil, fmt.Errorf("--db and --csv are mutually exclusive")
	case dbPath != "":
		return cognatedb.Open(dbPath)
	case csvPath != "":
		return cognatedb.OpenCSV(csvPath)
	default:
		return nil, fmt.Errorf("either --db or --csv is required")
	}
}

func compileCommand(c *cli.Context) error {
	ctx := context.Background()

	loader := dataset.NewLoader()
	groups, err := loader.LoadFile(c.String("csv"))
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("opening artifact: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewGroupRepository(backend)
	if err != nil {
		return err
	}
	defer repo.Close()

	pipeline, err := ingest.NewPipeline(repo,
		ingest.WithPoolSize(c.Int("workers")),
		ingest.WithBatchSize(c.Int("batch-size")))
	if err != nil {
		return err
	}
	defer pipeline.Release()

	if err := pipeline.Run(ctx, groups); err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Compiled %d groups into %s\n", len(groups), c.String("db"))
	return nil
}

func serveCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	srv, err := server.New(db.Store())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, c.String("addr"))
}

func searchCommand(c *cli.Context) error {
	term := c.Args().First()
	if term == "" {
		return fmt.Errorf("search term is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return err
	}

	groups, total, err := searcher.Search(term, c.String("language"), c.Int("limit"))
	if err != nil {
		return err
	}

	fmt.Printf("%d matches\n", total)
	for _, group := range groups {
		printGroup(group)
	}
	return nil
}

func showCommand(c *cli.Context) error {
	raw := c.Args().First()
	if raw == "" {
		return fmt.Errorf("group id is required")
	}
	id, err := core.ParseGroupID(raw)
	if err != nil {
		return fmt.Errorf("invalid group id %q: %w", raw, err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	group, ok, err := db.Group(context.Background(), id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no group with id %s", raw)
	}

	printGroup(group)
	return nil
}

func randomCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	sampler, err := db.NewSampler()
	if err != nil {
		return err
	}

	groups, err := sampler.Sample(c.Int("count"))
	if err != nil {
		return err
	}

	for _, group := range groups {
		printGroup(group)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	stats := db.Stats()
	fmt.Printf("Total groups:   %d\n", stats.TotalGroups)
	fmt.Printf("Perfect:        %d\n", stats.PerfectGroups)
	fmt.Printf("Near:           %d\n", stats.NearGroups)
	fmt.Printf("Needs review:   %d\n", stats.NeedsReview)
	fmt.Println("Coverage:")
	for _, lang := range core.Languages() {
		fmt.Printf("  %s: %d\n", lang, stats.Coverage[lang])
	}
	return nil
}

func printGroup(group *core.CognateGroup) {
	words := make([]string, 0, len(group.Entries))
	for _, lang := range core.Languages() {
		if word, ok := group.Entry(lang); ok {
			words = append(words, fmt.Sprintf("%s=%s", lang, word))
		}
	}
	fmt.Printf("%s  [%s]  confidence=%.2f  %s\n",
		group.Reference, group.Match, group.Confidence, strings.Join(words, " "))
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
