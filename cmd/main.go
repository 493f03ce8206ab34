package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/xhad/f1gpt/internal/models"
	cfgPkg "github.com/xhad/f1gpt/pkg/config"
	"github.com/xhad/f1gpt/pkg/ingest"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	if err := loadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}

	config, err := cfgPkg.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	if err := config.RequireEnv(); err != nil {
		var missing *cfgPkg.MissingEnvError
		if errors.As(err, &missing) {
			reportEnv(os.Stdout, missing)
		}
		log.Fatal(err)
	}

	if errs := config.Validate(); len(errs) > 0 {
		for _, e := range errs {
			color.Red("  %s", e.Error())
		}
		log.Fatalf("invalid configuration (%d errors)", len(errs))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, config)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}

// loadDotEnv copies path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// reportEnv prints every required variable with whether it was set.
func reportEnv(w io.Writer, missing *cfgPkg.MissingEnvError) {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	red.Fprintln(w, "\nMissing required configuration:")
	for _, v := range missing.Vars {
		if v.Present {
			green.Fprintf(w, "  ✓ %s\n", v.Name)
		} else {
			red.Fprintf(w, "  ✗ %s\n", v.Name)
		}
	}
	fmt.Fprintln(w)
}

func run(ctx context.Context, config *cfgPkg.Config) error {
	// Initialize components
	embedder, err := newEmbedder(config)
	if err != nil {
		return fmt.Errorf("failed to initialize embedder: %w", err)
	}

	vectorStore, err := newStore(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to initialize vector store: %w", err)
	}
	defer vectorStore.Close()

	processor := newProcessor(config)

	status := &progress{out: os.Stdout}
	pipeline, err := ingest.NewWithConfig(ingest.PipelineConfig{
		Collection: models.CollectionSpec{
			Name:      config.Store.Collection,
			Dimension: models.EmbeddingDimension,
			Metric:    models.SimilarityMetric(config.Store.Metric),
		},
		URLs:          config.Sources,
		OnPageStart:   status.pageStart,
		OnPageScraped: status.pageScraped,
		OnChunkStored: status.chunkStored,
	}, newScraper(config), &processor, embedder, vectorStore)
	if err != nil {
		return err
	}

	color.Blue("\nProvisioning %s collection %q (%s backend)\n",
		config.Store.Metric, config.Store.Collection, config.Store.Backend)

	provisionSpinner := getSpinner(os.Stdout, "📦 Creating collection...")
	err = pipeline.Provision(ctx)
	provisionSpinner.Finish()
	if err != nil {
		return err
	}
	color.Green("\n✓ Collection %s ready (dimension %d, metric %s)",
		config.Store.Collection, models.EmbeddingDimension, config.Store.Metric)

	stats, err := pipeline.Load(ctx)
	status.finish()
	if err != nil {
		color.Red("\n✗ Aborted after %d pages and %d records", stats.Pages, stats.Records)
		return err
	}

	color.Green("\n✓ Loaded %d pages, %d chunks, %d records\n", stats.Pages, stats.Chunks, stats.Records)
	return nil
}
