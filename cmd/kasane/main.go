// Package main is the Kasane CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kasane/internal/cli"
	"github.com/hyperjump/kasane/internal/config"
	"github.com/hyperjump/kasane/internal/embedding"
	"github.com/hyperjump/kasane/internal/images"
	"github.com/hyperjump/kasane/internal/indexer"
	"github.com/hyperjump/kasane/internal/keyword"
	"github.com/hyperjump/kasane/internal/models"
	"github.com/hyperjump/kasane/internal/scraper"
	"github.com/hyperjump/kasane/internal/search"
	"github.com/hyperjump/kasane/internal/server"
	"github.com/hyperjump/kasane/internal/storage"
	"github.com/hyperjump/kasane/internal/vector"
	"github.com/hyperjump/kasane/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kasane/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used instead.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				return config.Load(fallback)
			}
		}
	}
	return config.Load(path)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "scrape":
		runScrape()
	case "index":
		runIndex()
	case "search":
		runSearch()
	case "images":
		runImages()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("kasane version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Storage  storage.Storage
	Embedder embedding.Embedder
	Store    *vector.Store
	Keyword  keyword.Index
	Engine   *search.Engine
	Indexer  *indexer.Indexer
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
	if c.Keyword != nil {
		_ = c.Keyword.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var embedder embedding.Embedder
	if cfg.Embedding.APIKey != "" {
		embedder = embedding.NewOpenAIEmbedder(embedding.OpenAIConfig{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
	} else {
		logger.Warn("no embedding API key configured, using deterministic hash embedder")
		embedder = embedding.NewHashEmbedder(cfg.Embedding.Dimensions)
	}

	vectorStore := vector.NewStore(cfg.Embedding.Dimensions)
	if path := cfg.Storage.VectorSnapshotPath; path != "" {
		if loadErr := vectorStore.Load(path); loadErr != nil {
			logger.Warn("vector snapshot load skipped (rebuild with `kasane index`)",
				zap.String("path", path), zap.Error(loadErr))
		} else {
			logger.Info("vector snapshot loaded",
				zap.String("path", path), zap.Int("vectors", vectorStore.Size()))
		}
	}

	keywordIndex, err := keyword.NewBleveIndex(cfg.Storage.BleveIndexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize keyword index: %w", err)
	}

	engine := search.NewEngine(vectorStore, embedder, keywordIndex, store, logger)
	idx := indexer.NewIndexer(store, embedder, vectorStore, keywordIndex, logger)

	return &Components{
		Storage:  store,
		Embedder: embedder,
		Store:    vectorStore,
		Keyword:  keywordIndex,
		Engine:   engine,
		Indexer:  idx,
	}, nil
}

func setup(configPath string, debugFlag bool) (*config.Config, *zap.Logger, *Components) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || debugFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	return cfg, logger, components
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, logger, components := setup(*configPath, *debug)
	defer logger.Sync()
	defer components.Close()

	imageWatchCtx, imageWatchCancel := context.WithCancel(context.Background())
	defer imageWatchCancel()
	if cfg.Images.Directory != "" {
		imageEmbedder := embedding.NewHashImageEmbedder(cfg.Embedding.ImageDimensions)
		imageIndex := images.NewIndex(imageEmbedder, cfg.Images.Extensions, logger)
		if path := cfg.Storage.ImageSnapshotPath; path != "" {
			if err := imageIndex.Load(path); err != nil {
				logger.Warn("image snapshot load skipped", zap.String("path", path), zap.Error(err))
			}
		}
		watcher := images.NewWatcher(imageIndex, cfg.Images.Directory, logger)
		go func() {
			if err := watcher.Start(imageWatchCtx); err != nil {
				logger.Warn("image watcher stopped", zap.Error(err))
			}
		}()
	}

	srv := server.NewServer(components.Engine, components.Indexer, components.Storage, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if path := cfg.Storage.VectorSnapshotPath; path != "" && components.Store.Size() > 0 {
		if err := components.Store.Save(path); err != nil {
			logger.Warn("vector snapshot save failed", zap.String("path", path), zap.Error(err))
		}
	}
	imageWatchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runScrape() {
	fs := flag.NewFlagSet("scrape", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	year := fs.Int("year", 0, "conference year (overrides config)")
	_ = fs.Parse(os.Args[2:])

	cfg, logger, components := setup(*configPath, false)
	defer logger.Sync()
	defer components.Close()

	if *year != 0 {
		cfg.Source.Year = *year
		cfg.Source.ListingURL = ""
		config.ApplyDefaults(cfg)
	}
	if cfg.Source.ListingURL == "" {
		fmt.Fprintln(os.Stderr, "No listing URL configured; set source.listing_url or source.year")
		os.Exit(1)
	}

	s := scraper.New(cfg.Source.ListingURL, cfg.Source.BaseURL, cfg.Source.Year, logger)
	papers, err := s.ScrapeWithRetry(context.Background(), 3, 2*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scrape failed: %v\n", err)
		os.Exit(1)
	}
	inserted, err := components.Storage.InsertPapers(context.Background(), papers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Insert failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Scraped %d papers, inserted %d new\n", len(papers), inserted)
}

func runIndex() {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, logger, components := setup(*configPath, false)
	defer logger.Sync()
	defer components.Close()

	n, err := components.Indexer.BuildIndex(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Index build failed: %v\n", err)
		os.Exit(1)
	}
	if path := cfg.Storage.VectorSnapshotPath; path != "" {
		if err := components.Indexer.SaveSnapshot(path); err != nil {
			logger.Warn("snapshot save failed", zap.String("path", path), zap.Error(err))
		}
	}
	fmt.Printf("Indexed %d papers\n", n)
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	topK := fs.Int("limit", 10, "number of results")
	weight := fs.Float64("weight", models.DefaultSemanticWeight, "semantic weight in [0,1]")
	mode := fs.String("mode", "hybrid", "search mode: hybrid, semantic, or keyword")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: kasane search [flags] <query>")
		os.Exit(1)
	}
	queryStr := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if queryStr == "" {
		fmt.Println("Usage: kasane search [flags] <query>")
		os.Exit(1)
	}

	_, logger, components := setup(*configPath, false)
	defer logger.Sync()
	defer components.Close()

	w := *weight
	query := &models.SearchQuery{
		Query:  queryStr,
		TopK:   *topK,
		Mode:   models.SearchMode(*mode),
		Weight: &w,
	}
	response, err := components.Engine.Search(context.Background(), query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	format := cli.OutputText
	if *outputFormat == "json" {
		format = cli.OutputJSON
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runImages() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: kasane images <index|search|watch> [flags] [args]")
		os.Exit(1)
	}
	sub := os.Args[2]
	fs := flag.NewFlagSet("images "+sub, flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	topK := fs.Int("limit", 5, "number of results (search)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[3:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	imageEmbedder := embedding.NewHashImageEmbedder(cfg.Embedding.ImageDimensions)
	index := images.NewIndex(imageEmbedder, cfg.Images.Extensions, logger)

	switch sub {
	case "index":
		dir := cfg.Images.Directory
		if fs.NArg() > 0 {
			dir = fs.Arg(0)
		}
		if dir == "" {
			fmt.Fprintln(os.Stderr, "No image directory; pass a path or set images.directory")
			os.Exit(1)
		}
		n, err := index.IndexFolder(context.Background(), dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Image indexing failed: %v\n", err)
			os.Exit(1)
		}
		if path := cfg.Storage.ImageSnapshotPath; path != "" {
			if err := index.Save(path); err != nil {
				logger.Warn("image snapshot save failed", zap.String("path", path), zap.Error(err))
			}
		}
		fmt.Printf("Indexed %d images from %s\n", n, dir)
	case "search":
		if fs.NArg() < 1 {
			fmt.Println("Usage: kasane images search [flags] <query-image>")
			os.Exit(1)
		}
		if path := cfg.Storage.ImageSnapshotPath; path != "" {
			if err := index.Load(path); err != nil {
				fmt.Fprintf(os.Stderr, "No image index loaded (%v); run `kasane images index` first\n", err)
				os.Exit(1)
			}
		}
		results, err := index.Search(context.Background(), fs.Arg(0), *topK)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Image search failed: %v\n", err)
			os.Exit(1)
		}
		format := cli.OutputText
		if *outputFormat == "json" {
			format = cli.OutputJSON
		}
		if err := cli.WriteImageResults(os.Stdout, fs.Arg(0), results, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "watch":
		dir := cfg.Images.Directory
		if fs.NArg() > 0 {
			dir = fs.Arg(0)
		}
		if dir == "" {
			fmt.Fprintln(os.Stderr, "No image directory; pass a path or set images.directory")
			os.Exit(1)
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if _, err := index.IndexFolder(ctx, dir); err != nil {
			fmt.Fprintf(os.Stderr, "Initial image indexing failed: %v\n", err)
			os.Exit(1)
		}
		watcher := images.NewWatcher(index, dir, logger)
		go func() {
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			<-sigChan
			cancel()
		}()
		if err := watcher.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Watch failed: %v\n", err)
			os.Exit(1)
		}
		if path := cfg.Storage.ImageSnapshotPath; path != "" {
			if err := index.Save(path); err != nil {
				logger.Warn("image snapshot save failed", zap.String("path", path), zap.Error(err))
			}
		}
	default:
		fmt.Printf("Unknown images subcommand: %s\n", sub)
		os.Exit(1)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, logger, components := setup(*configPath, false)
	defer logger.Sync()
	defer components.Close()

	count, err := components.Storage.CountPapers(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Count papers failed: %v\n", err)
		os.Exit(1)
	}
	docCount, err := components.Keyword.DocCount()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Keyword doc count failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("papers:             %d   # records in storage\n", count)
	fmt.Printf("vector_index_size:  %d   # vectors in semantic index\n", components.Store.Size())
	fmt.Printf("keyword_index_size: %d   # papers in keyword index\n", docCount)
	fmt.Printf("embedding_dims:     %d\n", cfg.Embedding.Dimensions)
	fmt.Printf("semantic_weight:    %.2f\n", cfg.Search.SemanticWeight)
}

func printUsage() {
	fmt.Println(`kasane - Hybrid semantic + keyword paper search

Usage:
  kasane server [flags]             Start the HTTP server
  kasane scrape [flags]             Scrape the configured paper listing into storage
  kasane index [flags]              Build the vector and keyword indices
  kasane search [flags] <query>     Search papers
  kasane images <index|search|watch>  Reverse image search over a folder
  kasane status [flags]             Show storage and index status
  kasane version                    Show version
  kasane help                       Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/kasane/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --config string    Config file path
  --limit int        Number of results (default: 10)
  --weight float     Semantic weight in [0,1] (default: 0.7)
  --mode string      hybrid, semantic, or keyword (default: hybrid)
  --output string    text or json (default: text)

Examples:
  kasane scrape --year 2024
  kasane index
  kasane search transformer attention mechanism
  kasane search --mode keyword --limit 5 "graph neural network"
  kasane images index ./sample_images
  kasane images search query.jpg
  kasane images watch ./sample_images`)
}
