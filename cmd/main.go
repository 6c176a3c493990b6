package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golfwear-extractor/adapters"
	"golfwear-extractor/extractor"
	"golfwear-extractor/internal/types"
	"golfwear-extractor/utils"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	var (
		brandFlag      = flag.String("brand", "", "Storefront brand (pearlygates, lecoqgolf, munsingwear, descentegolf, srixon)")
		urlFlag        = flag.String("url", "", "Single product URL to scrape")
		inputFlag      = flag.String("input", "", "Batch input file (JSON product list)")
		outputFlag     = flag.String("output", "", "Output file path (default: stdout)")
		limitFlag      = flag.Int("limit", 0, "Maximum number of products to process (0 = no limit)")
		concurrentFlag = flag.Int("concurrent", 3, "Maximum concurrent scrapes")
		delayFlag      = flag.Duration("delay", 1*time.Second, "Delay between scrape launches")
		retryFlag      = flag.Int("retry", 1, "Retry attempts per failed product")
		timeoutFlag    = flag.Duration("timeout", 30*time.Second, "Request timeout")
		discoverFlag   = flag.Bool("discover", false, "Discover product URLs from listing pages instead of scraping details")
		verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if *brandFlag == "" {
		log.Fatal("--brand flag is required")
	}
	if !*discoverFlag && *urlFlag == "" && *inputFlag == "" {
		log.Fatal("One of --discover, --url, or --input is required")
	}
	if *urlFlag != "" && *inputFlag != "" {
		log.Fatal("Cannot use both --url and --input flags")
	}

	// Setup logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else if *verboseFlag {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	config := types.DefaultConfig()
	config.Timeout = *timeoutFlag
	config.RequestDelay = *delayFlag
	config.MaxRetries = *retryFlag
	config.MaxConcurrentRequests = *concurrentFlag

	profile, err := profileFor(*brandFlag)
	if err != nil {
		log.Fatalf("Unknown brand: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	if *discoverFlag {
		urls, err := discoverProducts(ctx, *brandFlag, profile, config, logger)
		if err != nil {
			logger.Fatalf("Product discovery failed: %v", err)
		}
		writeJSON(logger, *outputFlag, urls)
		return
	}

	scraper := extractor.NewDetailScraper(profile, config, logger)

	if *urlFlag != "" {
		result := scraper.ScrapeDetailPage(ctx, *urlFlag, types.ScrapeHints{})
		writeJSON(logger, *outputFlag, result)
		if !result.Success {
			os.Exit(1)
		}
		return
	}

	data, err := os.ReadFile(*inputFlag)
	if err != nil {
		log.Fatalf("Failed to read input file: %v", err)
	}
	items, err := extractor.LoadBatchItems(data)
	if err != nil {
		log.Fatalf("Failed to parse input file: %v", err)
	}

	runner := extractor.NewBatchRunner(scraper.ScrapeDetailPage, logger)
	results, summary := runner.Run(ctx, items, extractor.BatchOptions{
		Limit:      *limitFlag,
		Concurrent: *concurrentFlag,
		Delay:      *delayFlag,
		Retry:      *retryFlag,
	})

	writeJSON(logger, *outputFlag, struct {
		Results []types.DetailResult `json:"results"`
		Summary types.BatchSummary   `json:"summary"`
	}{Results: results, Summary: summary})

	logger.Infof("Batch finished: %d succeeded, %d failed, %d skipped",
		summary.Succeeded, summary.Failed, summary.Skipped)
}

// profileFor maps a brand flag to its storefront profile.
func profileFor(brand string) (*adapters.Profile, error) {
	if brand == "pearlygates" {
		return adapters.PearlyGatesProfile(), nil
	}
	return adapters.DescenteProfile(brand)
}

// discoverProducts runs listing discovery for the brand. The output is a
// plain URL array, directly usable as batch input.
func discoverProducts(ctx context.Context, brand string, profile *adapters.Profile, config *types.Config, logger types.Logger) ([]string, error) {
	if brand == "pearlygates" {
		return adapters.NewPearlyGatesAdapter(config, logger).DiscoverProductURLs(ctx)
	}

	session, err := utils.NewBrowserSession(ctx, config, logger)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	return adapters.NewDescenteAdapter(profile, config, logger).DiscoverProductURLs(ctx, session)
}

func writeJSON(logger *logrus.Logger, path string, payload interface{}) {
	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		logger.Fatalf("Failed to marshal results: %v", err)
	}

	if path != "" {
		if err := os.WriteFile(path, jsonData, 0644); err != nil {
			logger.Fatalf("Failed to write output file: %v", err)
		}
		logger.Infof("Results written to: %s", path)
		return
	}
	fmt.Println(string(jsonData))
}
