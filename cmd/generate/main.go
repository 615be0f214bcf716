package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"logo-asset-kit/internal/assets"
	"logo-asset-kit/internal/codec"
	"logo-asset-kit/internal/config"
	"logo-asset-kit/internal/logging"
	"logo-asset-kit/internal/publish"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	baseDir := flag.String("base", "", "Base directory for relative paths (default: cwd)")
	master := flag.String("master", "", "Transparent master (default: logo_transparent_master.png)")
	outputDir := flag.String("output", "", "Output directory (default: logo-kit)")
	publishTo := flag.String("publish", "", "Copy key assets to this folder or s3://bucket/prefix")
	bucket := flag.String("bucket", "", "Generate only this size bucket (web, social, app)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	quality := flag.Int("quality", 0, "JPEG quality 1-100 (default: 90)")
	noFavicon := flag.Bool("no-favicon", false, "Skip favicons and favicon.ico")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()
	logging.Init(os.Stderr, *verbose)

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		BaseDir:   *baseDir,
		Master:    *master,
		OutputDir: *outputDir,
		PublishTo: *publishTo,
		Quality:   *quality,
		Workers:   *workers,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Filter by bucket
	if *bucket != "" {
		var filtered []config.Bucket
		for _, b := range cfg.Buckets {
			if b.Name == *bucket {
				filtered = append(filtered, b)
			}
		}
		if len(filtered) == 0 {
			fmt.Fprintf(os.Stderr, "Error: no bucket named %q\n", *bucket)
			os.Exit(1)
		}
		cfg.Buckets = filtered
	}

	fmt.Printf("Starting asset generation from %s...\n", cfg.Master)
	img, _, err := codec.Load(cfg.Master)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Println(`Run "isolate" first to create the transparent master.`)
		os.Exit(1)
	}

	runCfg := assets.Config{
		Master:      img,
		OutputDir:   cfg.OutputDir,
		Prefix:      cfg.FilePrefix,
		ConfigName:  cfg.ConfigName,
		Buckets:     cfg.Buckets,
		Variants:    cfg.Variants,
		Favicons:    cfg.Favicons,
		JPEGQuality: cfg.JPEGQuality,
		Workers:     cfg.Workers,
		Progress:    os.Stdout,
	}
	jobs := assets.Plan(runCfg)

	fmt.Printf("Files: %d, Workers: %d\n", len(jobs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := assets.Run(runCfg, jobs)

	if !*noFavicon {
		fmt.Println("Processing favicons...")
		results = append(results, assets.Favicons(runCfg)...)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []assets.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Generated: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.File, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := assets.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	// Copy key assets
	if cfg.PublishTo != "" {
		pub, err := publish.New(cfg.PublishTo, cfg.AWSRegion)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nCopying key assets to %s...\n", pub)
		n, err := publish.All(pub, assets.KeyAssets(runCfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed++
		}
		fmt.Printf("Published: %d\n", n)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
