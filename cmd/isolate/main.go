package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/cenkalti/dominantcolor"

	"logo-asset-kit/internal/codec"
	"logo-asset-kit/internal/config"
	"logo-asset-kit/internal/isolate"
	"logo-asset-kit/internal/logging"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	baseDir := flag.String("base", "", "Base directory for relative paths (default: cwd)")
	input := flag.String("input", "", "Source logo (default: assets/Logo/logo.png)")
	output := flag.String("output", "", "Transparent master to write (default: logo_transparent_master.png)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()
	logging.Init(os.Stderr, *verbose)

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		BaseDir: *baseDir,
		Source:  *input,
		Master:  *output,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := run(cfg, *input != ""); err != nil {
		if errors.Is(err, codec.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "Error: No logo found. Please place your logo at:")
			for _, c := range sourceCandidates(cfg, *input != "") {
				fmt.Fprintf(os.Stderr, "  - %s\n", c)
			}
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// sourceCandidates lists the inputs to try in order. An explicit -input
// replaces the preferred list.
func sourceCandidates(cfg config.Config, explicitInput bool) []string {
	if explicitInput {
		return []string{cfg.Source}
	}
	return cfg.SourceCandidates()
}

// run loads the first available source, isolates the logo and writes the
// transparent master. Nothing is written unless every step succeeds.
func run(cfg config.Config, explicitInput bool) (isolate.Stats, error) {
	img, used, err := codec.Load(sourceCandidates(cfg, explicitInput)...)
	if err != nil {
		return isolate.Stats{}, err
	}

	b := img.Bounds()
	fmt.Printf("Processing %s (%dx%d)...\n", used, b.Dx(), b.Dy())

	st := isolate.Isolate(img, isolate.Options{
		Threshold:     uint8(cfg.Threshold),
		SplitFraction: cfg.SplitFraction,
	})

	fmt.Printf("Background: %d pixels cleared\n", st.Cleared)
	fmt.Printf("Islands Processed: Kept %d (Icon), Removed %d (Text holes).\n", st.Kept, st.Removed)
	fmt.Printf("Dominant color: %s\n", dominantcolor.Hex(dominantcolor.Find(img)))

	if err := codec.Save(cfg.Master, img, codec.PNG, 0); err != nil {
		return st, fmt.Errorf("write master: %w", err)
	}
	fmt.Printf("Saved transparent master to %s\n", cfg.Master)
	return st, nil
}
