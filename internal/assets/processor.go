package assets

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"logo-asset-kit/internal/codec"
	"logo-asset-kit/internal/config"
	"logo-asset-kit/internal/logging"
	"logo-asset-kit/internal/resize"
)

// Config holds all shared resources for a generation run.
type Config struct {
	Master      *image.NRGBA
	OutputDir   string
	Prefix      string
	ConfigName  string
	Buckets     []config.Bucket
	Variants    []config.Variant
	Favicons    []int
	JPEGQuality int
	Workers     int

	// Progress receives periodic "[n/total]" lines when non-nil.
	Progress io.Writer
}

// Result holds the outcome of rendering one file.
type Result struct {
	Job
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Run renders all jobs using a worker pool. Results are returned in job order.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	cache := newCanvasCache(cfg.Master)
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		if cfg.Progress == nil {
			return
		}
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f files/sec\n", p, total, rate)
				}
			}
		}
	}()

	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = render(cfg, cache, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	logging.Logger().Debug("assets: run finished", "jobs", total, "canvases", cache.Len(),
		"elapsed", time.Since(start))
	return results
}

func render(cfg Config, cache *canvasCache, job Job) Result {
	img := cache.Contained(job.Size.W, job.Size.H)

	bg, ok, err := job.Variant.Color()
	if err != nil {
		return Result{Job: job, Error: err.Error()}
	}
	if ok {
		img = resize.Flatten(img, bg)
	}

	if err := codec.Save(job.Path, img, job.Format, cfg.JPEGQuality); err != nil {
		return Result{Job: job, Error: err.Error()}
	}

	logging.Logger().Debug("assets: generated", "file", job.File)
	return Result{Job: job, Success: true}
}

// Favicons writes one transparent PNG per favicon size and bundles all of
// them into favicon.ico. The ICO result comes last.
func Favicons(cfg Config) []Result {
	dir := filepath.Join(cfg.OutputDir, FaviconDir)
	var (
		results []Result
		icons   []image.Image
	)

	for _, s := range cfg.Favicons {
		name := FaviconName(cfg.Prefix, s)
		job := Job{
			Bucket: FaviconDir,
			Size:   config.Size{W: s, H: s},
			Format: codec.PNG,
			File:   name,
			Path:   filepath.Join(dir, name),
		}
		img := resize.Contain(cfg.Master, s, s, resize.Transparent)
		if err := codec.Save(job.Path, img, codec.PNG, 0); err != nil {
			results = append(results, Result{Job: job, Error: err.Error()})
			continue
		}
		icons = append(icons, img)
		results = append(results, Result{Job: job, Success: true})
	}

	ico := Job{
		Bucket: FaviconDir,
		Format: codec.ICO,
		File:   "favicon.ico",
		Path:   filepath.Join(dir, "favicon.ico"),
	}
	if len(icons) == 0 {
		return append(results, Result{Job: ico, Error: "no favicon images to bundle"})
	}

	err := codec.WriteAtomic(ico.Path, func(w io.Writer) error {
		return codec.EncodeICO(w, icons)
	})
	if err != nil {
		return append(results, Result{Job: ico, Error: err.Error()})
	}
	return append(results, Result{Job: ico, Success: true})
}
