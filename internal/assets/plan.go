package assets

import (
	"fmt"
	"path/filepath"

	"logo-asset-kit/internal/codec"
	"logo-asset-kit/internal/config"
)

// TransparentVariant is the variant name that is left out of file names.
const TransparentVariant = "transparent"

// FaviconDir is the output subdirectory for favicons and favicon.ico.
const FaviconDir = "favicon"

// Job is one file to render.
type Job struct {
	Bucket  string         `json:"bucket"`
	Variant config.Variant `json:"variant"`
	Size    config.Size    `json:"size"`
	Format  codec.Format   `json:"format"`
	File    string         `json:"file"`
	Path    string         `json:"-"`
}

// FileName builds names like S3_full_dark_og_1200x630.png. The variant is
// omitted for transparent output, sizeName falls back to the platform, and
// square sizes are written once.
func FileName(prefix, configName, variant, platform, sizeName string, w, h int, ext string) string {
	variantStr := configName
	if variant != TransparentVariant {
		variantStr = configName + "_" + variant
	}
	finalPlatform := platform
	if sizeName != "" {
		finalPlatform = sizeName
	}
	sizeStr := fmt.Sprintf("%dx%d", w, h)
	if w == h {
		sizeStr = fmt.Sprintf("%d", w)
	}
	return fmt.Sprintf("%s_%s_%s_%s.%s", prefix, variantStr, finalPlatform, sizeStr, ext)
}

// FaviconName is the PNG file name for a favicon of the given size.
func FaviconName(prefix string, size int) string {
	return fmt.Sprintf("%s_favicon_%d.png", prefix, size)
}

// Formats lists the encodings for a variant: JPEG only when there is a
// background to flatten onto.
func Formats(v config.Variant) []codec.Format {
	if v.Background == "" {
		return []codec.Format{codec.PNG, codec.WebP}
	}
	return []codec.Format{codec.PNG, codec.WebP, codec.JPEG}
}

// Plan expands buckets × sizes × variants × formats into jobs, in that order.
func Plan(cfg Config) []Job {
	var jobs []Job
	for _, b := range cfg.Buckets {
		for _, s := range b.Sizes {
			for _, v := range cfg.Variants {
				for _, f := range Formats(v) {
					name := FileName(cfg.Prefix, cfg.ConfigName, v.Name, b.Name, s.Name, s.W, s.H, string(f))
					jobs = append(jobs, Job{
						Bucket:  b.Name,
						Variant: v,
						Size:    s,
						Format:  f,
						File:    name,
						Path:    filepath.Join(cfg.OutputDir, b.Name, name),
					})
				}
			}
		}
	}
	return jobs
}

// KeyAssets are the files copied to the publish destination after a run.
func KeyAssets(cfg Config) []string {
	full := func(bucket, name string, w, h int) string {
		return filepath.Join(cfg.OutputDir, bucket,
			FileName(cfg.Prefix, cfg.ConfigName, TransparentVariant, bucket, name, w, h, string(codec.PNG)))
	}
	return []string{
		full("app", "store", 1024, 1024),
		full("web", "og", 1200, 630),
		full("social", "instagram", 1080, 1080),
		filepath.Join(cfg.OutputDir, FaviconDir, "favicon.ico"),
	}
}
