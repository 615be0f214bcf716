package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"

	"github.com/lucasb-eyer/go-colorful"
)

// Brand palette.
const (
	BrandPrimary   = "#8B5CF6"
	BrandSecondary = "#06B6D4"
	BrandAccent    = "#F59E0B"
	BrandDark      = "#1a1a2e"
	BrandWhite     = "#FFFFFF"
)

// Whiteness thresholds accepted by Validate. 0 is reserved for "unset".
const (
	MinThreshold = 1
	MaxThreshold = 254
)

// Config holds all configurable paths, isolation tunables and the asset matrix.
type Config struct {
	// Paths
	BaseDir          string   `json:"base_dir"`
	Source           string   `json:"source"`
	PreferredSources []string `json:"preferred_sources"`
	Master           string   `json:"master"`
	OutputDir        string   `json:"output_dir"`
	PublishTo        string   `json:"publish_to"` // directory or s3://bucket/prefix
	AWSRegion        string   `json:"aws_region"`

	// Isolation
	Threshold     int     `json:"threshold"`
	SplitFraction float64 `json:"split_fraction"`

	// Generation
	ConfigName  string    `json:"config_name"`
	FilePrefix  string    `json:"file_prefix"`
	Buckets     []Bucket  `json:"buckets"`
	Variants    []Variant `json:"variants"`
	Favicons    []int     `json:"favicons"`
	JPEGQuality int       `json:"jpeg_quality"`
	Workers     int       `json:"workers"`
}

// Size is one output dimension. Name overrides the bucket name in file names.
type Size struct {
	W    int    `json:"w"`
	H    int    `json:"h"`
	Name string `json:"name"`
}

// Bucket groups sizes that land in the same output subdirectory.
type Bucket struct {
	Name  string `json:"name"`
	Sizes []Size `json:"sizes"`
}

// Variant is a background treatment. An empty Background means transparent.
type Variant struct {
	Name       string `json:"name"`
	Background string `json:"background"`
}

// Color parses the variant background. ok is false for transparent variants.
func (v Variant) Color() (c color.NRGBA, ok bool, err error) {
	if v.Background == "" {
		return color.NRGBA{}, false, nil
	}
	col, err := colorful.Hex(v.Background)
	if err != nil {
		return color.NRGBA{}, false, fmt.Errorf("config: variant %s: %w", v.Name, err)
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, true, nil
}

// DefaultBuckets are the web, social and app size sets.
func DefaultBuckets() []Bucket {
	return []Bucket{
		{Name: "web", Sizes: []Size{
			{W: 1200, H: 300, Name: "header"},
			{W: 800, H: 200, Name: "header-compact"},
			{W: 1200, H: 630, Name: "og"},
			{W: 192, H: 192, Name: "app-icon"},
			{W: 512, H: 512, Name: "app-icon"},
		}},
		{Name: "social", Sizes: []Size{
			{W: 1080, H: 1080, Name: "instagram"},
			{W: 1080, H: 1080, Name: "facebook"},
			{W: 400, H: 400, Name: "linkedin"},
			{W: 400, H: 400, Name: "twitter"},
			{W: 800, H: 800, Name: "youtube"},
			{W: 200, H: 200, Name: "tiktok"},
		}},
		{Name: "app", Sizes: []Size{
			{W: 1024, H: 1024, Name: "store"},
		}},
	}
}

// DefaultVariants are transparent, light, dark and brand.
func DefaultVariants() []Variant {
	return []Variant{
		{Name: "transparent"},
		{Name: "light", Background: BrandWhite},
		{Name: "dark", Background: BrandDark},
		{Name: "brand", Background: BrandPrimary},
	}
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir   string
	Source    string
	Master    string
	OutputDir string
	PublishTo string
	Quality   int
	Workers   int
}

// Resolve applies flag overrides and fills empty fields with defaults.
// Relative paths are taken relative to BaseDir.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.Source != "" {
		c.Source = flags.Source
	}
	if flags.Master != "" {
		c.Master = flags.Master
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.PublishTo != "" {
		c.PublishTo = flags.PublishTo
	}
	if flags.Quality > 0 {
		c.JPEGQuality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	c.Source = c.abs(c.Source, filepath.Join("assets", "Logo", "logo.png"))
	for i, p := range c.PreferredSources {
		c.PreferredSources[i] = c.abs(p, p)
	}
	c.Master = c.abs(c.Master, "logo_transparent_master.png")
	c.OutputDir = c.abs(c.OutputDir, "logo-kit")
	if c.PublishTo != "" && !IsS3(c.PublishTo) {
		c.PublishTo = c.abs(c.PublishTo, c.PublishTo)
	}

	if c.Threshold <= 0 {
		c.Threshold = 240
	}
	if c.SplitFraction <= 0 {
		c.SplitFraction = 0.30
	}
	if c.ConfigName == "" {
		c.ConfigName = "full"
	}
	if c.FilePrefix == "" {
		c.FilePrefix = "S3"
	}
	if len(c.Buckets) == 0 {
		c.Buckets = DefaultBuckets()
	}
	if len(c.Variants) == 0 {
		c.Variants = DefaultVariants()
	}
	if len(c.Favicons) == 0 {
		c.Favicons = []int{16, 32, 48}
	}
	if c.JPEGQuality <= 0 {
		c.JPEGQuality = 90
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Threshold < MinThreshold || c.Threshold > MaxThreshold {
		return fmt.Errorf("config: threshold %d out of range %d-%d", c.Threshold, MinThreshold, MaxThreshold)
	}
	if c.SplitFraction <= 0 || c.SplitFraction >= 1 {
		return fmt.Errorf("config: split_fraction %g must be between 0 and 1", c.SplitFraction)
	}
	if c.JPEGQuality > 100 {
		return fmt.Errorf("config: jpeg_quality %d above 100", c.JPEGQuality)
	}
	for _, b := range c.Buckets {
		if b.Name == "" {
			return fmt.Errorf("config: bucket without a name")
		}
		for _, s := range b.Sizes {
			if s.W <= 0 || s.H <= 0 {
				return fmt.Errorf("config: bucket %s: invalid size %dx%d", b.Name, s.W, s.H)
			}
		}
	}
	for _, v := range c.Variants {
		if v.Name == "" {
			return fmt.Errorf("config: variant without a name")
		}
		if _, _, err := v.Color(); err != nil {
			return err
		}
	}
	for _, s := range c.Favicons {
		if s <= 0 || s > 256 {
			return fmt.Errorf("config: favicon size %d out of range 1-256", s)
		}
	}
	return nil
}

// SourceCandidates lists the isolate inputs in priority order. Preferred
// sources come first; Source is the last resort.
func (c *Config) SourceCandidates() []string {
	out := make([]string, 0, len(c.PreferredSources)+1)
	out = append(out, c.PreferredSources...)
	return append(out, c.Source)
}

// IsS3 reports whether dest names an S3 location.
func IsS3(dest string) bool {
	return len(dest) > 5 && dest[:5] == "s3://"
}

func (c *Config) abs(p, def string) string {
	if p == "" {
		p = def
	}
	if filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}
