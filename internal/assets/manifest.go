package assets

import (
	"encoding/json"
	"io"
	"path/filepath"

	"logo-asset-kit/internal/codec"
)

// ManifestEntry represents one generated file in the output manifest.
type ManifestEntry struct {
	Bucket  string `json:"bucket"`
	Variant string `json:"variant,omitempty"`
	Name    string `json:"name,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Format  string `json:"format"`
	File    string `json:"file"` // relative to the output directory
}

// WriteManifest writes the successful results to path as JSON.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Bucket:  r.Bucket,
			Variant: r.Variant.Name,
			Name:    r.Size.Name,
			Width:   r.Size.W,
			Height:  r.Size.H,
			Format:  string(r.Format),
			File:    filepath.ToSlash(filepath.Join(r.Bucket, r.File)),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return codec.WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
