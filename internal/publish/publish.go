package publish

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"logo-asset-kit/internal/codec"
	"logo-asset-kit/internal/logging"
)

// Publisher delivers a generated file somewhere outside the output tree.
// LocalDir and S3 are the two implementations.
type Publisher interface {
	Publish(path string) error
	String() string
}

// New returns an S3 publisher for s3://bucket/prefix destinations and a
// LocalDir publisher for anything else.
func New(dest, region string) (Publisher, error) {
	if dest == "" {
		return nil, errors.New("publish: empty destination")
	}
	if strings.HasPrefix(dest, "s3://") {
		bucket, prefix, _ := strings.Cut(strings.TrimPrefix(dest, "s3://"), "/")
		if bucket == "" {
			return nil, fmt.Errorf("publish: no bucket in %s", dest)
		}
		s := &S3{Bucket: bucket, Prefix: prefix, Region: region}
		if err := s.Init(); err != nil {
			return nil, err
		}
		return s, nil
	}
	return &LocalDir{Dir: dest}, nil
}

// All publishes every path that exists, skipping missing ones with a
// warning. It returns the number published and the first error.
func All(p Publisher, paths []string) (int, error) {
	log := logging.Logger()
	n := 0
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			log.Warn("publish: skipping missing asset", "path", path)
			continue
		}
		if err := p.Publish(path); err != nil {
			return n, fmt.Errorf("publish: %s to %s: %w", filepath.Base(path), p, err)
		}
		log.Info("publish: copied", "file", filepath.Base(path), "dest", p.String())
		n++
	}
	return n, nil
}

// LocalDir copies files into a folder on the local machine.
type LocalDir struct {
	Dir string
}

func (l *LocalDir) String() string { return l.Dir }

// Publish copies path into l.Dir under its base name, creating l.Dir first.
// A failed copy leaves any existing file at the destination untouched.
func (l *LocalDir) Publish(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	return codec.WriteAtomic(filepath.Join(l.Dir, filepath.Base(path)), func(w io.Writer) error {
		_, err := io.Copy(w, src)
		return err
	})
}
