package clip

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// GenerateDumpPath creates a timestamped golden filename inside dir.
func GenerateDumpPath(dir, name string) string {
	if name == "" {
		name = "clip"
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.golden.yaml", name, timestamp))
}

// FindLatestClip finds the most recently modified clip in dir. Golden dumps
// are skipped.
func FindLatestClip(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read clips directory: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}

	var clips []candidate
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasSuffix(name, ".golden.yaml") {
			continue
		}
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		clips = append(clips, candidate{filepath.Join(dir, name), info.ModTime()})
	}

	if len(clips) == 0 {
		return "", fmt.Errorf("no clip files found in %s", dir)
	}

	// Newest first
	sort.Slice(clips, func(i, j int) bool {
		return clips[i].modTime.After(clips[j].modTime)
	})

	return clips[0].path, nil
}
