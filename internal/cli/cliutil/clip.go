package cliutil

import (
	"fmt"
	"os"

	"github.com/ivlev/animtrack/internal/clip"
)

// LoadAnimation reads and builds the clip at path. An empty path picks the
// newest clip in dir.
func LoadAnimation(path, dir string) (*clip.Animation, string, error) {
	if path == "" {
		latest, err := clip.FindLatestClip(dir)
		if err != nil {
			return nil, "", fmt.Errorf("%w. Put a clip into %s/", err, dir)
		}
		path = latest
		fmt.Fprintf(os.Stderr, "[*] Selected clip: %s\n", path)
	}

	c, err := clip.ReadClip(path)
	if err != nil {
		return nil, "", err
	}

	anim, err := clip.Build(c)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return anim, path, nil
}

// ClipArg returns the optional single clip argument.
func ClipArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	}
	return "", fmt.Errorf("only one clip path is allowed, got %d", len(args))
}
