package slug

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	gSlug "github.com/gosimple/slug"
)

const maxAttempts = 50

var ErrEmptySlug = errors.New("name does not produce a usable slug")

// Taken reports whether a slug is already used by another record.
type Taken func(ctx context.Context, slug string) (bool, error)

// Unique derives a URL slug from name, appending -2, -3, ... while taken reports a collision.
func Unique(ctx context.Context, name string, taken Taken) (string, error) {
	base := gSlug.Make(name)
	if base == "" {
		return "", ErrEmptySlug
	}

	candidate := base
	for attempt := 2; attempt <= maxAttempts+1; attempt++ {
		exists, err := taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}

		if !exists {
			return candidate, nil
		}

		candidate = base + "-" + strconv.Itoa(attempt)
	}

	return "", fmt.Errorf("failed to find a free slug for %q after %d attempts", base, maxAttempts)
}
