package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"storysync/internal/client/gateway"
	"storysync/internal/client/models"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// Add collects a story submission interactively and tries to publish it
// directly. When the API is unreachable the submission is queued instead and
// uploaded by the next sync, so the user's work is never lost.
func (a *App) Add(ctx context.Context) error {
	sub, err := a.inputSubmission()
	if err != nil {
		return err
	}

	err = a.stories.Add(ctx, *sub)
	if err == nil {
		printlnFn("Story published")
		return nil
	}

	var netErr *gateway.NetworkError
	if !errors.As(err, &netErr) {
		// the server understood and rejected it; queueing would just fail again
		return err
	}

	p, qerr := a.syncer.Enqueue(ctx, *sub)
	if qerr != nil {
		return fmt.Errorf("offline and could not queue story: %w", qerr)
	}
	printlnFn("You are offline; story queued for sync as", p.TempId)
	return nil
}

func (a *App) inputSubmission() (*models.Submission, error) {
	description, err := getSimpleText(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return nil, err
	}

	photoPath, err := getSimpleText(a.reader, "Enter photo file path", os.Stdout)
	if err != nil {
		return nil, err
	}
	photo, err := readFile(photoPath)
	if err != nil {
		return nil, fmt.Errorf("reading photo: %w", err)
	}

	sub := &models.Submission{Description: description, Photo: photo}

	coords, err := getSimpleText(a.reader, "Enter location as lat,lon (empty to skip)", os.Stdout)
	if err != nil {
		return nil, err
	}
	if coords != "" {
		lat, lon, err := parseCoords(coords)
		if err != nil {
			return nil, err
		}
		sub.Lat, sub.Lon = &lat, &lon
	}

	return sub, nil
}

func parseCoords(s string) (lat, lon float64, err error) {
	var latStr, lonStr string
	for i, r := range s {
		if r == ',' {
			latStr, lonStr = s[:i], s[i+1:]
			break
		}
	}
	if latStr == "" || lonStr == "" {
		return 0, 0, fmt.Errorf("expected lat,lon, got %q", s)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude: %w", err)
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude: %w", err)
	}
	return lat, lon, nil
}
