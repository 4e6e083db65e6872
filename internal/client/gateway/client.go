// Package gateway translates story operations into HTTP calls against the
// remote story API. It is stateless and single-shot: retry policy belongs to
// the sync layer, never here.
package gateway

import (
	"context"

	"storysync/internal/client/models"
)

// LoginResult is the authentication payload returned by the API.
type LoginResult struct {
	UserId string `json:"userId"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

// Client is the remote story API surface consumed by the services layer.
// An empty token selects the anonymous/guest behavior where one exists.
type Client interface {
	// ListStories fetches one page. withLocation filters server-side to
	// geotagged stories only. A valid empty page returns a nil slice and no
	// error.
	ListStories(ctx context.Context, page, size int, withLocation bool, token string) ([]models.Story, error)

	// GetStoryDetail fetches a single story.
	GetStoryDetail(ctx context.Context, id, token string) (*models.Story, error)

	// SubmitStory posts a multipart submission to the authenticated endpoint
	// when token is set, else to the guest endpoint. Coordinates are sent
	// only as a complete pair.
	SubmitStory(ctx context.Context, sub models.Submission, token string) error

	// Register creates an account.
	Register(ctx context.Context, name, email, password string) error

	// Login authenticates and returns the bearer token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Ping probes API reachability; it is the live connectivity signal.
	Ping(ctx context.Context) error

	// FetchImage downloads a photo for the offline image cache.
	FetchImage(ctx context.Context, url string) (*models.ImageAsset, error)
}
