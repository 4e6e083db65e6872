package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storysync/internal/client/models"
)

// maxImageBytes caps a single cached photo download.
const maxImageBytes = 20 << 20

// HTTPClient implements Client against the story REST API.
type HTTPClient struct {
	base string
	http *http.Client
}

// NewHTTPClient returns a gateway bound to baseURL (e.g.
// "https://story-api.dicoding.dev/v1"). A nil client gets a default with a
// request timeout; in-flight calls cut off by a connectivity change fail
// through the same path as any transport error.
func NewHTTPClient(baseURL string, client *http.Client) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPClient{base: strings.TrimRight(baseURL, "/"), http: client}
}

type envelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type listEnvelope struct {
	envelope
	ListStory []models.Story `json:"listStory"`
}

type detailEnvelope struct {
	envelope
	Story models.Story `json:"story"`
}

type loginEnvelope struct {
	envelope
	LoginResult LoginResult `json:"loginResult"`
}

// ListStories fetches one page of stories, newest first.
func (c *HTTPClient) ListStories(ctx context.Context, page, size int, withLocation bool, token string) ([]models.Story, error) {
	const op = "list stories"

	location := "0"
	if withLocation {
		location = "1"
	}
	q := url.Values{
		"page":     {strconv.Itoa(page)},
		"size":     {strconv.Itoa(size)},
		"location": {location},
	}

	resp, err := c.do(ctx, op, http.MethodGet, c.base+"/stories?"+q.Encode(), nil, "", token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{Op: op, Status: resp.StatusCode}
	}

	var env listEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", op, err)
	}

	// boundary validation: drop id-less entries, coerce half-set coordinates
	result := env.ListStory[:0]
	for _, s := range env.ListStory {
		if s.Id == "" {
			continue
		}
		s.NormalizeLocation()
		result = append(result, s)
	}
	return result, nil
}

// GetStoryDetail fetches a single story by id.
func (c *HTTPClient) GetStoryDetail(ctx context.Context, id, token string) (*models.Story, error) {
	const op = "get story detail"

	resp, err := c.do(ctx, op, http.MethodGet, c.base+"/stories/"+url.PathEscape(id), nil, "", token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{Op: op, Status: resp.StatusCode}
	}

	var env detailEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", op, err)
	}
	if env.Story.Id == "" {
		return nil, fmt.Errorf("%s: malformed story payload", op)
	}
	env.Story.NormalizeLocation()
	return &env.Story, nil
}

// SubmitStory posts a multipart submission. With a token it targets the
// authenticated endpoint, otherwise the guest endpoint.
func (c *HTTPClient) SubmitStory(ctx context.Context, sub models.Submission, token string) error {
	const op = "submit story"

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("description", sub.Description); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	part, err := w.CreateFormFile("photo", "photo.jpg")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := part.Write(sub.Photo); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	// coordinates only ever travel as a pair
	if sub.Lat != nil && sub.Lon != nil {
		if err := w.WriteField("lat", strconv.FormatFloat(*sub.Lat, 'f', -1, 64)); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := w.WriteField("lon", strconv.FormatFloat(*sub.Lon, 'f', -1, 64)); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	endpoint := c.base + "/stories/guest"
	if token != "" {
		endpoint = c.base + "/stories"
	}

	resp, err := c.do(ctx, op, http.MethodPost, endpoint, &body, w.FormDataContentType(), token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Message != "" {
			return &APIError{Op: op, Message: env.Message}
		}
		return &APIError{Op: op, Message: "failed to add story"}
	}
	return nil
}

// Register creates an account. The API signals failure through its error
// envelope, independent of the HTTP status.
func (c *HTTPClient) Register(ctx context.Context, name, email, password string) error {
	const op = "register"

	var env envelope
	if err := c.postJSON(ctx, op, c.base+"/register",
		map[string]string{"name": name, "email": email, "password": password}, &env); err != nil {
		return err
	}
	if env.Error {
		return &APIError{Op: op, Message: orDefault(env.Message, "registration failed")}
	}
	return nil
}

// Login authenticates and returns the bearer token.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "login"

	var env loginEnvelope
	if err := c.postJSON(ctx, op, c.base+"/login",
		map[string]string{"email": email, "password": password}, &env); err != nil {
		return nil, err
	}
	if env.Error {
		return nil, &APIError{Op: op, Message: orDefault(env.Message, "login failed")}
	}
	if env.LoginResult.Token == "" {
		return nil, fmt.Errorf("%s: malformed login payload", op)
	}
	return &env.LoginResult, nil
}

// Ping probes reachability. Any HTTP response counts as online; only a
// transport failure reports offline.
func (c *HTTPClient) Ping(ctx context.Context) error {
	const op = "ping"

	resp, err := c.do(ctx, op, http.MethodGet, c.base, nil, "", "")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// FetchImage downloads a photo for the offline cache.
func (c *HTTPClient) FetchImage(ctx context.Context, imageURL string) (*models.ImageAsset, error) {
	const op = "fetch image"

	resp, err := c.do(ctx, op, http.MethodGet, imageURL, nil, "", "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{Op: op, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	return &models.ImageAsset{
		URL:         imageURL,
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
		FetchedAt:   time.Now().UTC(),
	}, nil
}

func (c *HTTPClient) do(ctx context.Context, op, method, u string, body io.Reader, contentType, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("%s: building request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	return resp, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, op, u string, payload any, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: encoding request: %w", op, err)
	}

	resp, err := c.do(ctx, op, http.MethodPost, u, bytes.NewReader(b), "application/json", "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
