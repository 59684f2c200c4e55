// Package recs is the typed boundary to the external recommendation service.
// It hides the header-metadata wire contract from the rest of the backend and
// converts transport/status failures into domain error variants.
package recs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"sparetime/internal/domain"
	"sparetime/internal/domain/models"
)

const defaultTimeout = 5 * time.Second

// Client calls the recommendation service. All calls carry the user identity
// as request metadata (headers), never as caller-controlled body data, and run
// under a fixed deadline.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		Timeout:    timeout,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return defaultTimeout
}

type top3Response struct {
	Top3VideoIDs []string `json:"top3VideoIds"`
}

// FetchTop3 asks for the next three candidate videos for a session of
// durationMinutes. The returned slice preserves upstream order.
func (c *Client) FetchTop3(ctx context.Context, userID string, durationMinutes int) ([]string, error) {
	const op = "top3"
	headers := map[string]string{
		"userId":   userID,
		"duration": strconv.Itoa(durationMinutes),
	}

	body, err := c.do(ctx, op, http.MethodGet, "/api/top3", headers)
	if err != nil {
		return nil, err
	}

	var out top3Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, domain.UpstreamError{Op: op, Status: http.StatusOK}
	}
	if len(out.Top3VideoIDs) == 0 {
		return nil, domain.UpstreamError{Op: op, Status: http.StatusOK}
	}
	return out.Top3VideoIDs, nil
}

// SubmitRating forwards one rating. A nil return is the acknowledgement the
// queue layer waits for before removing the entry.
func (c *Client) SubmitRating(ctx context.Context, userID, videoID string, rating int) error {
	const op = "rate_video"
	headers := map[string]string{
		"userId":  userID,
		"videoId": videoID,
		"rating":  strconv.Itoa(rating),
	}

	_, err := c.do(ctx, op, http.MethodPost, "/api/rate_video", headers)
	return err
}

// VideoInfo fetches descriptive metadata for one video.
func (c *Client) VideoInfo(ctx context.Context, userID, videoID string) (models.VideoReference, error) {
	const op = "video_info"
	headers := map[string]string{
		"userId":  userID,
		"videoId": videoID,
	}

	body, err := c.do(ctx, op, http.MethodGet, "/api/video_info", headers)
	if err != nil {
		return models.VideoReference{}, err
	}

	var ref models.VideoReference
	if err := json.Unmarshal(body, &ref); err != nil {
		return models.VideoReference{}, domain.UpstreamError{Op: op, Status: http.StatusOK}
	}
	if ref.ID == "" {
		ref.ID = videoID
	}
	return ref, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, headers map[string]string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return nil, domain.InternalError{Msg: fmt.Sprintf("build %s request", op), Err: err}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, domain.UpstreamUnavailableError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, domain.UpstreamUnavailableError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.UpstreamError{Op: op, Status: resp.StatusCode}
	}
	return body, nil
}
