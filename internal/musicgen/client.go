package musicgen

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	userAgent      = "world-theme-player/1.0"
	filenameLayout = "2006-01-02_15-04-05"
	cancelTimeout  = 5 * time.Second
)

// Sentinel errors.
var (
	// ErrPredictionFailed is returned when Replicate reports a failed prediction.
	ErrPredictionFailed = errors.New("prediction failed")

	// ErrCanceled is returned when the prediction was canceled, either by the
	// caller's context or remotely.
	ErrCanceled = errors.New("prediction canceled")

	// ErrNoOutput is returned when a successful prediction has no audio URL.
	ErrNoOutput = errors.New("prediction returned no output")

	// ErrEmptyPrompt is returned for a blank prompt.
	ErrEmptyPrompt = errors.New("empty prompt")
)

// Client runs MusicGen predictions and stores the resulting audio.
type Client struct {
	token        string
	httpClient   *http.Client
	baseURL      string
	pollInterval time.Duration
	outputDir    string
	logger       *slog.Logger
	now          func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for progress messages.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a MusicGen client from cfg.
func NewClient(cfg *Config, opts ...Option) *Client {
	c := &Client{
		token:        cfg.APIToken,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		baseURL:      strings.TrimSuffix(cmp.Or(cfg.BaseURL, DefaultBaseURL), "/"),
		pollInterval: cfg.PollInterval,
		outputDir:    cmp.Or(cfg.OutputDir, DefaultOutputDir),
		logger:       slog.New(slog.DiscardHandler),
		now:          time.Now,
	}
	if c.pollInterval <= 0 {
		c.pollInterval = DefaultPollInterval
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate creates a MusicGen prediction for prompt, waits for it to finish
// and downloads the audio into the output directory. A non-positive duration
// uses DefaultDuration.
//
// If ctx ends first the prediction is canceled remotely on a best-effort
// basis and the returned error wraps both ErrCanceled and ctx.Err().
func (c *Client) Generate(ctx context.Context, prompt string, duration time.Duration) (Result, error) {
	prompt = strings.Trim(strings.TrimSpace(prompt), `"`)
	if prompt == "" {
		return Result{}, ErrEmptyPrompt
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	seconds := int(math.Round(duration.Seconds()))

	c.logger.Info("starting music generation", "duration_s", seconds, "prompt", prompt)

	pred, err := c.create(ctx, prompt, seconds)
	if err != nil {
		return Result{}, err
	}
	c.logger.Debug("prediction created", "id", pred.ID, "status", pred.Status)

	pred, err = c.wait(ctx, pred)
	if err != nil {
		return Result{}, err
	}

	outURL := pred.outputURL()
	if outURL == "" {
		return Result{}, fmt.Errorf("prediction %s: %w", pred.ID, ErrNoOutput)
	}

	created := c.now()
	filename := "world_theme_" + created.Format(filenameLayout) + ".wav"
	path := filepath.Join(c.outputDir, filename)
	if err := c.download(ctx, outURL, path); err != nil {
		return Result{}, err
	}

	c.logger.Info("music saved", "path", path, "prediction", pred.ID)

	return Result{
		PredictionID: pred.ID,
		Prompt:       prompt,
		Duration:     time.Duration(seconds) * time.Second,
		OutputURL:    outURL,
		Path:         path,
		Filename:     filename,
		CreatedAt:    created,
	}, nil
}

func (c *Client) create(ctx context.Context, prompt string, seconds int) (prediction, error) {
	body, err := json.Marshal(createRequest{Version: Version, Input: newInput(prompt, seconds)})
	if err != nil {
		return prediction{}, fmt.Errorf("encoding prediction request: %w", err)
	}

	var pred prediction
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/v1/predictions", body, &pred); err != nil {
		return prediction{}, fmt.Errorf("creating prediction: %w", err)
	}
	if pred.ID == "" {
		return prediction{}, errors.New("creating prediction: response has no id")
	}
	return pred, nil
}

// wait polls the prediction until it reaches a terminal state.
func (c *Client) wait(ctx context.Context, pred prediction) (prediction, error) {
	getURL := pred.URLs.Get
	if getURL == "" {
		getURL = c.baseURL + "/v1/predictions/" + pred.ID
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	last := pred.Status
	for !pred.done() {
		select {
		case <-ctx.Done():
			c.cancel(ctx, pred)
			return prediction{}, fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
		case <-ticker.C:
		}

		if err := c.do(ctx, http.MethodGet, getURL, nil, &pred); err != nil {
			if ctx.Err() != nil {
				c.cancel(ctx, pred)
				return prediction{}, fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
			}
			return prediction{}, fmt.Errorf("polling prediction %s: %w", pred.ID, err)
		}
		if pred.Status != last {
			c.logger.Debug("prediction status", "id", pred.ID, "status", pred.Status)
			last = pred.Status
		}
	}

	switch pred.Status {
	case statusFailed:
		if pred.Logs != "" {
			c.logger.Error("prediction logs", "id", pred.ID, "logs", pred.Logs)
		}
		return prediction{}, fmt.Errorf("%w: %v", ErrPredictionFailed, pred.Error)
	case statusCanceled:
		return prediction{}, ErrCanceled
	}
	return pred, nil
}

// cancel asks Replicate to stop the prediction. Failures are only logged.
func (c *Client) cancel(ctx context.Context, pred prediction) {
	ctx, stop := context.WithTimeout(context.WithoutCancel(ctx), cancelTimeout)
	defer stop()

	cancelURL := pred.URLs.Cancel
	if cancelURL == "" {
		cancelURL = c.baseURL + "/v1/predictions/" + pred.ID + "/cancel"
	}
	if err := c.do(ctx, http.MethodPost, cancelURL, nil, nil); err != nil {
		c.logger.Warn("canceling prediction", "id", pred.ID, "error", err)
		return
	}
	c.logger.Info("prediction canceled", "id", pred.ID)
}

// do sends an authenticated request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, reqURL string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Detail != "" {
			return fmt.Errorf("API error %d: %s", resp.StatusCode, apiErr.Detail)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// download streams the audio at src to path.
func (c *Client) download(ctx context.Context, src, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading audio: unexpected status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating music dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating audio file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing audio file: %w", err)
	}
	return f.Close()
}
