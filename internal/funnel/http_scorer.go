package funnel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"query-insights-go/internal/logger"
	"query-insights-go/internal/types"
)

// HTTPScorer calls an external zero-shot endpoint:
// POST {"text": ..., "labels": [...]} -> {"scores": {"label": score, ...}}.
type HTTPScorer struct {
	url     string
	client  *http.Client
	timeout time.Duration
	retries int
}

func NewHTTPScorer(url string, timeout time.Duration, retries int) *HTTPScorer {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &HTTPScorer{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		retries: retries,
	}
}

type scoreRequest struct {
	Text   string   `json:"text"`
	Labels []string `json:"labels"`
}

type scoreResponse struct {
	Scores map[string]float64 `json:"scores"`
}

func (s *HTTPScorer) Score(ctx context.Context, text string, labels []string) (map[string]float64, error) {
	if s.url == "" {
		return nil, &types.OracleUnavailable{Oracle: "funnel-scorer", Err: fmt.Errorf("no endpoint configured")}
	}
	log := logger.New().WithField("component", "funnel-scorer")

	data, _ := json.Marshal(scoreRequest{Text: text, Labels: labels})
	var parsed scoreResponse
	var lastErr error

	op := func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, s.url, bytes.NewReader(data))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			log.WithError(err).Warn("scorer request failed")
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			lastErr = fmt.Errorf("scorer client error %d: %s", resp.StatusCode, string(body))
			return backoff.Permanent(lastErr)
		}
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("scorer server error %d", resp.StatusCode)
			return lastErr
		}
		if err := json.Unmarshal(body, &parsed); err != nil {
			lastErr = fmt.Errorf("decode scorer response: %w", err)
			return lastErr
		}
		lastErr = nil
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(s.retries)), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return nil, &types.OracleUnavailable{Oracle: "funnel-scorer", Err: lastErr}
	}
	return parsed.Scores, nil
}
