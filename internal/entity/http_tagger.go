package entity

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

// HTTPTagger calls an external NER service: POST {"text": ...} ->
// {"entities": [{"text","label","start","end"}, ...]}.
type HTTPTagger struct {
	url     string
	client  *http.Client
	timeout time.Duration
	retries int
}

func NewHTTPTagger(url string, timeout time.Duration, retries int) *HTTPTagger {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &HTTPTagger{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		retries: retries,
	}
}

type tagRequest struct {
	Text string `json:"text"`
}

type tagResponse struct {
	Entities []types.Entity `json:"entities"`
}

func (t *HTTPTagger) Tag(ctx context.Context, text string) ([]types.Entity, error) {
	if t.url == "" {
		return nil, &types.OracleUnavailable{Oracle: "entity-tagger", Err: fmt.Errorf("no endpoint configured")}
	}
	log := logger.New().WithField("component", "entity-tagger")

	data, _ := json.Marshal(tagRequest{Text: text})
	var parsed tagResponse
	var lastErr error

	op := func() error {
		callCtx, cancel := context.WithTimeout(ctx, t.timeout)
		defer cancel()
		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, t.url, bytes.NewReader(data))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.client.Do(req)
		if err != nil {
			lastErr = err
			log.WithError(err).Warn("tagger request failed")
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			lastErr = fmt.Errorf("tagger client error %d: %s", resp.StatusCode, string(body))
			return backoff.Permanent(lastErr)
		}
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("tagger server error %d", resp.StatusCode)
			return lastErr
		}
		if err := json.Unmarshal(body, &parsed); err != nil {
			lastErr = fmt.Errorf("decode tagger response: %w", err)
			return lastErr
		}
		lastErr = nil
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(t.retries)), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return nil, &types.OracleUnavailable{Oracle: "entity-tagger", Err: lastErr}
	}
	return parsed.Entities, nil
}
