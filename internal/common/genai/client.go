// internal/common/genai/client.go
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	commonhttp "cardmatch-workers/internal/common/http"
	"cardmatch-workers/internal/common/metrics"
)

var (
	ErrEmbeddingFailed  = errors.New("EMBEDDING_FAILED")
	ErrEmbeddingTimeout = errors.New("EMBEDDING_TIMEOUT")
	ErrGenerationFailed = errors.New("GENERATION_FAILED")
)

// Config holds connection settings for the Gemini REST API.
type Config struct {
	BaseURL         string
	APIKey          string
	EmbeddingModel  string
	GenerationModel string
	BatchSize       int
	MaxRetries      int
	Timeout         time.Duration
}

// Client calls the Gemini embedContent / generateContent endpoints.
// Texts are embedded in batches: requests inside one batch fan out
// concurrently, batches run strictly sequentially to bound load on the
// external service.
type Client struct {
	config Config
	client *commonhttp.Client
}

func NewClient(config Config) *Client {
	if config.BatchSize <= 0 {
		config.BatchSize = 10
	}
	return &Client{
		config: config,
		client: commonhttp.NewClient(config.Timeout),
	}
}

type embedRequest struct {
	Model   string  `json:"model"`
	Content content `json:"content"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding struct {
		Values []float64 `json:"values"`
	} `json:"embedding"`
}

// EmbedTexts returns one embedding vector per input text, in input order.
// Any single failure aborts the whole call: callers never see a partial
// result set.
func (c *Client) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings := make([][]float64, len(texts))

	for start := 0; start < len(texts); start += c.config.BatchSize {
		end := start + c.config.BatchSize
		if end > len(texts) {
			end = len(texts)
		}

		batchStart := time.Now()
		if err := c.embedBatch(ctx, texts[start:end], embeddings[start:end]); err != nil {
			metrics.EmbeddingRequests.WithLabelValues("error").Inc()
			return nil, err
		}
		metrics.EmbeddingRequests.WithLabelValues("ok").Inc()
		metrics.EmbeddingBatchDuration.Observe(time.Since(batchStart).Seconds())
	}

	return embeddings, nil
}

// embedBatch fans out one request per text and waits for all of them.
func (c *Client) embedBatch(ctx context.Context, texts []string, out [][]float64) error {
	var wg sync.WaitGroup
	errs := make([]error, len(texts))

	for i, text := range texts {
		wg.Add(1)
		go func(idx int, t string) {
			defer wg.Done()
			vec, err := c.embedOne(ctx, t)
			if err != nil {
				errs[idx] = err
				return
			}
			out[idx] = vec
		}(i, text)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) embedOne(ctx context.Context, text string) ([]float64, error) {
	body, _ := json.Marshal(embedRequest{
		Model:   "models/" + c.config.EmbeddingModel,
		Content: content{Parts: []part{{Text: text}}},
	})

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:embedContent?key=%s",
		strings.TrimRight(c.config.BaseURL, "/"),
		c.config.EmbeddingModel,
		url.QueryEscape(c.config.APIKey),
	)

	respBody, err := c.post(ctx, endpoint, body, ErrEmbeddingFailed, ErrEmbeddingTimeout)
	if err != nil {
		return nil, err
	}

	var parsed embedResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode error: %v", ErrEmbeddingFailed, err)
	}
	if len(parsed.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding returned", ErrEmbeddingFailed)
	}
	return parsed.Embedding.Values, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends a single prompt to the generation model and returns
// the first candidate's text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(c.config.BaseURL, "/"),
		c.config.GenerationModel,
		url.QueryEscape(c.config.APIKey),
	)

	respBody, err := c.post(ctx, endpoint, body, ErrGenerationFailed, ErrGenerationFailed)
	if err != nil {
		return "", err
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrGenerationFailed, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// post issues a request with retry and exponential backoff, mirroring the
// transport behavior used for other external AI services.
func (c *Client) post(ctx context.Context, endpoint string, body []byte, failErr, timeoutErr error) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, timeoutErr
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", failErr, err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, timeoutErr
			}
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			// Client errors other than rate limiting will not recover on retry.
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return nil, fmt.Errorf("%w: %v", failErr, lastErr)
			}
			continue
		}

		var buf bytes.Buffer
		if _, err := buf.ReadFrom(resp.Body); err != nil {
			resp.Body.Close()
			lastErr = err
			continue
		}
		resp.Body.Close()
		return buf.Bytes(), nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		return nil, timeoutErr
	}
	return nil, fmt.Errorf("%w: %v", failErr, lastErr)
}
