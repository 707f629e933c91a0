package detector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
	"github.com/apurvakhangal/unmasked/internal/infrastructure/resilience"
)

// Client calls the inference service that wraps the frame-sampling
// Xception classifier. Uploads are streamed as multipart bodies.
type Client struct {
	baseURL      string
	modelVersion string
	httpClient   *http.Client
	executor     *resilience.Executor
}

type Options struct {
	Timeout            time.Duration
	HTTPClient         *http.Client
	ResilienceExecutor *resilience.Executor
}

func New(baseURL, modelVersion string, options Options) *Client {
	httpClient := options.HTTPClient
	if httpClient == nil {
		timeout := options.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Minute
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		modelVersion: modelVersion,
		httpClient:   httpClient,
		executor:     options.ResilienceExecutor,
	}
}

func (c *Client) ModelVersion() string {
	return c.modelVersion
}

type predictResponse struct {
	Prediction      string  `json:"prediction"`
	Confidence      float64 `json:"confidence"`
	FakeProbability float64 `json:"fake_probability"`
	RealProbability float64 `json:"real_probability"`
	FramesAnalyzed  int     `json:"frames_analyzed"`
}

// Predict posts the stored video to the classifier. The open callback
// re-reads the object on every attempt, so a retried request never sees
// a half-consumed stream.
func (c *Client) Predict(ctx context.Context, filename string, open func() (io.ReadCloser, error)) (domain.Verdict, error) {
	var verdict domain.Verdict
	call := func(ctx context.Context) error {
		v, err := c.predictOnce(ctx, filename, open)
		if err != nil {
			return err
		}
		verdict = v
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "detector.predict", call, classifyDetectorError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return domain.Verdict{}, wrapTemporaryIfNeeded("detector predict", err)
	}
	return verdict, nil
}

func (c *Client) predictOnce(ctx context.Context, filename string, open func() (io.ReadCloser, error)) (domain.Verdict, error) {
	body, err := open()
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("open upload: %w", err)
	}
	defer body.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		part, err := writer.CreateFormFile("video", filename)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, body); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/predict", pr)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("detector request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.Verdict{}, &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(payload)),
		}
	}

	var parsed predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.Verdict{}, fmt.Errorf("decode predict response: %w", err)
	}

	prediction := strings.ToUpper(strings.TrimSpace(parsed.Prediction))
	if prediction != domain.PredictionFake && prediction != domain.PredictionReal {
		return domain.Verdict{}, fmt.Errorf("detector returned unknown prediction %q", parsed.Prediction)
	}

	return domain.Verdict{
		Prediction:      prediction,
		Confidence:      parsed.Confidence,
		FakeProbability: parsed.FakeProbability,
		RealProbability: parsed.RealProbability,
		FramesAnalyzed:  parsed.FramesAnalyzed,
	}, nil
}

func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}
