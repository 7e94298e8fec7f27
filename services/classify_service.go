package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ClassifyPayload is one image file to classify.
type ClassifyPayload struct {
	FileName string
	Data     []byte
}

// Classifier predicts a food label for an image. An empty label with a nil
// error means the service answered but had no usable prediction. Each call
// is at most once; retrying is the caller's decision.
type Classifier interface {
	Classify(ctx context.Context, img ClassifyPayload) (string, error)
}

// HTTPClassifier talks to the model server: one multipart upload per call,
// success body is JSON with an optional "predicted_class" field.
type HTTPClassifier struct {
	url    string
	client *http.Client
}

func NewHTTPClassifier(url string) *HTTPClassifier {
	return &HTTPClassifier{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type predictionResponse struct {
	PredictedClass string `json:"predicted_class"`
}

func (s *HTTPClassifier) Classify(ctx context.Context, img ClassifyPayload) (string, error) {
	name := img.FileName
	if name == "" {
		name = "photo.jpg"
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call prediction server: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read prediction response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("prediction server error %d: %s", resp.StatusCode, string(body))
	}

	var pr predictionResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return "", fmt.Errorf("failed to parse prediction JSON: %w", err)
	}
	// absent or empty predicted_class is "no result", not an error
	return pr.PredictedClass, nil
}
