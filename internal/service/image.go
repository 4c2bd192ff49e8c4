package service

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/metrics"
	"github.com/pageza/recipeshare/backend/internal/model"
)

// ImageGenerationRequest is the body of an /images/generations call.
type ImageGenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format"`
}

type ImageGenerationResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL           string `json:"url,omitempty"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
}

// ObjectStore keeps a copy of generated images, since provider URLs expire.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// S3ObjectStore writes objects to the configured bucket.
type S3ObjectStore struct {
	cfg *config.S3Config
}

func NewS3ObjectStore(cfg *config.S3Config) *S3ObjectStore {
	return &S3ObjectStore{cfg: cfg}
}

func (s *S3ObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return s.cfg.ObjectURL(ctx, key)
}

// ImageService generates a picture for a recipe. Generate always returns a
// URL: when the provider cannot be reached it returns a placeholder built from
// the prompt keywords.
type ImageService struct {
	client      *resty.Client
	apiKey      string
	model       string
	size        string
	objects     ObjectStore
	maxAttempts int
	retryDelay  time.Duration
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// NewImageService builds the service. objects may be nil, in which case the
// provider URL is returned as-is.
func NewImageService(ai config.AIConfig, images config.ImagesConfig, objects ObjectStore, logger *zap.Logger, m *metrics.Metrics) *ImageService {
	return &ImageService{
		client:      newRestyClient(ai.OpenAI.BaseURL, ai.Timeout),
		apiKey:      ai.OpenAI.APIKey,
		model:       images.Model,
		size:        images.Size,
		objects:     objects,
		maxAttempts: 3,
		retryDelay:  time.Second,
		logger:      logger,
		metrics:     m,
	}
}

// ImagePrompt describes a recipe for the image model.
func ImagePrompt(r *model.Recipe) string {
	p := strings.ToLower(r.Title)
	if r.Description != "" {
		p += ", " + strings.ToLower(r.Description)
	}
	return p
}

// Generate returns an image URL for prompt.
func (s *ImageService) Generate(ctx context.Context, prompt string) string {
	imageURL, err := s.generateWithRetry(ctx, prompt)
	if err != nil {
		fallback := PlaceholderImageURL(prompt)
		s.logger.Warn("Image generation failed, using placeholder",
			zap.String("placeholder", fallback),
			zap.Error(err),
		)
		s.metrics.ObserveImage("generate", metrics.OutcomeMock)
		return fallback
	}
	s.metrics.ObserveImage("generate", metrics.OutcomeSuccess)
	return imageURL
}

func (s *ImageService) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", ErrMissingCredential
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		imageURL, err := s.generateAttempt(ctx, prompt)
		if err == nil {
			return imageURL, nil
		}
		lastErr = err
		s.logger.Debug("Image generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.maxAttempts),
			zap.Error(err),
		)
		if attempt < s.maxAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * s.retryDelay):
			}
		}
	}
	return "", fmt.Errorf("failed to generate image after %d attempts: %w", s.maxAttempts, lastErr)
}

func (s *ImageService) generateAttempt(ctx context.Context, prompt string) (string, error) {
	var out ImageGenerationResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.apiKey).
		SetBody(ImageGenerationRequest{
			Model:          s.model,
			Prompt:         fmt.Sprintf("A beautiful professional food photography image of %s, no text, high resolution", prompt),
			N:              1,
			Size:           s.size,
			Quality:        "standard",
			ResponseFormat: "url",
		}).
		SetResult(&out).
		ForceContentType("application/json").
		Post("/images/generations")
	if err != nil {
		return "", &TransportError{Backend: "images", Err: err}
	}
	if resp.IsError() {
		return "", &TransportError{Backend: "images", Status: resp.StatusCode()}
	}
	if len(out.Data) == 0 || out.Data[0].URL == "" {
		return "", &TransportError{Backend: "images", Err: errEmptyCompletion}
	}

	imageURL := out.Data[0].URL
	if s.objects == nil {
		return imageURL, nil
	}
	stored, err := s.copyToStore(ctx, imageURL)
	if err != nil {
		s.logger.Warn("Failed to copy generated image, returning provider URL", zap.Error(err))
		return imageURL, nil
	}
	return stored, nil
}

func (s *ImageService) copyToStore(ctx context.Context, imageURL string) (string, error) {
	resp, err := s.client.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("failed to download image, status: %d", resp.StatusCode())
	}

	key := fmt.Sprintf("recipe-images/%s.png", uuid.NewString())
	stored, err := s.objects.Put(ctx, key, resp.Body(), "image/png")
	if err != nil {
		return "", err
	}
	s.logger.Info("Stored generated image", zap.String("url", stored))
	return stored, nil
}

// PlaceholderImageURL builds a stock photo URL from the first three words of
// the prompt.
func PlaceholderImageURL(prompt string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, prompt)

	words := strings.Fields(clean)
	if len(words) > 3 {
		words = words[:3]
	}
	if len(words) == 0 {
		words = []string{"food"}
	}
	for i, w := range words {
		words[i] = url.QueryEscape(w)
	}
	return "https://source.unsplash.com/800x600/?" + strings.Join(words, ",")
}
