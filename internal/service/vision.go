package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/metrics"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/parser"
	"github.com/pageza/recipeshare/backend/internal/textnorm"
)

const visionInstruction = "Analyze this food image and identify the dish. Return a JSON with title, description, ingredients list, and basic instructions to make it."

// ImageInput is an uploaded photo. Data is base64, a data URI or an http(s)
// URL; Identifier is the file name or any other label used to pick a mock.
type ImageInput struct {
	Data       string `json:"image" binding:"required"`
	Identifier string `json:"identifier"`
}

func (in ImageInput) imageURL() string {
	d := strings.TrimSpace(in.Data)
	if strings.HasPrefix(d, "data:") || strings.HasPrefix(d, "http://") || strings.HasPrefix(d, "https://") {
		return d
	}
	return "data:image/jpeg;base64," + d
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL string `json:"url"`
}

type visionReply struct {
	Title        parser.FlexString `json:"title"`
	Description  parser.FlexString `json:"description"`
	Ingredients  parser.FlexList   `json:"ingredients"`
	Instructions parser.FlexList   `json:"instructions"`
	Cuisine      parser.FlexString `json:"cuisine"`
}

// ImageAnalyzer recovers a recipe outline from a food photo. Analyze never
// fails: any problem with the vision call yields a mock analysis.
type ImageAnalyzer struct {
	client  *resty.Client
	apiKey  string
	model   string
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewImageAnalyzer(cfg config.AIConfig, logger *zap.Logger, m *metrics.Metrics) *ImageAnalyzer {
	return &ImageAnalyzer{
		client:  newRestyClient(cfg.OpenAI.BaseURL, cfg.Timeout),
		apiKey:  cfg.OpenAI.APIKey,
		model:   cfg.VisionModel,
		logger:  logger,
		metrics: m,
	}
}

func (a *ImageAnalyzer) Analyze(ctx context.Context, in ImageInput) model.RecipeAnalysis {
	start := time.Now()
	analysis, err := a.call(ctx, in)
	if err != nil {
		a.logger.Warn("Image analysis failed, using mock analysis",
			zap.String("identifier", in.Identifier),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		a.metrics.ObserveImage("analyze", metrics.OutcomeMock)
		return MockAnalysis(in.Identifier)
	}
	a.metrics.ObserveImage("analyze", metrics.OutcomeSuccess)
	return analysis
}

func (a *ImageAnalyzer) call(ctx context.Context, in ImageInput) (model.RecipeAnalysis, error) {
	if a.apiKey == "" {
		return model.RecipeAnalysis{}, ErrMissingCredential
	}

	var out chatResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(a.apiKey).
		SetBody(chatRequest{
			Model: a.model,
			Messages: []chatMessage{{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: visionInstruction},
					{Type: "image_url", ImageURL: &imageRef{URL: in.imageURL()}},
				},
			}},
			MaxTokens: 800,
		}).
		SetResult(&out).
		ForceContentType("application/json").
		Post("/chat/completions")
	if err != nil {
		return model.RecipeAnalysis{}, &TransportError{Backend: "vision", Err: err}
	}
	if resp.IsError() {
		return model.RecipeAnalysis{}, &TransportError{Backend: "vision", Status: resp.StatusCode()}
	}
	if len(out.Choices) == 0 {
		return model.RecipeAnalysis{}, &TransportError{Backend: "vision", Err: errEmptyCompletion}
	}

	data, err := parser.ExtractJSON(out.Choices[0].Message.Content)
	if err != nil {
		return model.RecipeAnalysis{}, err
	}
	var reply visionReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return model.RecipeAnalysis{}, &parser.ParseError{Stage: "decode", Reason: "unexpected field types", Err: err}
	}

	analysis := model.RecipeAnalysis{
		Title:        textnorm.Normalize(reply.Title.Value),
		Description:  textnorm.Normalize(reply.Description.Value),
		Ingredients:  textnorm.Lines(reply.Ingredients, textnorm.Ingredient),
		Instructions: textnorm.Lines(reply.Instructions, textnorm.Instruction),
		Cuisine:      textnorm.Normalize(reply.Cuisine.Value),
		Source:       "vision",
	}
	if analysis.Title == "" {
		analysis.Title = "Unknown Recipe"
	}
	if analysis.Cuisine == "" {
		analysis.Cuisine = "General"
	}
	return analysis, nil
}

// MockAnalysis picks a canned analysis from hints in the identifier.
func MockAnalysis(identifier string) model.RecipeAnalysis {
	id := strings.ToLower(identifier)
	switch {
	case strings.Contains(id, "pasta"):
		return model.RecipeAnalysis{
			Title:       "Spaghetti Bolognese",
			Description: "A classic Italian pasta dish with a rich meat sauce.",
			Ingredients: []string{
				"400g spaghetti",
				"500g ground beef",
				"1 onion, diced",
				"2 cloves garlic, minced",
				"1 can crushed tomatoes",
				"Parmesan cheese",
			},
			Instructions: []string{
				"Cook the spaghetti according to the package.",
				"Brown the beef with the onion and garlic.",
				"Add the tomatoes and simmer for 20 minutes.",
				"Serve the sauce over the pasta with parmesan.",
			},
			Cuisine: "Italian",
			Source:  "mock",
		}
	case strings.Contains(id, "salad"):
		return model.RecipeAnalysis{
			Title:       "Fresh Garden Salad",
			Description: "Crisp greens and vegetables with a light vinaigrette.",
			Ingredients: []string{
				"Mixed salad greens",
				"1 cucumber, sliced",
				"Cherry tomatoes",
				"1/2 red onion, thinly sliced",
				"Olive oil and lemon juice",
			},
			Instructions: []string{
				"Wash and dry the greens.",
				"Slice the vegetables.",
				"Whisk the oil and lemon juice with salt and pepper.",
				"Toss everything together just before serving.",
			},
			Cuisine: "Mediterranean",
			Source:  "mock",
		}
	default:
		return model.RecipeAnalysis{
			Title:       "Chocolate Chip Cookies",
			Description: "Chewy cookies with golden edges and plenty of chocolate.",
			Ingredients: []string{
				"225g butter, softened",
				"200g brown sugar",
				"2 eggs",
				"280g flour",
				"1 teaspoon baking soda",
				"300g chocolate chips",
			},
			Instructions: []string{
				"Cream the butter and sugar.",
				"Beat in the eggs.",
				"Mix in the flour and baking soda, then the chocolate chips.",
				"Bake spoonfuls at 180C for 10 to 12 minutes.",
			},
			Cuisine: "American",
			Source:  "mock",
		}
	}
}
