package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/app"
	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
)

const batchSize = 5 // recipes generated between pauses

var recipePrompts = []string{
	"a traditional Italian pasta with a unique twist",
	"a healthy vegan salad with seasonal ingredients",
	"a quick breakfast smoothie with protein",
	"a spicy Indian curry with a modern twist",
	"a classic French dessert",
	"a gluten-free bread with alternative flours",
	"a Mediterranean seafood dish with fresh herbs",
	"a vegetarian stir-fry with Asian flavors",
	"a traditional Mexican dish with authentic spices",
	"a Thai soup with bold flavors",
	"a Korean BBQ with a homemade marinade",
	"a quick and easy dinner for busy weeknights",
	"a recipe using only pantry staples",
	"a kid-friendly and nutritious lunch",
	"a summer barbecue side dish",
	"a winter comfort food classic",
}

var demoUsers = []service.Registration{
	{Name: "John Doe", Email: "john.doe@example.com"},
	{Name: "Jane Smith", Email: "jane.smith@example.com"},
	{Name: "Bob Wilson", Email: "bob.wilson@example.com"},
	{Name: "Alice Cooper", Email: "alice.cooper@example.com"},
}

func main() {
	numRecipes := flag.Int("recipes", 10, "number of recipes to generate")
	pause := flag.Duration("pause", 2*time.Second, "delay between batches to avoid backend rate limits")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, false)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialise services", zap.Error(err))
	}
	defer a.Close()

	users, err := seedUsers(ctx, a.Users)
	if err != nil {
		logger.Fatal("Failed to seed users", zap.Error(err))
	}
	logger.Info("Demo users ready", zap.Int("count", len(users)))

	created := 0
	for i := 0; i < *numRecipes; i++ {
		if i > 0 && i%batchSize == 0 {
			select {
			case <-ctx.Done():
				logger.Warn("Seeding interrupted", zap.Int("created", created))
				return
			case <-time.After(*pause):
			}
		}

		prompt := recipePrompts[i%len(recipePrompts)]
		author := users[i%len(users)]

		res := a.Generator.Generate(ctx, prompt, model.GenerateOptions{})
		if !res.OK() {
			logger.Warn("Failed to generate recipe", zap.String("prompt", prompt), zap.String("error", res.Error))
			continue
		}
		saved, err := a.Recipes.SaveGenerated(ctx, author, res.Recipe)
		if err != nil {
			logger.Warn("Failed to save recipe", zap.String("title", res.Recipe.Title), zap.Error(err))
			continue
		}
		created++
		logger.Info("Created recipe",
			zap.String("title", saved.Title),
			zap.String("author", author.Name),
			zap.String("generated_by", saved.GeneratedBy),
		)
	}

	logger.Info(fmt.Sprintf("Successfully seeded %d recipes", created))
}

// seedUsers registers the demo accounts, reusing any that already exist.
func seedUsers(ctx context.Context, users *service.UserService) ([]model.User, error) {
	out := make([]model.User, 0, len(demoUsers))
	for _, reg := range demoUsers {
		u, _, err := users.Register(ctx, reg)
		if errors.Is(err, service.ErrUserExists) {
			u, _, err = users.Login(ctx, reg.Email)
		}
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", reg.Email, err)
		}
		out = append(out, *u)
	}
	return out, nil
}
