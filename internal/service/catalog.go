package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/internal/catalog"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/storage"
)

const recipesKey = "recipes"

func likedKey(userID string) string { return userID + "_liked_recipes" }
func savedKey(userID string) string { return userID + "_saved_recipes" }
func draftKey(userID string) string { return "draft:" + userID }

// Notifier delivers social notifications. Delivery failures never fail the
// action that caused them.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) (*model.Notification, error)
}

// CatalogService owns the recipe collection. Every mutation rewrites the
// whole collection; mu serialises writers within this process and the last
// writer wins across processes.
type CatalogService struct {
	store    storage.Store
	notifier Notifier
	logger   *zap.Logger
	draftTTL time.Duration

	mu    sync.Mutex
	now   func() time.Time
	newID func(prefix string) string
}

func NewCatalogService(store storage.Store, notifier Notifier, draftTTL time.Duration, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		store:    store,
		notifier: notifier,
		logger:   logger,
		draftTTL: draftTTL,
		now:      time.Now,
		newID:    func(prefix string) string { return prefix + "-" + uuid.NewString() },
	}
}

func (s *CatalogService) load(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if _, err := storage.GetJSON(ctx, s.store, recipesKey, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *CatalogService) persist(ctx context.Context, recipes []model.Recipe) error {
	return storage.SetJSON(ctx, s.store, recipesKey, recipes, 0)
}

func (s *CatalogService) idSet(ctx context.Context, key string) ([]string, error) {
	var ids []string
	if _, err := storage.GetJSON(ctx, s.store, key, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func indexOf(recipes []model.Recipe, id string) int {
	for i := range recipes {
		if recipes[i].ID == id {
			return i
		}
	}
	return -1
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// markLiked sets the viewer-relative liked flag. An empty viewer sees nothing
// as liked.
func (s *CatalogService) markLiked(ctx context.Context, viewerID string, recipes []model.Recipe) error {
	var liked []string
	if viewerID != "" {
		var err error
		if liked, err = s.idSet(ctx, likedKey(viewerID)); err != nil {
			return err
		}
	}
	for i := range recipes {
		recipes[i].Liked = contains(liked, recipes[i].ID)
	}
	return nil
}

// List returns the recipes matching f as seen by viewerID.
func (s *CatalogService) List(ctx context.Context, viewerID string, f catalog.FilterSpec) ([]model.Recipe, error) {
	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out, err := catalog.Query(recipes, f)
	if err != nil {
		return nil, err
	}
	if err := s.markLiked(ctx, viewerID, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ByAuthor returns the recipes created by userID, newest first.
func (s *CatalogService) ByAuthor(ctx context.Context, viewerID, userID string) ([]model.Recipe, error) {
	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]model.Recipe, 0)
	for _, r := range recipes {
		if r.UserID == userID {
			mine = append(mine, r)
		}
	}
	out, err := catalog.Query(mine, catalog.FilterSpec{Sort: catalog.SortNewest})
	if err != nil {
		return nil, err
	}
	if err := s.markLiked(ctx, viewerID, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CatalogService) Get(ctx context.Context, viewerID, id string) (*model.Recipe, error) {
	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(recipes, id)
	if i < 0 {
		return nil, ErrRecipeNotFound
	}
	r := recipes[i : i+1]
	if err := s.markLiked(ctx, viewerID, r); err != nil {
		return nil, err
	}
	return &r[0], nil
}

// Create validates and stores a manually authored recipe.
func (s *CatalogService) Create(ctx context.Context, author model.User, form RecipeForm) (*model.Recipe, error) {
	form, err := ValidateRecipeForm(form)
	if err != nil {
		return nil, err
	}
	r := model.Recipe{
		Title:        form.Title,
		Description:  form.Description,
		PrepTime:     form.PrepTime,
		CookTime:     form.CookTime,
		Servings:     form.Servings,
		Difficulty:   model.Difficulty(form.Difficulty),
		Ingredients:  form.Ingredients,
		Instructions: form.Instructions,
		Tips:         form.Tips,
		Tags:         form.Tags,
		Nutrition:    form.Nutrition,
		ImageURL:     form.ImageURL,
	}
	return s.insert(ctx, author, r)
}

// SaveGenerated publishes a generated recipe after review. Recipes carrying a
// generation error or missing ingredients or instructions are refused.
func (s *CatalogService) SaveGenerated(ctx context.Context, author model.User, r *model.Recipe) (*model.Recipe, error) {
	if r == nil || !r.Publishable() {
		return nil, ErrNotPublishable
	}
	return s.insert(ctx, author, r.Clone())
}

func (s *CatalogService) insert(ctx context.Context, author model.User, r model.Recipe) (*model.Recipe, error) {
	now := s.now().UTC()
	r.ID = s.newID("recipe")
	r.UserID = author.ID
	r.Author = model.AuthorOf(author)
	r.Difficulty = r.Difficulty.OrDefault()
	if r.Nutrition.IsZero() {
		r.Nutrition = model.DefaultNutrition
	}
	r.Likes = 0
	r.Liked = false
	r.Comments = []model.Comment{}
	r.CreatedAt = now
	r.UpdatedAt = now
	r.Error = ""

	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	recipes = append([]model.Recipe{r}, recipes...)
	if err := s.persist(ctx, recipes); err != nil {
		return nil, err
	}

	s.logger.Info("Recipe saved",
		zap.String("recipe_id", r.ID),
		zap.String("user_id", author.ID),
		zap.String("generated_by", r.GeneratedBy),
	)
	return &r, nil
}

// Update replaces the editable fields of a recipe owned by userID. CreatedAt
// and the social counters are kept.
func (s *CatalogService) Update(ctx context.Context, userID, id string, form RecipeForm) (*model.Recipe, error) {
	form, err := ValidateRecipeForm(form)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(recipes, id)
	if i < 0 {
		return nil, ErrRecipeNotFound
	}
	r := &recipes[i]
	if r.UserID != userID {
		return nil, ErrForbidden
	}

	r.Title = form.Title
	r.Description = form.Description
	r.PrepTime = form.PrepTime
	r.CookTime = form.CookTime
	r.Servings = form.Servings
	r.Difficulty = model.Difficulty(form.Difficulty)
	r.Ingredients = form.Ingredients
	r.Instructions = form.Instructions
	r.Tips = form.Tips
	r.Tags = form.Tags
	if !form.Nutrition.IsZero() {
		r.Nutrition = form.Nutrition
	}
	if form.ImageURL != "" {
		r.ImageURL = form.ImageURL
	}
	r.UpdatedAt = s.now().UTC()

	if err := s.persist(ctx, recipes); err != nil {
		return nil, err
	}
	out := *r
	return &out, nil
}

// ToggleLike flips the user's like on a recipe and adjusts the shared
// counter, which never drops below zero.
func (s *CatalogService) ToggleLike(ctx context.Context, user model.User, id string) (*model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(recipes, id)
	if i < 0 {
		return nil, ErrRecipeNotFound
	}
	liked, err := s.idSet(ctx, likedKey(user.ID))
	if err != nil {
		return nil, err
	}

	previous := slices.Clone(liked)
	r := &recipes[i]
	if contains(liked, id) {
		liked = without(liked, id)
		r.Likes = max(r.Likes-1, 0)
		r.Liked = false
	} else {
		liked = append(liked, id)
		r.Likes++
		r.Liked = true
	}

	if err := storage.SetJSON(ctx, s.store, likedKey(user.ID), liked, 0); err != nil {
		return nil, err
	}
	stored := *r
	stored.Liked = false
	recipes[i] = stored
	if err := s.persist(ctx, recipes); err != nil {
		// The counter was not written, so the liked set must not move either.
		if rerr := storage.SetJSON(ctx, s.store, likedKey(user.ID), previous, 0); rerr != nil {
			s.logger.Error("Failed to restore liked recipes",
				zap.String("user_id", user.ID),
				zap.String("recipe_id", id),
				zap.Error(rerr),
			)
		}
		return nil, err
	}

	out := stored
	out.Liked = contains(liked, id)
	if out.Liked && out.UserID != user.ID {
		s.notify(ctx, model.Notification{
			UserID:     out.UserID,
			Type:       model.NotificationLike,
			Message:    fmt.Sprintf("%s liked your recipe %q", user.Name, out.Title),
			RecipeID:   out.ID,
			FromUserID: user.ID,
		})
	}
	return &out, nil
}

// ToggleSave flips the recipe in the user's saved set and reports the new
// state.
func (s *CatalogService) ToggleSave(ctx context.Context, userID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if indexOf(recipes, id) < 0 {
		return false, ErrRecipeNotFound
	}
	saved, err := s.idSet(ctx, savedKey(userID))
	if err != nil {
		return false, err
	}

	now := !contains(saved, id)
	if now {
		saved = append(saved, id)
	} else {
		saved = without(saved, id)
	}
	if err := storage.SetJSON(ctx, s.store, savedKey(userID), saved, 0); err != nil {
		return false, err
	}
	return now, nil
}

func (s *CatalogService) Liked(ctx context.Context, userID string) ([]model.Recipe, error) {
	return s.fromSet(ctx, userID, likedKey(userID))
}

func (s *CatalogService) Saved(ctx context.Context, userID string) ([]model.Recipe, error) {
	return s.fromSet(ctx, userID, savedKey(userID))
}

// fromSet resolves an id set in the order the ids were added. Ids of recipes
// that no longer exist are skipped.
func (s *CatalogService) fromSet(ctx context.Context, userID, key string) ([]model.Recipe, error) {
	ids, err := s.idSet(ctx, key)
	if err != nil {
		return nil, err
	}
	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Recipe, 0, len(ids))
	for _, id := range ids {
		if i := indexOf(recipes, id); i >= 0 {
			out = append(out, recipes[i])
		}
	}
	if err := s.markLiked(ctx, userID, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddComment appends a comment and notifies the recipe owner.
func (s *CatalogService) AddComment(ctx context.Context, user model.User, recipeID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(recipes, recipeID)
	if i < 0 {
		return nil, ErrRecipeNotFound
	}

	c := model.Comment{
		ID:        s.newID("comment"),
		Content:   content,
		UserID:    user.ID,
		Author:    model.AuthorOf(user),
		RecipeID:  recipeID,
		CreatedAt: s.now().UTC(),
	}
	recipes[i].Comments = append(recipes[i].Comments, c)
	if err := s.persist(ctx, recipes); err != nil {
		return nil, err
	}

	if owner := recipes[i].UserID; owner != user.ID {
		s.notify(ctx, model.Notification{
			UserID:     owner,
			Type:       model.NotificationComment,
			Message:    fmt.Sprintf("%s commented on your recipe %q", user.Name, recipes[i].Title),
			RecipeID:   recipeID,
			FromUserID: user.ID,
		})
	}
	return &c, nil
}

// Comments returns a recipe's comments in posting order.
func (s *CatalogService) Comments(ctx context.Context, recipeID string) ([]model.Comment, error) {
	r, err := s.Get(ctx, "", recipeID)
	if err != nil {
		return nil, err
	}
	if r.Comments == nil {
		return []model.Comment{}, nil
	}
	return r.Comments, nil
}

// Share sends a recipe to another user as a notification.
func (s *CatalogService) Share(ctx context.Context, from, to model.User, recipeID string) (*model.Notification, error) {
	r, err := s.Get(ctx, "", recipeID)
	if err != nil {
		return nil, err
	}
	return s.notifier.Notify(ctx, model.Notification{
		UserID:     to.ID,
		Type:       model.NotificationRecipeShare,
		Message:    fmt.Sprintf("%s shared a recipe with you: %s", from.Name, r.Title),
		RecipeID:   r.ID,
		FromUserID: from.ID,
	})
}

func (s *CatalogService) notify(ctx context.Context, n model.Notification) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("Failed to deliver notification",
			zap.String("type", string(n.Type)),
			zap.String("user_id", n.UserID),
			zap.Error(err),
		)
	}
}

// PutDraft keeps a generated recipe for the user to review before saving.
// A newer draft replaces the previous one.
func (s *CatalogService) PutDraft(ctx context.Context, userID string, r *model.Recipe) error {
	return storage.SetJSON(ctx, s.store, draftKey(userID), r, s.draftTTL)
}

func (s *CatalogService) GetDraft(ctx context.Context, userID string) (*model.Recipe, error) {
	var r model.Recipe
	found, err := storage.GetJSON(ctx, s.store, draftKey(userID), &r)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrDraftNotFound
	}
	return &r, nil
}

func (s *CatalogService) DiscardDraft(ctx context.Context, userID string) error {
	return s.store.Remove(ctx, draftKey(userID))
}

// PublishDraft saves the user's pending draft and discards it.
func (s *CatalogService) PublishDraft(ctx context.Context, author model.User) (*model.Recipe, error) {
	draft, err := s.GetDraft(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	saved, err := s.SaveGenerated(ctx, author, draft)
	if err != nil {
		return nil, err
	}
	if err := s.DiscardDraft(ctx, author.ID); err != nil {
		s.logger.Warn("Failed to discard published draft", zap.String("user_id", author.ID), zap.Error(err))
	}
	return saved, nil
}
