package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/storage"
)

const notificationsKey = "notifications"

// NotificationService keeps every notification in one flat list and filters
// it by recipient on read.
type NotificationService struct {
	store  storage.Store
	logger *zap.Logger

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

func NewNotificationService(store storage.Store, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return "notification-" + uuid.NewString() },
	}
}

func (s *NotificationService) load(ctx context.Context) ([]model.Notification, error) {
	var all []model.Notification
	if _, err := storage.GetJSON(ctx, s.store, notificationsKey, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// Notify stores n as unread with a fresh id and timestamp.
func (s *NotificationService) Notify(ctx context.Context, n model.Notification) (*model.Notification, error) {
	n.ID = s.newID()
	n.Read = false
	n.CreatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	all = append(all, n)
	if err := storage.SetJSON(ctx, s.store, notificationsKey, all, 0); err != nil {
		return nil, err
	}

	s.logger.Debug("Notification stored",
		zap.String("type", string(n.Type)),
		zap.String("user_id", n.UserID),
	)
	return &n, nil
}

// ForUser returns the user's notifications, newest first.
func (s *NotificationService) ForUser(ctx context.Context, userID string) ([]model.Notification, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]model.Notification, 0)
	for _, n := range all {
		if n.UserID == userID {
			mine = append(mine, n)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	return mine, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	mine, err := s.ForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range mine {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkAsRead marks one of the user's notifications as read. Notifications
// addressed to someone else are reported as not found.
func (s *NotificationService) MarkAsRead(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == id && all[i].UserID == userID {
			if all[i].Read {
				return nil
			}
			all[i].Read = true
			return storage.SetJSON(ctx, s.store, notificationsKey, all, 0)
		}
	}
	return ErrNotificationNotFound
}

// MarkAllAsRead returns how many notifications changed.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	changed := 0
	for i := range all {
		if all[i].UserID == userID && !all[i].Read {
			all[i].Read = true
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := storage.SetJSON(ctx, s.store, notificationsKey, all, 0); err != nil {
		return 0, err
	}
	return changed, nil
}
