package expiry

import (
	"context"
	"errors"
	"sync"
	"time"

	"smartexpiry/internal/models"
)

// memStore is an in-memory Store for exercising the engine without a
// database. Failure injection flags let tests simulate a partially
// unavailable backend.
type memStore struct {
	mu            sync.Mutex
	items         map[int64]models.Item
	users         map[int64]models.User
	notifications map[string]models.Notification

	failFindItems bool
	failSaveItem  map[int64]bool
	failSaveNotif bool
	failDelete    bool
}

func newMemStore() *memStore {
	return &memStore{
		items:         make(map[int64]models.Item),
		users:         make(map[int64]models.User),
		notifications: make(map[string]models.Notification),
		failSaveItem:  make(map[int64]bool),
	}
}

var errStoreUnavailable = errors.New("store unavailable")

func (m *memStore) addUser(u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

func (m *memStore) addItem(i models.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[i.ID] = i
}

func (m *memStore) addNotification(n models.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications[n.ID] = n
}

func (m *memStore) item(id int64) models.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id]
}

func (m *memStore) notificationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notifications)
}

func (m *memStore) notificationList() []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Notification, 0, len(m.notifications))
	for _, n := range m.notifications {
		out = append(out, n)
	}
	return out
}

func (m *memStore) FindItems(_ context.Context, f ItemFilter) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFindItems {
		return nil, errStoreUnavailable
	}
	var out []models.Item
	for _, item := range m.items {
		if f.AddedBy != 0 && item.AddedBy != f.AddedBy {
			continue
		}
		if f.NotificationSent != nil && item.NotificationSent != *f.NotificationSent {
			continue
		}
		if f.ExpiringOnOrBefore != nil && item.ExpiryDate.After(*f.ExpiringOnOrBefore) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (m *memStore) SaveItem(_ context.Context, item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSaveItem[item.ID] {
		return errStoreUnavailable
	}
	m.items[item.ID] = *item
	return nil
}

func (m *memStore) FindUsers(_ context.Context, f UserFilter) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, user := range m.users {
		if f.ID != 0 && user.ID != f.ID {
			continue
		}
		if f.NotificationsEnabled != nil && user.NotificationSettings.Enabled != *f.NotificationsEnabled {
			continue
		}
		out = append(out, user)
	}
	return out, nil
}

func (m *memStore) SaveNotification(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSaveNotif {
		return errStoreUnavailable
	}
	m.notifications[n.ID] = *n
	return nil
}

func (m *memStore) UpdateNotifications(_ context.Context, f NotificationFilter, p NotificationPatch) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for id, n := range m.notifications {
		if !matchNotification(n, f) {
			continue
		}
		if p.Read != nil {
			n.Read = *p.Read
		}
		m.notifications[id] = n
		count++
	}
	return count, nil
}

func (m *memStore) DeleteNotifications(_ context.Context, f NotificationFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete {
		return 0, errStoreUnavailable
	}
	var count int64
	for id, n := range m.notifications {
		if !matchNotification(n, f) {
			continue
		}
		delete(m.notifications, id)
		count++
	}
	return count, nil
}

func matchNotification(n models.Notification, f NotificationFilter) bool {
	if f.UserID != 0 && n.UserID != f.UserID {
		return false
	}
	if f.ItemID != 0 && n.ItemID != f.ItemID {
		return false
	}
	if f.Read != nil && n.Read != *f.Read {
		return false
	}
	if f.CreatedBefore != nil && !n.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}
	return true
}

// fakeClock returns a fixed instant.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }
