package user

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store.
type Memory struct {
	mu        sync.RWMutex
	users     map[string]User
	byEmail   map[string]string
	customers map[string]Customer
	links     []Link
}

func NewMemory() *Memory {
	return &Memory{
		users:     make(map[string]User),
		byEmail:   make(map[string]string),
		customers: make(map[string]Customer),
	}
}

func (m *Memory) UserByEmail(_ context.Context, email string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[NormalizeEmail(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return m.users[id], nil
}

func (m *Memory) UserByID(_ context.Context, id string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) CreateUser(_ context.Context, email string) (User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return User{}, ErrInvalid
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[email]; ok {
		return User{}, ErrEmailTaken
	}
	u := User{ID: uuid.NewString(), Email: email, CreatedAt: time.Now()}
	m.users[u.ID] = u
	m.byEmail[email] = u.ID
	return u, nil
}

// DeleteUser removes a user and its customer, leaving links behind.
func (m *Memory) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	delete(m.byEmail, u.Email)
	delete(m.customers, id)
	return nil
}

func (m *Memory) CustomerByUserID(_ context.Context, userID string) (Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.customers[userID]
	if !ok {
		return Customer{}, ErrNotFound
	}
	return c, nil
}

func (m *Memory) CreateCustomer(_ context.Context, c Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[c.UserID]; !ok {
		return ErrNotFound
	}
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	m.customers[c.UserID] = c
	return nil
}

func (m *Memory) UpdateCustomer(_ context.Context, c Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, ok := m.customers[c.UserID]
	if !ok {
		return ErrNotFound
	}
	c.CreatedAt = prev.CreatedAt
	c.UpdatedAt = time.Now()
	m.customers[c.UserID] = c
	return nil
}

func (m *Memory) FindLinked(_ context.Context, key, providerID string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, l := range slices.Backward(m.links) {
		if l.Key != key || l.ProviderID != providerID {
			continue
		}
		if u, ok := m.users[l.UserID]; ok {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (m *Memory) ReplaceLink(_ context.Context, key, providerID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.links = slices.DeleteFunc(m.links, func(l Link) bool {
		return l.Key == key && l.ProviderID == providerID
	})
	m.links = append(m.links, Link{Key: key, ProviderID: providerID, UserID: userID})
	return nil
}

func (m *Memory) DeleteOrphanLinks(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := len(m.links)
	m.links = slices.DeleteFunc(m.links, func(l Link) bool {
		_, ok := m.users[l.UserID]
		return !ok
	})
	return int64(before - len(m.links)), nil
}

// Links returns a copy of the links for userID.
func (m *Memory) Links(userID string) []Link {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Link
	for _, l := range m.links {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out
}

var _ Store = (*Memory)(nil)
