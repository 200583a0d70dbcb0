package storage

import (
	"fmt"
	"sync"

	"github.com/wattwise/wattwise/pkg/contracts"
	"github.com/wattwise/wattwise/pkg/models"
)

// MemoryStorage is an in-memory Vault, used in tests and as a throwaway
// backend for local development.
type MemoryStorage struct {
	mu    sync.RWMutex
	users map[int64]models.UserCredential
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{users: make(map[int64]models.UserCredential)}
}

func (m *MemoryStorage) FindByEmail(email string) (models.UserCredential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.UserCredential{}, contracts.ErrNotFound
}

func (m *MemoryStorage) FindByID(id int64) (models.UserCredential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return models.UserCredential{}, contracts.ErrNotFound
	}
	return user, nil
}

func (m *MemoryStorage) UpdateTOTPSecret(id int64, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return contracts.ErrNotFound
	}
	user.TOTPSecret = secret
	m.users[id] = user
	return nil
}

func (m *MemoryStorage) CreateUser(user models.UserCredential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.UserID]; exists {
		return fmt.Errorf("user %d already exists", user.UserID)
	}
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return fmt.Errorf("email %s already registered", user.Email)
		}
	}
	m.users[user.UserID] = user
	return nil
}
