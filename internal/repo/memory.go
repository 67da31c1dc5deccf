package repo

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// Memory keeps users and sweeps in process. It backs the server when no
// DATABASE_URL is configured and stands in for Postgres in tests.
type Memory struct {
	mu     sync.Mutex
	users  map[string]memUser
	sweeps []SweepRecord
	now    func() time.Time
}

type memUser struct {
	id    int
	email string
	hash  string
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]memUser), now: time.Now}
}

func (m *Memory) CreateUser(_ context.Context, login, email, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[login]; ok {
		return 0, errors.New("repo: login already exists")
	}
	for _, u := range m.users {
		if u.email == email {
			return 0, errors.New("repo: email already exists")
		}
	}
	id := len(m.users) + 1
	m.users[login] = memUser{id: id, email: email, hash: password}
	return id, nil
}

func (m *Memory) GetBylogin(_ context.Context, login string) (int, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[login]
	if !ok {
		return 0, "", nil
	}
	return u.id, u.hash, nil
}

func (m *Memory) SaveSweep(_ context.Context, rec SweepRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = len(m.sweeps) + 1
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = m.now()
	}
	m.sweeps = append(m.sweeps, rec)
	return rec.ID, nil
}

// ListSweeps returns the newest first, without points.
func (m *Memory) ListSweeps(_ context.Context, userID, limit int) ([]SweepRecord, error) {
	limit = clampLimit(limit)
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []SweepRecord
	for _, rec := range slices.Backward(m.sweeps) {
		if rec.UserID != userID {
			continue
		}
		rec.Points = nil
		out = append(out, rec)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *Memory) GetSweep(_ context.Context, userID, id int) (SweepRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.sweeps {
		if rec.ID == id && rec.UserID == userID {
			return rec, nil
		}
	}
	return SweepRecord{}, ErrNotFound
}
