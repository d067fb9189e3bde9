package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionStore)(nil)

// SessionStore sesiones en memoria del proceso (una sola instancia, se pierden al reiniciar).
type SessionStore struct {
	mu   sync.Mutex
	data map[string]entity.Session
	now  func() time.Time
}

// NewSessionStore construye el almacén de sesiones en memoria.
func NewSessionStore() *SessionStore {
	return &SessionStore{data: map[string]entity.Session{}, now: time.Now}
}

func (s *SessionStore) Save(_ context.Context, session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.ID] = *session
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	if sess.Expired(s.now()) {
		delete(s.data, id)
		return nil, nil
	}
	return &sess, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}
