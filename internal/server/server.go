// Package server exposes the engine over HTTP for multi-profile play.
// Each profile owns an independent session; a per-profile mutex
// serializes its operations, and profiles never share state.
package server

import (
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/lovejzzz/GrooveLounge/internal/game"
	"github.com/lovejzzz/GrooveLounge/internal/persist"
	"github.com/lovejzzz/GrooveLounge/internal/session"
)

// StoreFactory builds the save-blob store for one profile.
type StoreFactory func(profileID string) (persist.Store, error)

// Server routes HTTP requests to per-profile sessions.
type Server struct {
	catalog    *game.Catalog
	stores     StoreFactory
	startCoins int

	mu       sync.Mutex
	profiles map[string]*profile
}

type profile struct {
	mu   sync.Mutex
	sess *session.Session
}

// New creates a server. A nil factory gives every profile a throwaway
// in-memory store.
func New(catalog *game.Catalog, startCoins int, stores StoreFactory) *Server {
	if stores == nil {
		stores = func(string) (persist.Store, error) {
			return persist.NewMemoryStore(), nil
		}
	}
	return &Server{
		catalog:    catalog,
		stores:     stores,
		startCoins: startCoins,
		profiles:   make(map[string]*profile),
	}
}

// CreateProfile starts a fresh profile and returns its id.
func (s *Server) CreateProfile() (string, *session.Session, error) {
	id := uuid.NewString()
	p, err := s.buildProfile(id)
	if err != nil {
		return "", nil, err
	}
	s.mu.Lock()
	s.profiles[id] = p
	s.mu.Unlock()

	log.WithField("profile", id).Info("profile created")
	return id, p.sess, nil
}

// withProfile runs fn with the profile's session under its lock. A
// profile unknown to this process is restored lazily from its store,
// so saved profiles survive a server restart.
func (s *Server) withProfile(id string, fn func(*session.Session) error) error {
	s.mu.Lock()
	p, ok := s.profiles[id]
	if !ok {
		var err error
		p, err = s.buildProfile(id)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		s.profiles[id] = p
	}
	s.mu.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	return fn(p.sess)
}

func (s *Server) buildProfile(id string) (*profile, error) {
	store, err := s.stores(id)
	if err != nil {
		return nil, err
	}
	sess, err := session.New(session.Params{
		Catalog:    s.catalog,
		StartCoins: s.startCoins,
		Store:      store,
	})
	if err != nil {
		return nil, err
	}
	return &profile{sess: sess}, nil
}
