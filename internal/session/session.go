// Package session holds the per-client state the booking operations run
// against: the logged-in identity and the itineraries of the last search.
//
// A Session is not safe for concurrent use; callers serialize the
// operations of one session and map clients to sessions themselves.
package session

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID          string             `json:"id"`
	LoggedIn    bool               `json:"logged_in"`
	Username    string             `json:"username,omitempty"`
	Itineraries []domain.Itinerary `json:"itineraries,omitempty"`
}

func New() *Session {
	return &Session{ID: uuid.NewString()}
}

func (s *Session) Login(username string) {
	s.LoggedIn = true
	s.Username = username
	s.Itineraries = nil
}

// Reset drops the identity and the itinerary cache.
func (s *Session) Reset() {
	s.LoggedIn = false
	s.Username = ""
	s.Itineraries = nil
}

// ReplaceItineraries installs the result of the latest search.
func (s *Session) ReplaceItineraries(its []domain.Itinerary) {
	s.Itineraries = its
}

// Itinerary looks up an itinerary of the most recent search by its index.
func (s *Session) Itinerary(index int) (domain.Itinerary, bool) {
	if index < 0 || index >= len(s.Itineraries) {
		return domain.Itinerary{}, false
	}
	return s.Itineraries[index], true
}

// Store persists sessions between requests of the same client.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
