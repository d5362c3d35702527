package service

import (
	"sync"

	"nexuspos/internal/domain"
)

// Settings holds the process-wide application settings: loaded with defaults
// at startup, mutated only by an explicit update, in memory only.
type Settings struct {
	mu sync.RWMutex
	v  domain.AppSettings
}

func NewSettings(initial domain.AppSettings) *Settings {
	return &Settings{v: initial}
}

func (s *Settings) Get() domain.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

func (s *Settings) Update(v domain.AppSettings) {
	s.mu.Lock()
	s.v = v
	s.mu.Unlock()
}

func (s *Service) Settings() domain.AppSettings {
	return s.settings.Get()
}

func (s *Service) UpdateSettings(v domain.AppSettings) {
	s.settings.Update(v)
}
