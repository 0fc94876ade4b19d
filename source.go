package main

import (
	"errors"
	"sync"
	"time"

	"loadpanel/internal/link"
	"loadpanel/panel"
)

// linkSource feeds the device from the bytes injected locally and
// from the connected port, if any.
type linkSource struct {
	local *link.Poller
	idle  time.Duration

	mu     sync.Mutex
	remote *link.Poller
}

func newLinkSource(local *link.Poller, idle time.Duration) *linkSource {
	return &linkSource{local: local, idle: idle}
}

// attach replaces the remote poller, returning the previous one.
func (s *linkSource) attach(p *link.Poller) *link.Poller {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.remote
	s.remote = p
	return prev
}

func (s *linkSource) current() *link.Poller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remote
}

// ReadByte implements io.ByteReader. A remote that has been closed
// is detached after its error is returned.
func (s *linkSource) ReadByte() (byte, error) {
	if b, err := s.local.ReadByte(); err == nil {
		return b, nil
	}
	remote := s.current()
	if remote == nil {
		time.Sleep(s.idle)
		return 0, panel.ErrNoData
	}
	b, err := remote.ReadByte()
	if errors.Is(err, link.ErrClosed) {
		s.mu.Lock()
		if s.remote == remote {
			s.remote = nil
		}
		s.mu.Unlock()
	}
	return b, err
}
