package interaction

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/sirupsen/logrus"

	"immoxperts/server/internal/models"
)

// Sessions tracks the interaction machine of every live map session.
// Each client session owns one machine; the HTTP layer routes pointer,
// touch and navigation events to it by session id.
type Sessions struct {
	logger *logrus.Logger

	mu       sync.RWMutex
	machines map[string]*Machine
}

// NewSessions creates an empty session registry.
func NewSessions(logger *logrus.Logger) *Sessions {
	if logger == nil {
		logger = logrus.New()
	}
	return &Sessions{
		logger:   logger,
		machines: make(map[string]*Machine),
	}
}

// Create registers a machine for a new session of the given device
// class and returns its id.
func (s *Sessions) Create(device models.DeviceClass) (string, *Machine) {
	id := newSessionID()
	machine := NewMachine(device, nil, s.logger)

	s.mu.Lock()
	s.machines[id] = machine
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"session": id,
		"device":  device.String(),
	}).Info("Interaction session opened")
	return id, machine
}

// Get returns the machine of a session.
func (s *Sessions) Get(id string) (*Machine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	machine, ok := s.machines[id]
	return machine, ok
}

// Close ends a session and releases its machine. It reports whether
// the session existed.
func (s *Sessions) Close(id string) bool {
	s.mu.Lock()
	machine, ok := s.machines[id]
	delete(s.machines, id)
	s.mu.Unlock()

	if ok {
		machine.Close()
		s.logger.WithField("session", id).Info("Interaction session closed")
	}
	return ok
}

// CloseAll ends every live session, used at shutdown.
func (s *Sessions) CloseAll() {
	s.mu.Lock()
	machines := s.machines
	s.machines = make(map[string]*Machine)
	s.mu.Unlock()

	for _, machine := range machines {
		machine.Close()
	}
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.machines)
}

func newSessionID() string {
	buf := make([]byte, 16)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
