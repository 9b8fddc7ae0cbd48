package session

import (
	"context"
	"log/slog"
	"sync"

	"rentwheels/internal/domain/draft"
	"rentwheels/internal/domain/pricing"
	"rentwheels/internal/pkg/clock"
	"rentwheels/internal/pkg/errs"

	"github.com/google/uuid"
)

// Store is the full draft persistence contract the manager needs on top of
// the machine's Save.
type Store interface {
	DraftStore
	Find(ctx context.Context, userID, draftID uuid.UUID) (*draft.Draft, error)
	Delete(ctx context.Context, userID, draftID uuid.UUID) error
}

// Manager keeps the live machines, one per session id. It replaces the
// ambient per-user global of the original flow: two browser tabs get two
// machines over two drafts and cannot corrupt each other.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Machine
	owners   map[uuid.UUID]uuid.UUID

	store    Store
	pricer   *pricing.Engine
	clock    clock.Clock
	autosave AutosaveConfig
	logger   *slog.Logger
}

func NewManager(store Store, pricer *pricing.Engine, clk clock.Clock, autosave AutosaveConfig, logger *slog.Logger) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Machine),
		owners:   make(map[uuid.UUID]uuid.UUID),
		store:    store,
		pricer:   pricer,
		clock:    clk,
		autosave: autosave,
		logger:   logger,
	}
}

// Start opens a fresh session with an empty draft owned by userID.
func (m *Manager) Start(userID uuid.UUID) (uuid.UUID, *Machine) {
	d := draft.New(userID, m.clock.Now())
	machine := NewMachine(d, m.pricer, m.clock, m.store, m.autosave, m.logger)

	sessionID := uuid.New()
	m.mu.Lock()
	m.sessions[sessionID] = machine
	m.owners[sessionID] = userID
	m.mu.Unlock()

	return sessionID, machine
}

// Resume rebuilds a session from a persisted draft, e.g. after a page
// reload or a crash.
func (m *Manager) Resume(ctx context.Context, userID, draftID uuid.UUID) (uuid.UUID, *Machine, error) {
	d, err := m.store.Find(ctx, userID, draftID)
	if err != nil {
		return uuid.Nil, nil, err
	}

	machine := NewMachine(d, m.pricer, m.clock, m.store, m.autosave, m.logger)

	sessionID := uuid.New()
	m.mu.Lock()
	m.sessions[sessionID] = machine
	m.owners[sessionID] = userID
	m.mu.Unlock()

	return sessionID, machine, nil
}

// Get returns a live machine, enforcing that the caller owns it.
func (m *Manager) Get(sessionID, userID uuid.UUID) (*Machine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	machine, ok := m.sessions[sessionID]
	if !ok {
		return nil, errs.ErrNoActiveDraft
	}
	if m.owners[sessionID] != userID {
		return nil, errs.ErrDraftNotOwned
	}
	return machine, nil
}

// Discard abandons a session and deletes its draft.
func (m *Manager) Discard(ctx context.Context, sessionID, userID uuid.UUID) error {
	machine, err := m.Get(sessionID, userID)
	if err != nil {
		return err
	}

	machine.Close()
	draftID := machine.DraftID()
	m.remove(sessionID)

	return m.store.Delete(ctx, userID, draftID)
}

// Release drops a finished session from the registry. The draft's fate
// (completed or retained) has already been decided by the caller.
func (m *Manager) Release(sessionID uuid.UUID) {
	m.mu.Lock()
	machine, ok := m.sessions[sessionID]
	m.mu.Unlock()

	if ok {
		machine.Close()
	}
	m.remove(sessionID)
}

func (m *Manager) remove(sessionID uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	delete(m.owners, sessionID)
	m.mu.Unlock()
}
