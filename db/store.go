// ABOUTME: In-memory state store shared by every view in the process
// ABOUTME: Funnels mutations through AddCompany/AddCommunication and notifies subscribers
package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/harperreed/touchbase/models"
	"github.com/rs/zerolog/log"
)

// EventKind identifies which mutation produced an Event.
type EventKind string

const (
	EventCompanyAdded       EventKind = "company_added"
	EventCommunicationAdded EventKind = "communication_added"
)

// Event is delivered to subscribers after a successful mutation.
type Event struct {
	Kind EventKind
	ID   string

	// Completed is only meaningful for EventCommunicationAdded.
	Completed bool
}

// Listener receives store events. It runs synchronously on the mutating
// goroutine, after the store lock has been released.
type Listener func(Event)

// Snapshot is a consistent view of all three collections.
type Snapshot struct {
	Companies      []models.Company
	Communications []models.Communication
	Methods        []models.CommunicationMethod
}

// MethodName returns the display name for a method ID, or "" when unknown.
func (s *Snapshot) MethodName(id string) string {
	for _, m := range s.Methods {
		if m.ID == id {
			return m.Name
		}
	}
	return ""
}

// Company returns the company with the given ID, or nil.
func (s *Snapshot) Company(id uuid.UUID) *models.Company {
	for i := range s.Companies {
		if s.Companies[i].ID == id {
			return &s.Companies[i]
		}
	}
	return nil
}

// Store holds companies, communications and communication methods for the
// lifetime of the process. Entities are never updated or deleted.
type Store struct {
	db *sql.DB
	mu sync.RWMutex

	subMu     sync.Mutex
	listeners []subscription
	nextSubID int
}

type subscription struct {
	id int
	fn Listener
}

// NewStore opens an empty store seeded with the default communication methods.
func NewStore(ctx context.Context) (*Store, error) {
	database, err := OpenDatabase()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := SeedCommunicationMethods(ctx, database); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to seed communication methods: %w", err)
	}

	return &Store{db: database}, nil
}

// Close releases the backing database. All data is discarded.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddCompany appends a fully-formed company. No validation or duplicate
// detection happens here; the form handlers are responsible for that.
func (s *Store) AddCompany(ctx context.Context, company *models.Company) error {
	s.mu.Lock()
	err := CreateCompany(ctx, s.db, company)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to add company: %w", err)
	}

	log.Debug().Str("company_id", company.ID.String()).Str("name", company.Name).Msg("company added")
	s.publish(Event{Kind: EventCompanyAdded, ID: company.ID.String()})
	return nil
}

// AddCommunication appends a fully-formed communication. Company and method
// references are not checked.
func (s *Store) AddCommunication(ctx context.Context, comm *models.Communication) error {
	s.mu.Lock()
	err := CreateCommunication(ctx, s.db, comm)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to add communication: %w", err)
	}

	log.Debug().
		Str("communication_id", comm.ID).
		Str("company_id", comm.CompanyID.String()).
		Str("method_id", comm.MethodID).
		Bool("completed", comm.Completed).
		Msg("communication added")
	s.publish(Event{Kind: EventCommunicationAdded, ID: comm.ID, Completed: comm.Completed})
	return nil
}

func (s *Store) Companies(ctx context.Context) ([]models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ListCompanies(ctx, s.db)
}

// Company returns nil, nil when the ID is unknown.
func (s *Store) Company(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return GetCompany(ctx, s.db, id)
}

func (s *Store) Communications(ctx context.Context) ([]models.Communication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ListCommunications(ctx, s.db)
}

func (s *Store) CommunicationMethods(ctx context.Context) ([]models.CommunicationMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ListCommunicationMethods(ctx, s.db)
}

// CommunicationMethod returns nil, nil when the ID is unknown.
func (s *Store) CommunicationMethod(ctx context.Context, id string) (*models.CommunicationMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return GetCommunicationMethod(ctx, s.db, id)
}

// Snapshot reads all collections under a single lock.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	companies, err := ListCompanies(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	comms, err := ListCommunications(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list communications: %w", err)
	}
	methods, err := ListCommunicationMethods(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list communication methods: %w", err)
	}

	return &Snapshot{
		Companies:      companies,
		Communications: comms,
		Methods:        methods,
	}, nil
}

// Subscribe registers fn for every future mutation. The returned function
// removes the subscription and is safe to call more than once.
func (s *Store) Subscribe(fn Listener) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) publish(evt Event) {
	s.subMu.Lock()
	listeners := make([]Listener, len(s.listeners))
	for i, sub := range s.listeners {
		listeners[i] = sub.fn
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		fn(evt)
	}
}
