package client

import (
	"context"
	"sync"

	"userbase/internal/models"
	"userbase/internal/services"
)

// Op identifies one of the four asynchronous operations.
type Op int

const (
	OpFetch Op = iota
	OpCreate
	OpUpdate
	OpDelete
)

// Phase is the lifecycle stage of an operation.
type Phase int

const (
	PhasePending Phase = iota
	PhaseFulfilled
	PhaseRejected
)

// Action is one observable state transition of an operation.
type Action struct {
	Op    Op
	Phase Phase

	// Fulfilled payloads, per op.
	Users []models.User // fetch: replacement list
	User  *models.User  // create/update: affected record
	ID    string        // delete: removed id

	// Rejected payload.
	Err string
}

// State is the client-side mirror of the server collection.
type State struct {
	List    []models.User
	Loading bool
	Err     string
}

// Reduce is the pure transition function: it returns the state after
// applying the action and never mutates its input.
//
// Pending toggles Loading for fetch only. Fulfilled merges the payload:
// fetch replaces the list, create appends, update replaces by id, delete
// removes by id. Rejected records the error and leaves the list unchanged.
func Reduce(s State, a Action) State {
	switch a.Phase {
	case PhasePending:
		if a.Op == OpFetch {
			s.Loading = true
		}
		return s

	case PhaseFulfilled:
		switch a.Op {
		case OpFetch:
			s.Loading = false
			s.List = a.Users
		case OpCreate:
			list := make([]models.User, len(s.List), len(s.List)+1)
			copy(list, s.List)
			s.List = append(list, *a.User)
		case OpUpdate:
			list := make([]models.User, len(s.List))
			copy(list, s.List)
			for i := range list {
				if list[i].ID == a.User.ID {
					list[i] = *a.User
					break
				}
			}
			s.List = list
		case OpDelete:
			list := make([]models.User, 0, len(s.List))
			for _, u := range s.List {
				if u.ID != a.ID {
					list = append(list, u)
				}
			}
			s.List = list
		}
		return s

	case PhaseRejected:
		if a.Op == OpFetch {
			s.Loading = false
		}
		s.Err = a.Err
		return s
	}
	return s
}

// Store holds the client state and issues the four operations against the
// API, dispatching pending/fulfilled/rejected transitions through Reduce.
//
// The mutex serializes state mutation only. Concurrent operations are not
// de-duplicated or cancelled, so a stale response arriving after a newer
// one can overwrite more recent state.
type Store struct {
	mu    sync.Mutex
	state State
	api   *API
}

// NewStore creates a Store backed by api.
func NewStore(api *API) *Store {
	return &Store{api: api}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
}

// FetchUsers replaces the list with the server's. The error is returned
// for the UI's notification; it is also recorded in the state.
func (s *Store) FetchUsers(ctx context.Context) error {
	s.dispatch(Action{Op: OpFetch, Phase: PhasePending})
	users, err := s.api.FetchUsers(ctx)
	if err != nil {
		s.dispatch(Action{Op: OpFetch, Phase: PhaseRejected, Err: err.Error()})
		return err
	}
	s.dispatch(Action{Op: OpFetch, Phase: PhaseFulfilled, Users: users})
	return nil
}

// CreateUser creates a user and appends the stored record to the list.
func (s *Store) CreateUser(ctx context.Context, user models.User) error {
	s.dispatch(Action{Op: OpCreate, Phase: PhasePending})
	created, err := s.api.CreateUser(ctx, user)
	if err != nil {
		s.dispatch(Action{Op: OpCreate, Phase: PhaseRejected, Err: err.Error()})
		return err
	}
	s.dispatch(Action{Op: OpCreate, Phase: PhaseFulfilled, User: created})
	return nil
}

// UpdateUser applies a partial update and replaces the matching record.
func (s *Store) UpdateUser(ctx context.Context, id string, input services.UpdateUserInput) error {
	s.dispatch(Action{Op: OpUpdate, Phase: PhasePending})
	updated, err := s.api.UpdateUser(ctx, id, input)
	if err != nil {
		s.dispatch(Action{Op: OpUpdate, Phase: PhaseRejected, Err: err.Error()})
		return err
	}
	s.dispatch(Action{Op: OpUpdate, Phase: PhaseFulfilled, User: updated})
	return nil
}

// DeleteUser deletes a user and removes the matching record.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.dispatch(Action{Op: OpDelete, Phase: PhasePending})
	if err := s.api.DeleteUser(ctx, id); err != nil {
		s.dispatch(Action{Op: OpDelete, Phase: PhaseRejected, Err: err.Error()})
		return err
	}
	s.dispatch(Action{Op: OpDelete, Phase: PhaseFulfilled, ID: id})
	return nil
}
