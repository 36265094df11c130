package filters

import (
	"context"

	"github.com/automation-insights/backend/internal/application/usecase/daterange"
	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
)

// ChangeHook is invoked with the full snapshot after every transition that
// changed it.
type ChangeHook func(ctx context.Context, snapshot entity.FilterSnapshot)

// Store is the reducer owning one dashboard's filter state. It is not safe
// for concurrent use; callers serialize access per owner.
type Store struct {
	resolver *daterange.Resolver
	onChange ChangeHook
	state    entity.FilterSnapshot
	stored   string
	dirty    bool
}

// NewStore creates a store holding the fresh default snapshot.
func NewStore(resolver *daterange.Resolver, onChange ChangeHook) *Store {
	if onChange == nil {
		onChange = func(context.Context, entity.FilterSnapshot) {}
	}
	return &Store{
		resolver: resolver,
		onChange: onChange,
		state:    freshSnapshot(resolver),
		dirty:    true,
	}
}

// Load replaces the state with the reconciliation of a stored value. The
// store becomes dirty when the effective snapshot differs from what is
// stored. A corrupt value still leaves the store on defaults and its error
// is returned for logging.
func (s *Store) Load(raw string, found bool) error {
	state, err := Reconcile(raw, found, s.resolver)
	s.state = state
	s.stored = ""
	if found && err == nil {
		s.stored = raw
	}
	s.dirty = s.encoded() != s.stored
	return err
}

// Dispatch applies one event. The change hook runs when the snapshot
// changed or when a reconciled load has not been persisted yet.
func (s *Store) Dispatch(ctx context.Context, ev Event) (entity.FilterSnapshot, error) {
	if ev == nil {
		return s.state, domainerror.NewFilterError(domainerror.ErrCodeUnknownEvent, domainerror.ErrUnknownEvent.Error(), domainerror.ErrUnknownEvent)
	}

	next, err := ev.apply(s.state, s.resolver)
	if err != nil {
		return s.state, err
	}

	if next != s.state {
		s.state = next
		s.dirty = true
	}
	s.Flush(ctx)
	return s.state, nil
}

// Flush runs the change hook if the state has not been persisted.
func (s *Store) Flush(ctx context.Context) {
	if !s.dirty {
		return
	}
	s.dirty = false
	s.stored = s.encoded()
	s.onChange(ctx, s.state)
}

// State returns the current snapshot.
func (s *Store) State() entity.FilterSnapshot {
	return s.state
}

// Interval returns the committed date range.
func (s *Store) Interval() entity.DateInterval {
	return DateBounds(s.state, s.resolver.Location())
}

// RequestParams projects the current snapshot to upstream request parameters.
func (s *Store) RequestParams() entity.RequestParams {
	return BuildRequestParams(s.state, s.resolver)
}

func (s *Store) encoded() string {
	encoded, _ := EncodeSnapshot(s.state)
	return encoded
}
