package datepicker

import (
	"github.com/automation-insights/backend/internal/application/usecase/daterange"
	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
)

// State is the picker's position in its Closed -> Open -> Closed cycle.
type State int

const (
	StateClosed State = iota
	StateOpen
)

// String returns the state name.
func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// Popover is the picker state machine. The zero value is not usable; create
// one with NewPopover.
type Popover struct {
	resolver *daterange.Resolver
	state    State
	staged   entity.StagedDateEdit
}

// NewPopover creates a closed picker.
func NewPopover(resolver *daterange.Resolver) *Popover {
	return &Popover{resolver: resolver}
}

// Resume creates an open picker holding a previously staged edit.
func Resume(resolver *daterange.Resolver, staged entity.StagedDateEdit) *Popover {
	return &Popover{resolver: resolver, state: StateOpen, staged: staged}
}

// State returns the current state.
func (p *Popover) State() State {
	return p.state
}

// IsOpen reports whether edits are being staged.
func (p *Popover) IsOpen() bool {
	return p.state == StateOpen
}

// Staged returns the staged edit and whether the picker is open.
func (p *Popover) Staged() (entity.StagedDateEdit, bool) {
	return p.staged, p.IsOpen()
}

// Open moves Closed -> Open, staging the committed interval.
func (p *Popover) Open(committed entity.DateInterval) error {
	if p.IsOpen() {
		return alreadyOpen()
	}
	p.staged = Open(p.resolver, committed)
	p.state = StateOpen
	return nil
}

// SelectPreset stages a preset.
func (p *Popover) SelectPreset(preset entity.DatePreset) error {
	if !p.IsOpen() {
		return notOpen()
	}
	staged, err := ApplyPreset(p.resolver, p.staged, preset)
	if err != nil {
		return err
	}
	p.staged = staged
	return nil
}

// SelectRange stages a manual calendar pick.
func (p *Popover) SelectRange(picked entity.DateInterval) error {
	if !p.IsOpen() {
		return notOpen()
	}
	p.staged = ApplyRange(p.staged, picked)
	return nil
}

// Close moves Open -> Closed, discarding the staged edit and returning what
// to commit.
func (p *Popover) Close() (Commit, error) {
	if !p.IsOpen() {
		return Commit{}, notOpen()
	}
	commit := Close(p.resolver, p.staged)
	p.staged = entity.StagedDateEdit{}
	p.state = StateClosed
	return commit, nil
}

func notOpen() error {
	return domainerror.NewFilterError(domainerror.ErrCodeDatePickerNotOpen, domainerror.ErrDatePickerNotOpen.Error(), domainerror.ErrDatePickerNotOpen)
}

func alreadyOpen() error {
	return domainerror.NewFilterError(domainerror.ErrCodeDatePickerAlreadyOpen, domainerror.ErrDatePickerAlreadyOpen.Error(), domainerror.ErrDatePickerAlreadyOpen)
}
