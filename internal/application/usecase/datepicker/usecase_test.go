package datepicker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/application/usecase/filters"
	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
	"github.com/automation-insights/backend/internal/integration/persistence"
)

// countingPrefs counts writes to the wrapped store.
type countingPrefs struct {
	adapter.PreferenceStore
	writes int
}

func (c *countingPrefs) Set(ctx context.Context, ownerID uuid.UUID, key, value string) error {
	c.writes++
	return c.PreferenceStore.Set(ctx, ownerID, key, value)
}

type pickerFixture struct {
	prefs    *countingPrefs
	staged   adapter.StagedEditStore
	sessions *filters.Sessions
	open     *OpenPickerUseCase
	preset   *SelectPresetUseCase
	pick     *SelectRangeUseCase
	close    *ClosePickerUseCase
	get      *GetPickerUseCase
}

func newPickerFixture() *pickerFixture {
	prefs := &countingPrefs{PreferenceStore: persistence.NewMemoryPreferenceStore()}
	staged := persistence.NewMemoryStagedEditStore(30*time.Minute, func() time.Time { return testNow })
	return newPickerFixtureOn(prefs, staged)
}

// newPickerFixtureOn builds one service instance over the given stores.
// Fixtures sharing stores behave like separate instances of the API.
func newPickerFixtureOn(prefs *countingPrefs, staged adapter.StagedEditStore) *pickerFixture {
	sessions := filters.NewSessions(prefs, testResolver())

	return &pickerFixture{
		prefs:    prefs,
		staged:   staged,
		sessions: sessions,
		open:     NewOpenPickerUseCase(staged, sessions),
		preset:   NewSelectPresetUseCase(staged, sessions),
		pick:     NewSelectRangeUseCase(staged, sessions),
		close:    NewClosePickerUseCase(staged, sessions),
		get:      NewGetPickerUseCase(staged, sessions),
	}
}

// gatedStagedStore pauses the first Update until release is closed.
type gatedStagedStore struct {
	adapter.StagedEditStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedStagedStore(inner adapter.StagedEditStore) *gatedStagedStore {
	return &gatedStagedStore{
		StagedEditStore: inner,
		entered:         make(chan struct{}),
		release:         make(chan struct{}),
	}
}

func (g *gatedStagedStore) Update(ctx context.Context, ownerID uuid.UUID, edit *entity.StagedDateEdit) (bool, error) {
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return g.StagedEditStore.Update(ctx, ownerID, edit)
}

func TestPickerUseCases_StagedEditsCommitOnce(t *testing.T) {
	f := newPickerFixture()
	ctx := context.Background()
	userID := uuid.New()

	if _, err := filters.NewGetFiltersUseCase(f.sessions).Execute(ctx, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	baseline := f.prefs.writes

	opened, err := f.open.Execute(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opened.State != StateOpen || opened.Staged.TempPreset != entity.DatePresetThisMonth {
		t.Fatalf("expected open picker on thisMonth, got %+v", opened)
	}

	if _, err := f.preset.Execute(ctx, SelectPresetInput{UserID: userID, Preset: entity.DatePresetThisWeek}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	picked, err := f.pick.Execute(ctx, SelectRangeInput{UserID: userID, From: "2025-01-02", To: "2025-01-08"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if picked.Staged.TempPreset != entity.DatePresetPersonalized {
		t.Errorf("expected personalized after manual pick, got %s", picked.Staged.TempPreset)
	}
	if f.prefs.writes != baseline {
		t.Errorf("expected staged edits not to touch filters, got %d writes", f.prefs.writes-baseline)
	}

	closed, err := f.close.Execute(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.prefs.writes != baseline+1 {
		t.Errorf("expected exactly one filter write on close, got %d", f.prefs.writes-baseline)
	}
	snapshot := closed.Filters.Snapshot
	if snapshot.StartDate != "2025-01-02" || snapshot.EndDate != "2025-01-08" || snapshot.DatePreset != entity.DatePresetPersonalized {
		t.Errorf("expected committed personalized 2025-01-02..2025-01-08, got %+v", snapshot)
	}

	state, err := f.get.Execute(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.State != StateClosed || state.Staged != nil {
		t.Errorf("expected closed picker after commit, got %+v", state)
	}
}

func TestPickerUseCases_IncompletePickFallsBack(t *testing.T) {
	f := newPickerFixture()
	ctx := context.Background()
	userID := uuid.New()

	if _, err := f.open.Execute(ctx, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.pick.Execute(ctx, SelectRangeInput{UserID: userID, From: "2025-01-05"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	closed, err := f.close.Execute(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !closed.Commit.Fallback || closed.Commit.Preset != entity.DatePresetThisMonth {
		t.Errorf("expected thisMonth fallback, got %+v", closed.Commit)
	}
	if closed.Filters.Snapshot.StartDate != "2024-12-15" {
		t.Errorf("expected 2024-12-15, got %s", closed.Filters.Snapshot.StartDate)
	}
}

func TestPickerUseCases_StateErrors(t *testing.T) {
	f := newPickerFixture()
	ctx := context.Background()
	userID := uuid.New()

	if _, err := f.close.Execute(ctx, userID); !errors.Is(err, domainerror.ErrDatePickerNotOpen) {
		t.Errorf("expected ErrDatePickerNotOpen, got %v", err)
	}
	if _, err := f.preset.Execute(ctx, SelectPresetInput{UserID: userID, Preset: entity.DatePresetToday}); !errors.Is(err, domainerror.ErrDatePickerNotOpen) {
		t.Errorf("expected ErrDatePickerNotOpen, got %v", err)
	}

	if _, err := f.open.Execute(ctx, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.open.Execute(ctx, userID); !errors.Is(err, domainerror.ErrDatePickerAlreadyOpen) {
		t.Errorf("expected ErrDatePickerAlreadyOpen, got %v", err)
	}

	_, err := f.pick.Execute(ctx, SelectRangeInput{UserID: userID, To: "2025-01-05"})
	var filterErr *domainerror.FilterError
	if !errors.As(err, &filterErr) || filterErr.Code != domainerror.ErrCodeInvalidFilterDate {
		t.Errorf("expected invalid date for a pick without start, got %v", err)
	}

	_, err = f.pick.Execute(ctx, SelectRangeInput{UserID: userID, From: "January 5"})
	if !errors.As(err, &filterErr) || filterErr.Code != domainerror.ErrCodeInvalidFilterDate {
		t.Errorf("expected invalid date, got %v", err)
	}
}

func TestPickerUseCases_OpenReflectsCommittedFilters(t *testing.T) {
	f := newPickerFixture()
	ctx := context.Background()
	userID := uuid.New()

	dispatch := filters.NewDispatchEventUseCase(f.sessions)
	if _, err := dispatch.Execute(ctx, filters.DispatchEventInput{UserID: userID, Event: filters.SetDatePreset{Preset: entity.DatePresetToday}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opened, err := f.open.Execute(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opened.Staged.TempPreset != entity.DatePresetToday {
		t.Errorf("expected today, got %s", opened.Staged.TempPreset)
	}
	if span(opened.Staged.TempDate) != "2025-01-15..2025-01-15" {
		t.Errorf("expected today's range, got %s", span(opened.Staged.TempDate))
	}
}

func TestPickerUseCases_CloseWaitsForPendingSelect(t *testing.T) {
	prefs := &countingPrefs{PreferenceStore: persistence.NewMemoryPreferenceStore()}
	gated := newGatedStagedStore(persistence.NewMemoryStagedEditStore(30*time.Minute, func() time.Time { return testNow }))
	f := newPickerFixtureOn(prefs, gated)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := f.open.Execute(ctx, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pickErr := make(chan error, 1)
	go func() {
		_, err := f.pick.Execute(ctx, SelectRangeInput{UserID: userID, From: "2025-01-02", To: "2025-01-05"})
		pickErr <- err
	}()
	<-gated.entered

	type closeResult struct {
		output *ClosePickerOutput
		err    error
	}
	closeDone := make(chan closeResult, 1)
	go func() {
		output, err := f.close.Execute(ctx, userID)
		closeDone <- closeResult{output: output, err: err}
	}()

	select {
	case <-closeDone:
		t.Fatal("expected close to wait for the pending select")
	case <-time.After(50 * time.Millisecond):
	}

	close(gated.release)
	if err := <-pickErr; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := <-closeDone
	if result.err != nil {
		t.Fatalf("unexpected error: %v", result.err)
	}
	snapshot := result.output.Filters.Snapshot
	if snapshot.StartDate != "2025-01-02" || snapshot.EndDate != "2025-01-05" {
		t.Errorf("expected the picked range to be committed, got %s..%s", snapshot.StartDate, snapshot.EndDate)
	}

	state, err := f.get.Execute(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.State != StateClosed {
		t.Errorf("expected closed picker after commit, got %s", state.State)
	}
}

func TestPickerUseCases_SelectAfterCloseOnAnotherInstance(t *testing.T) {
	prefs := &countingPrefs{PreferenceStore: persistence.NewMemoryPreferenceStore()}
	shared := persistence.NewMemoryStagedEditStore(30*time.Minute, func() time.Time { return testNow })
	gated := newGatedStagedStore(shared)
	a := newPickerFixtureOn(prefs, gated)
	b := newPickerFixtureOn(prefs, shared)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := a.open.Execute(ctx, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pickErr := make(chan error, 1)
	go func() {
		_, err := a.pick.Execute(ctx, SelectRangeInput{UserID: userID, From: "2025-01-02", To: "2025-01-05"})
		pickErr <- err
	}()
	<-gated.entered

	closed, err := b.close.Execute(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if closed.Filters.Snapshot.StartDate != "2024-12-15" {
		t.Errorf("expected the staged thisMonth range to be committed, got %s", closed.Filters.Snapshot.StartDate)
	}

	close(gated.release)
	err = <-pickErr
	var filterErr *domainerror.FilterError
	if !errors.As(err, &filterErr) || filterErr.Code != domainerror.ErrCodeDatePickerNotOpen {
		t.Errorf("expected ErrCodeDatePickerNotOpen for a select after close, got %v", err)
	}

	state, err := b.get.Execute(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.State != StateClosed || state.Staged != nil {
		t.Errorf("expected picker to stay closed, got %+v", state)
	}
}

func TestPickerUseCases_ConcurrentCloseCommitsOnce(t *testing.T) {
	prefs := &countingPrefs{PreferenceStore: persistence.NewMemoryPreferenceStore()}
	staged := persistence.NewMemoryStagedEditStore(30*time.Minute, func() time.Time { return testNow })
	a := newPickerFixtureOn(prefs, staged)
	b := newPickerFixtureOn(prefs, staged)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := a.open.Execute(ctx, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		committed int
		rejected  int
	)
	for _, f := range []*pickerFixture{a, b, a, b} {
		wg.Add(1)
		go func(f *pickerFixture) {
			defer wg.Done()
			_, err := f.close.Execute(ctx, userID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				committed++
			case errors.Is(err, domainerror.ErrDatePickerNotOpen):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(f)
	}
	wg.Wait()

	if committed != 1 || rejected != 3 {
		t.Errorf("expected one commit and three not-open errors, got %d and %d", committed, rejected)
	}
}
