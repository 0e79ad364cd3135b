package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"timetrack/internal/db"
	"timetrack/internal/metrics"
	"timetrack/internal/model"
	"timetrack/internal/repository"
)

func newMockEventService(events *MockEventRepository, categories *MockCategoryRepository) EventService {
	return NewEventService(events, categories, metrics.New(prometheus.NewRegistry()), 25, zerolog.Nop())
}

func TestEventService_Submit(t *testing.T) {
	userID, categoryID := uuid.New(), uuid.New()
	category := &model.Category{ID: categoryID, UserID: userID, Name: "Work"}

	t.Run("category required", func(t *testing.T) {
		svc := newMockEventService(new(MockEventRepository), new(MockCategoryRepository))
		_, err := svc.Submit(context.Background(), userID, uuid.Nil)
		assertValidation(t, err, "You must include an event category.")
	})

	t.Run("unknown category", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("FindByID", mock.Anything, userID, categoryID).Return(nil, gorm.ErrRecordNotFound)
		events := new(MockEventRepository)
		svc := newMockEventService(events, categories)

		_, err := svc.Submit(context.Background(), userID, categoryID)
		assertValidation(t, err, "Invalid category.")
		events.AssertNotCalled(t, "WithTransaction", mock.Anything)
	})

	t.Run("category lookup failure", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("FindByID", mock.Anything, userID, categoryID).Return(nil, errors.New("boom"))
		svc := newMockEventService(new(MockEventRepository), categories)

		_, err := svc.Submit(context.Background(), userID, categoryID)
		assertOperation(t, err, "Event creation error")
	})

	t.Run("first event is created", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("FindByID", mock.Anything, userID, categoryID).Return(category, nil)
		events := new(MockEventRepository)
		events.On("WithTransaction", mock.Anything).Return(nil)
		events.On("LockOwner", mock.Anything, userID).Return(nil)
		events.On("FindLatest", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
		events.On("Create", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
			return e.Count == 1 && e.UserID == userID && e.CategoryID == categoryID
		})).Return(nil)
		svc := newMockEventService(events, categories)

		event, err := svc.Submit(context.Background(), userID, categoryID)
		require.NoError(t, err)
		assert.Equal(t, 1, event.Count)
		events.AssertExpectations(t)
	})

	t.Run("different category starts a new event", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("FindByID", mock.Anything, userID, categoryID).Return(category, nil)
		events := new(MockEventRepository)
		events.On("WithTransaction", mock.Anything).Return(nil)
		events.On("LockOwner", mock.Anything, userID).Return(nil)
		events.On("FindLatest", mock.Anything, userID).Return(&model.Event{ID: uuid.New(), CategoryID: uuid.New(), Count: 4}, nil)
		events.On("Create", mock.Anything, mock.AnythingOfType("*model.Event")).Return(nil)
		svc := newMockEventService(events, categories)

		event, err := svc.Submit(context.Background(), userID, categoryID)
		require.NoError(t, err)
		assert.Equal(t, 1, event.Count)
		events.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("same category is consolidated", func(t *testing.T) {
		latest := &model.Event{ID: uuid.New(), UserID: userID, CategoryID: categoryID, Count: 2}
		categories := new(MockCategoryRepository)
		categories.On("FindByID", mock.Anything, userID, categoryID).Return(category, nil)
		events := new(MockEventRepository)
		events.On("WithTransaction", mock.Anything).Return(nil)
		events.On("LockOwner", mock.Anything, userID).Return(nil)
		events.On("FindLatest", mock.Anything, userID).Return(latest, nil)
		events.On("Update", mock.Anything, latest).Return(nil)
		svc := newMockEventService(events, categories)

		event, err := svc.Submit(context.Background(), userID, categoryID)
		require.NoError(t, err)
		assert.Equal(t, latest.ID, event.ID)
		assert.Equal(t, 3, event.Count)
		events.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("save failure", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("FindByID", mock.Anything, userID, categoryID).Return(category, nil)
		events := new(MockEventRepository)
		events.On("WithTransaction", mock.Anything).Return(nil)
		events.On("LockOwner", mock.Anything, userID).Return(nil)
		events.On("FindLatest", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
		events.On("Create", mock.Anything, mock.Anything).Return(errors.New("unable to save"))
		svc := newMockEventService(events, categories)

		_, err := svc.Submit(context.Background(), userID, categoryID)
		assertOperation(t, err, "Event creation error")
	})
}

func TestEventService_Insert(t *testing.T) {
	userID, categoryID := uuid.New(), uuid.New()
	at := time.Date(2021, 6, 1, 9, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	tests := []struct {
		name      string
		at        time.Time
		category  uuid.UUID
		setupMock func(*MockEventRepository)
		wantValid string
		wantOp    string
	}{
		{name: "time required", category: categoryID, wantValid: "You must include an event time."},
		{name: "time checked before category", wantValid: "You must include an event time."},
		{name: "category required", at: at, wantValid: "You must include an event category."},
		{
			name:     "created then back-dated",
			at:       at,
			category: categoryID,
			setupMock: func(m *MockEventRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
					return e.Count == 1 && e.CategoryID == categoryID
				})).Return(nil)
				m.On("SetCreatedAt", mock.Anything, mock.Anything, at.UTC()).Return(nil)
			},
		},
		{
			name:     "back-dating failure",
			at:       at,
			category: categoryID,
			setupMock: func(m *MockEventRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
				m.On("SetCreatedAt", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("boom"))
			},
			wantOp: "Event insertion error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := new(MockEventRepository)
			if tt.setupMock != nil {
				tt.setupMock(events)
			}
			categories := new(MockCategoryRepository)
			svc := newMockEventService(events, categories)

			event, err := svc.Insert(context.Background(), userID, tt.at, tt.category)
			switch {
			case tt.wantValid != "":
				assertValidation(t, err, tt.wantValid)
			case tt.wantOp != "":
				assertOperation(t, err, tt.wantOp)
			default:
				require.NoError(t, err)
				assert.True(t, at.Equal(event.CreatedAt))
			}
			events.AssertExpectations(t)
			categories.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestEventService_RemoveModes(t *testing.T) {
	userID := uuid.New()
	begin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := begin.Add(time.Hour)

	tests := []struct {
		name      string
		filter    model.EventFilter
		wantValid string
	}{
		{
			name:      "ids with begin",
			filter:    model.EventFilter{IDs: []uuid.UUID{uuid.New()}, Begin: &begin},
			wantValid: "The events parameter must not be accompanied by begin or end.",
		},
		{
			name:      "ids with end",
			filter:    model.EventFilter{IDs: []uuid.UUID{uuid.New()}, End: &end},
			wantValid: "The events parameter must not be accompanied by begin or end.",
		},
		{
			name:      "nothing",
			filter:    model.EventFilter{},
			wantValid: "You must include at least one of begin, end or events.",
		},
		{
			name:      "empty id list counts as nothing",
			filter:    model.EventFilter{IDs: []uuid.UUID{}},
			wantValid: "You must include at least one of begin, end or events.",
		},
		{name: "begin only", filter: model.EventFilter{Begin: &begin}},
		{name: "end only", filter: model.EventFilter{End: &end}},
		{name: "range", filter: model.EventFilter{Begin: &begin, End: &end}},
		{name: "ids only", filter: model.EventFilter{IDs: []uuid.UUID{uuid.New()}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := new(MockEventRepository)
			if tt.wantValid == "" {
				events.On("Delete", mock.Anything, userID, mock.AnythingOfType("model.EventFilter")).Return(int64(2), nil)
			}
			svc := newMockEventService(events, new(MockCategoryRepository))

			removed, err := svc.Remove(context.Background(), userID, tt.filter)
			if tt.wantValid != "" {
				assertValidation(t, err, tt.wantValid)
				events.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(2), removed)
			events.AssertExpectations(t)
		})
	}
}

func TestEventService_QueryEmptyCategoriesMatchesUnfiltered(t *testing.T) {
	userID := uuid.New()
	events := new(MockEventRepository)
	events.On("Query", mock.Anything, userID, mock.MatchedBy(func(f model.EventFilter) bool {
		return len(f.Categories) == 0 && len(f.IDs) == 0
	}), model.Page{Offset: 0, Limit: 25}).Return([]model.Event{}, nil)
	svc := newMockEventService(events, new(MockCategoryRepository))

	_, err := svc.Query(context.Background(), userID, model.EventFilter{Categories: []uuid.UUID{}}, model.Page{})
	require.NoError(t, err)
	_, err = svc.Query(context.Background(), userID, model.EventFilter{}, model.Page{})
	require.NoError(t, err)

	events.AssertNumberOfCalls(t, "Query", 2)
}

// sqliteEventFixture wires the event service to a real in-memory database.
type sqliteEventFixture struct {
	db      *gorm.DB
	svc     EventService
	user    *model.User
	catRepo repository.CategoryRepository
}

func newSQLiteEventFixture(t *testing.T) *sqliteEventFixture {
	t.Helper()
	gormDB := db.NewTestDB(t)
	user := &model.User{DisplayName: "Test User", TimeZone: "UTC", Email: "u@test.com", PasswordHash: "hash"}
	require.NoError(t, repository.NewUserRepository(gormDB).Create(context.Background(), user))
	catRepo := repository.NewCategoryRepository(gormDB)
	svc := NewEventService(repository.NewEventRepository(gormDB), catRepo, metrics.New(prometheus.NewRegistry()), 25, zerolog.Nop())
	return &sqliteEventFixture{db: gormDB, svc: svc, user: user, catRepo: catRepo}
}

func (f *sqliteEventFixture) category(t *testing.T, name string) uuid.UUID {
	t.Helper()
	c := &model.Category{UserID: f.user.ID, Name: name}
	require.NoError(t, f.catRepo.Create(context.Background(), c))
	return c.ID
}

func (f *sqliteEventFixture) chronological(t *testing.T) []model.Event {
	t.Helper()
	var events []model.Event
	require.NoError(t, f.db.Where("user_id = ?", f.user.ID).Order("created_at ASC").Find(&events).Error)
	return events
}

func TestEventService_SubmitSequenceConsolidates(t *testing.T) {
	f := newSQLiteEventFixture(t)
	ctx := context.Background()
	c1, c2 := f.category(t, "c1"), f.category(t, "c2")

	for _, c := range []uuid.UUID{c1, c1, c2, c1} {
		_, err := f.svc.Submit(ctx, f.user.ID, c)
		require.NoError(t, err)
	}

	events := f.chronological(t)
	require.Len(t, events, 3)
	assert.Equal(t, []int{2, 1, 1}, []int{events[0].Count, events[1].Count, events[2].Count})
	assert.Equal(t, []uuid.UUID{c1, c2, c1}, []uuid.UUID{events[0].CategoryID, events[1].CategoryID, events[2].CategoryID})
}

func TestEventService_SubmitRejectsForeignCategory(t *testing.T) {
	f := newSQLiteEventFixture(t)
	foreign := &model.Category{UserID: uuid.New(), Name: "theirs"}
	require.NoError(t, f.catRepo.Create(context.Background(), foreign))

	_, err := f.svc.Submit(context.Background(), f.user.ID, foreign.ID)
	assertValidation(t, err, "Invalid category.")
	assert.Empty(t, f.chronological(t))
}

func TestEventService_ConcurrentSubmitsConsolidate(t *testing.T) {
	f := newSQLiteEventFixture(t)
	c1 := f.category(t, "c1")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Submit(context.Background(), f.user.ID, c1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	events := f.chronological(t)
	require.Len(t, events, 1)
	assert.Equal(t, 8, events[0].Count)
}

func TestEventService_InsertStoresCallerTime(t *testing.T) {
	f := newSQLiteEventFixture(t)
	at := time.Date(2019, 11, 3, 22, 15, 0, 0, time.UTC)

	event, err := f.svc.Insert(context.Background(), f.user.ID, at, uuid.New())
	require.NoError(t, err)

	var stored model.Event
	require.NoError(t, f.db.Where("id = ?", event.ID).Take(&stored).Error)
	assert.True(t, at.Equal(stored.CreatedAt))
	assert.Equal(t, 1, stored.Count)
}

func TestEventService_RemoveFromBegin(t *testing.T) {
	f := newSQLiteEventFixture(t)
	ctx := context.Background()
	c1, c2 := f.category(t, "c1"), f.category(t, "c2")

	_, err := f.svc.Submit(ctx, f.user.ID, c1)
	require.NoError(t, err)
	early := f.chronological(t)[0]

	// Later submits get strictly later update times.
	time.Sleep(5 * time.Millisecond)
	begin := time.Now()
	time.Sleep(5 * time.Millisecond)
	_, err = f.svc.Submit(ctx, f.user.ID, c2)
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, f.user.ID, c1)
	require.NoError(t, err)

	removed, err := f.svc.Remove(ctx, f.user.ID, model.EventFilter{Begin: &begin})
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	left := f.chronological(t)
	require.Len(t, left, 1)
	assert.Equal(t, early.ID, left[0].ID)
}

func TestEventService_QueryCategoryFilter(t *testing.T) {
	f := newSQLiteEventFixture(t)
	ctx := context.Background()
	c1, c2 := f.category(t, "c1"), f.category(t, "c2")
	for _, c := range []uuid.UUID{c1, c2, c1, c2} {
		_, err := f.svc.Submit(ctx, f.user.ID, c)
		require.NoError(t, err)
	}

	all, err := f.svc.Query(ctx, f.user.ID, model.EventFilter{}, model.Page{})
	require.NoError(t, err)
	emptySet, err := f.svc.Query(ctx, f.user.ID, model.EventFilter{Categories: []uuid.UUID{}}, model.Page{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.ElementsMatch(t, all, emptySet)

	onlyC2, err := f.svc.Query(ctx, f.user.ID, model.EventFilter{Categories: []uuid.UUID{c2}}, model.Page{})
	require.NoError(t, err)
	assert.Len(t, onlyC2, 2)

	paged, err := f.svc.Query(ctx, f.user.ID, model.EventFilter{}, model.Page{Offset: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, paged, 2)
}
