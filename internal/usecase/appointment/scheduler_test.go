package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domain "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/appointment"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/infra/repository"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/lock"
	mock_lock "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/lock/mocks"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

type fixture struct {
	store *store.MemoryStore
	repo  *repository.StoreRepository
	sched *Scheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := store.NewMemoryStore()
	repo := repository.NewStoreRepository(s)
	return &fixture{
		store: s,
		repo:  repo,
		sched: NewScheduler(repo, lock.NewLocalLocker(time.Second), nil),
	}
}

func (f *fixture) seedClientWithCar(t *testing.T) (models.ClientID, models.CarID) {
	t.Helper()
	ctx := context.Background()

	c, err := store.NewRepo[models.Client, models.ClientID](f.store, store.Clients).Create(ctx, &models.Client{
		Username:  "ion",
		FirstName: "Ion",
		LastName:  "Popescu",
		Email:     "ion@example.com",
		Active:    true,
	})
	require.NoError(t, err)

	car, err := store.NewRepo[models.Car, models.CarID](f.store, store.Cars).Create(ctx, &models.Car{
		ClientID:     c.ID,
		LicensePlate: "B-123-ABC",
		Brand:        "Dacia",
		Model:        "Logan",
		Year:         2019,
	})
	require.NoError(t, err)

	return c.ID, car.ID
}

func ptr[T any](v T) *T { return &v }

func createInput(client models.ClientID, car models.CarID, date, start, end string) ProposeInput {
	return ProposeInput{
		ClientID:      &client,
		CarID:         &car,
		Date:          &date,
		StartTime:     &start,
		EndTime:       &end,
		Description:   ptr("Oil change"),
		ContactMethod: ptr(domain.ContactPhone),
	}
}

func TestScheduler_CreateScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clientID, carID := f.seedClientWithCar(t)

	ap, err := f.sched.Propose(ctx, createInput(clientID, carID, "2025-05-10", "10:00", "11:30"))
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentID(1), ap.ID)
	assert.Equal(t, 90, ap.Duration)
	assert.Equal(t, "scheduled", ap.Status)

	_, err = f.sched.Propose(ctx, createInput(clientID, carID, "2025-05-10", "11:00", "11:30"))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.KindOverlapConflict))
}

func TestScheduler_AdjacentSlotsAllowed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clientID, carID := f.seedClientWithCar(t)

	_, err := f.sched.Propose(ctx, createInput(clientID, carID, "2025-05-10", "10:00", "11:00"))
	require.NoError(t, err)
	_, err = f.sched.Propose(ctx, createInput(clientID, carID, "2025-05-10", "11:00", "12:00"))
	require.NoError(t, err)
	_, err = f.sched.Propose(ctx, createInput(clientID, carID, "2025-05-10", "09:00", "10:00"))
	require.NoError(t, err)

	// another day is independent
	_, err = f.sched.Propose(ctx, createInput(clientID, carID, "2025-05-11", "10:00", "11:00"))
	require.NoError(t, err)
}

func TestScheduler_CreateRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clientID, carID := f.seedClientWithCar(t)

	other, err := store.NewRepo[models.Client, models.ClientID](f.store, store.Clients).Create(ctx, &models.Client{Username: "ana"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   ProposeInput
		kind httperr.Kind
	}{
		{"unknown client", createInput(99, carID, "2025-05-10", "10:00", "11:00"), httperr.KindNotFound},
		{"unknown car", createInput(clientID, 99, "2025-05-10", "10:00", "11:00"), httperr.KindNotFound},
		{"car of another client", createInput(other.ID, carID, "2025-05-10", "10:00", "11:00"), httperr.KindOwnershipMismatch},
		{"outside hours", createInput(clientID, carID, "2025-05-10", "16:30", "17:30"), httperr.KindOutOfBusinessHours},
		{"reversed", createInput(clientID, carID, "2025-05-10", "11:00", "10:00"), httperr.KindNonPositiveDuration},
		{"granularity", createInput(clientID, carID, "2025-05-10", "10:00", "10:45"), httperr.KindInvalidGranularity},
		{"bad time", createInput(clientID, carID, "2025-05-10", "ten", "11:00"), httperr.KindInvalidTimeFormat},
		{"missing fields", ProposeInput{ClientID: &clientID}, httperr.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.sched.Propose(ctx, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.kind, httperr.KindOf(err))
		})
	}

	all, err := f.store.GetAll(ctx, store.Appointments)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestScheduler_UpdateSelfExclusion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clientID, carID := f.seedClientWithCar(t)

	ap, err := f.sched.Propose(ctx, createInput(clientID, carID, "2025-05-10", "10:00", "11:00"))
	require.NoError(t, err)

	updated, err := f.sched.Propose(ctx, ProposeInput{
		ExistingID: &ap.ID,
		StartTime:  ptr("10:00"),
		EndTime:    ptr("11:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, ap.StartTime, updated.StartTime)

	// growing into its own old slot is fine too
	updated, err = f.sched.Propose(ctx, ProposeInput{
		ExistingID: &ap.ID,
		StartTime:  ptr("10:00"),
		EndTime:    ptr("12:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, 120, updated.Duration)
}

func TestScheduler_UpdateRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clientID, carID := f.seedClientWithCar(t)

	first, err := f.sched.Propose(ctx, createInput(clientID, carID, "2025-05-10", "10:00", "11:00"))
	require.NoError(t, err)
	second, err := f.sched.Propose(ctx, createInput(clientID, carID, "2025-05-12", "10:00", "11:00"))
	require.NoError(t, err)

	t.Run("only one time", func(t *testing.T) {
		_, err := f.sched.Propose(ctx, ProposeInput{ExistingID: &first.ID, StartTime: ptr("12:00")})
		assert.Equal(t, httperr.KindIncompleteTimeChange, httperr.KindOf(err))
	})

	t.Run("moving date onto a busy slot", func(t *testing.T) {
		_, err := f.sched.Propose(ctx, ProposeInput{ExistingID: &second.ID, Date: ptr("2025-05-10")})
		assert.Equal(t, httperr.KindOverlapConflict, httperr.KindOf(err))
	})

	t.Run("unknown appointment", func(t *testing.T) {
		_, err := f.sched.Propose(ctx, ProposeInput{ExistingID: ptr(models.AppointmentID(42))})
		assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := f.sched.Propose(ctx, ProposeInput{ExistingID: &first.ID, Status: ptr("done")})
		assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
	})

	t.Run("partial patch keeps other fields", func(t *testing.T) {
		updated, err := f.sched.Propose(ctx, ProposeInput{
			ExistingID:  &first.ID,
			Description: ptr("Brake check"),
			Status:      ptr(string(domain.StatusInProgress)),
		})
		require.NoError(t, err)
		assert.Equal(t, "Brake check", updated.Description)
		assert.Equal(t, "in_progress", updated.Status)
		assert.Equal(t, "2025-05-10", updated.Date)
		assert.Equal(t, "10:00", updated.StartTime)
		assert.Equal(t, 60, updated.Duration)
		assert.Equal(t, first.CreatedAt, updated.CreatedAt)
	})
}

func TestScheduler_LocksTheDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := store.NewMemoryStore()
	repo := repository.NewStoreRepository(s)
	locker := mock_lock.NewMockLocker(ctrl)
	sched := NewScheduler(repo, locker, nil)

	f := &fixture{store: s, repo: repo, sched: sched}
	clientID, carID := f.seedClientWithCar(t)
	ctx := context.Background()

	locker.EXPECT().
		WithLock(gomock.Any(), "schedule:2025-05-10", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, fn func(context.Context) error) error {
			return fn(ctx)
		})

	_, err := sched.Propose(ctx, createInput(clientID, carID, "2025-05-10", "10:00", "11:00"))
	require.NoError(t, err)

	locker.EXPECT().
		WithLock(gomock.Any(), "schedule:2025-05-10", gomock.Any()).
		Return(httperr.New(httperr.KindLockBusy, "busy"))

	_, err = sched.Propose(ctx, createInput(clientID, carID, "2025-05-10", "12:00", "13:00"))
	assert.Equal(t, httperr.KindLockBusy, httperr.KindOf(err))

	all, err := s.GetAll(ctx, store.Appointments)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestScheduler_ConcurrentProposalsDoNotDoubleBook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clientID, carID := f.seedClientWithCar(t)

	const n = 10
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := f.sched.Propose(ctx, createInput(clientID, carID, "2025-05-10", "10:00", "11:00"))
			errs <- err
		}()
	}

	ok := 0
	for i := 0; i < n; i++ {
		if err := <-errs; err == nil {
			ok++
		} else {
			assert.Equal(t, httperr.KindOverlapConflict, httperr.KindOf(err))
		}
	}
	assert.Equal(t, 1, ok)
}
