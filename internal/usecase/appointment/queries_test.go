package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/audit"
	domain "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/appointment"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/lock"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

func TestListAppointments_Enriched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clientID, carID := f.seedClientWithCar(t)

	_, err := f.sched.Propose(ctx, createInput(clientID, carID, "2025-05-10", "10:00", "11:00"))
	require.NoError(t, err)

	list, err := NewListAppointments(f.repo).Execute(ctx, domain.Filter{ClientID: clientID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Client)
	require.NotNil(t, list[0].Car)
	assert.Equal(t, "Ion", list[0].Client.FirstName)
	assert.Equal(t, "B-123-ABC", list[0].Car.LicensePlate)

	list, err = NewListAppointments(f.repo).Execute(ctx, domain.Filter{Status: "cancelled"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListAppointments_DanglingReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := store.NewRepo[models.Appointment, models.AppointmentID](f.store, store.Appointments).Create(ctx, &models.Appointment{
		ClientID: 5, CarID: 6, Date: "2025-05-10", StartTime: "10:00", EndTime: "11:00", Status: "scheduled",
	})
	require.NoError(t, err)

	got, err := NewListAppointments(f.repo).Get(ctx, ap.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Client)
	assert.Nil(t, got.Car)
}

func TestListAppointmentsByMonth(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clientID, carID := f.seedClientWithCar(t)

	for _, in := range []ProposeInput{
		createInput(clientID, carID, "2025-05-20", "09:00", "10:00"),
		createInput(clientID, carID, "2025-05-03", "14:00", "15:00"),
		createInput(clientID, carID, "2025-05-03", "08:00", "09:00"),
		createInput(clientID, carID, "2025-06-01", "09:00", "10:00"),
	} {
		_, err := f.sched.Propose(ctx, in)
		require.NoError(t, err)
	}

	list, err := NewListAppointmentsByMonth(f.repo).Execute(ctx, 2025, 5, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2025-05-03", list[0].Date)
	assert.Equal(t, "08:00", list[0].StartTime)
	assert.Equal(t, "14:00", list[1].StartTime)
	assert.Equal(t, "2025-05-20", list[2].Date)

	_, err = NewListAppointmentsByMonth(f.repo).Execute(ctx, 2025, 13, 0)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}

func TestGetAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clientID, carID := f.seedClientWithCar(t)

	_, err := f.sched.Propose(ctx, createInput(clientID, carID, "2025-05-10", "08:00", "16:00"))
	require.NoError(t, err)

	slots, err := NewGetAvailability(f.repo).Execute(ctx, "2025-05-10", 0)
	require.NoError(t, err)
	assert.Equal(t, []domain.TimeSlot{{Start: "16:00", End: "16:30"}, {Start: "16:30", End: "17:00"}}, slots)

	_, err = NewGetAvailability(f.repo).Execute(ctx, "2025-05-10", 45)
	assert.Equal(t, httperr.KindInvalidGranularity, httperr.KindOf(err))

	_, err = NewGetAvailability(f.repo).Execute(ctx, "10/05/2025", 30)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}

func TestCancelAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clientID, carID := f.seedClientWithCar(t)
	locker := lock.NewLocalLocker(0)

	ap, err := f.sched.Propose(ctx, createInput(clientID, carID, "2025-05-10", "10:00", "11:00"))
	require.NoError(t, err)

	cancelled, err := NewCancelAppointment(f.repo, locker, nil).Execute(ctx, ap.ID, auditActor)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	_, err = NewCancelAppointment(f.repo, locker, nil).Execute(ctx, ap.ID, auditActor)
	assert.Equal(t, httperr.KindInvalidState, httperr.KindOf(err))

	_, err = store.NewRepo[models.ServiceRecord, models.ServiceRecordID](f.store, store.ServiceRecords).
		Create(ctx, &models.ServiceRecord{AppointmentID: ap.ID})
	require.NoError(t, err)

	del := NewDeleteAppointment(f.repo, locker, nil)
	assert.Equal(t, httperr.KindInUse, httperr.KindOf(del.Execute(ctx, ap.ID, auditActor)))

	other, err := f.sched.Propose(ctx, createInput(clientID, carID, "2025-05-11", "10:00", "11:00"))
	require.NoError(t, err)
	require.NoError(t, del.Execute(ctx, other.ID, auditActor))
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(del.Execute(ctx, other.ID, auditActor)))
}

var auditActor = audit.Actor{UserID: 1, Role: models.RoleAdmin}
