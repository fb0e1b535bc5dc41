package appointment

import (
	"context"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/audit"
	domain "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/appointment"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/lock"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
)

type DeleteAppointment struct {
	repo   domain.Repository
	locker lock.Locker
	audit  *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
	}
}

// Execute removes the appointment unless a service record still references it.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	id models.AppointmentID,
	actor audit.Actor,
) error {

	err := uc.locker.WithLock(ctx, lock.AppointmentKey(int64(id)), func(ctx context.Context) error {
		if _, err := uc.repo.GetAppointment(ctx, id); err != nil {
			return err
		}

		referenced, err := uc.repo.HasServiceRecord(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return httperr.New(httperr.KindInUse,
				"Cannot delete appointment with associated service records")
		}

		return uc.repo.DeleteAppointment(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(actor.Event("appointment_deleted", "appointment", int64(id), nil))
	return nil
}
