package appointment

import (
	"context"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/audit"
	domain "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/appointment"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/lock"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

type CancelAppointment struct {
	repo   domain.Repository
	locker lock.Locker
	audit  *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	id models.AppointmentID,
	actor audit.Actor,
) (*models.Appointment, error) {

	var out *models.Appointment
	err := uc.locker.WithLock(ctx, lock.AppointmentKey(int64(id)), func(ctx context.Context) error {
		ap, err := uc.repo.GetAppointment(ctx, id)
		if err != nil {
			return err
		}

		if err := domain.Cancel(ap); err != nil {
			return err
		}

		out, err = uc.repo.UpdateAppointment(ctx, id, store.Patch{"status": ap.Status})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(actor.Event("appointment_cancelled", "appointment", int64(id), nil))

	return out, nil
}
