package appointment

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/audit"
	domain "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/appointment"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/lock"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/metrics"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

// ======================================================
// INPUT
// ======================================================

// ProposeInput creates an appointment when ExistingID is nil and updates
// the stored one otherwise. On update, nil fields are left unchanged and
// ClientID/CarID are ignored.
type ProposeInput struct {
	ExistingID *models.AppointmentID

	ClientID *models.ClientID
	CarID    *models.CarID

	Date          *string
	StartTime     *string
	EndTime       *string
	Description   *string
	ContactMethod *string
	Status        *string

	Actor audit.Actor
}

// ======================================================
// USE CASE
// ======================================================

type Scheduler struct {
	repo   domain.Repository
	locker lock.Locker
	audit  *audit.Dispatcher
}

func NewScheduler(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
) *Scheduler {
	return &Scheduler{
		repo:   repo,
		locker: locker,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Scheduler) Propose(
	ctx context.Context,
	in ProposeInput,
) (*models.Appointment, error) {

	var (
		ap  *models.Appointment
		err error
	)
	if in.ExistingID == nil {
		ap, err = uc.create(ctx, in)
	} else {
		ap, err = uc.update(ctx, in)
	}

	if kind := httperr.KindOf(err); kind != "" {
		metrics.SchedulingRejectionsTotal.WithLabelValues(string(kind)).Inc()
	}
	return ap, err
}

func (uc *Scheduler) create(
	ctx context.Context,
	in ProposeInput,
) (*models.Appointment, error) {

	if err := requireCreateFields(in); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1. Client and car
	// --------------------------------------------------
	client, err := uc.repo.GetClient(ctx, *in.ClientID)
	if err != nil {
		return nil, err
	}
	car, err := uc.repo.GetCar(ctx, *in.CarID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Ownership
	// --------------------------------------------------
	if car.ClientID != client.ID {
		return nil, httperr.New(httperr.KindOwnershipMismatch, "Car does not belong to the specified client")
	}

	// --------------------------------------------------
	// 3. Time window
	// --------------------------------------------------
	iv, err := domain.NewInterval(*in.StartTime, *in.EndTime)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Overlap check + persist under the date lock
	// --------------------------------------------------
	var created *models.Appointment
	err = uc.locker.WithLock(ctx, lock.ScheduleKey(*in.Date), func(ctx context.Context) error {
		if err := uc.assertNoOverlap(ctx, *in.Date, iv, 0); err != nil {
			return err
		}

		var cerr error
		created, cerr = uc.repo.CreateAppointment(ctx, &models.Appointment{
			ClientID:      client.ID,
			CarID:         car.ID,
			Date:          *in.Date,
			StartTime:     *in.StartTime,
			EndTime:       *in.EndTime,
			Duration:      iv.Duration(),
			Description:   *in.Description,
			ContactMethod: *in.ContactMethod,
			Status:        string(domain.InitialStatus()),
		})
		return cerr
	})
	if err != nil {
		return nil, err
	}

	metrics.AppointmentsScheduledTotal.Inc()
	uc.audit.Dispatch(in.Actor.Event("appointment_created", "appointment", int64(created.ID), map[string]any{
		"date":      created.Date,
		"startTime": created.StartTime,
		"endTime":   created.EndTime,
	}))

	return created, nil
}

func (uc *Scheduler) update(
	ctx context.Context,
	in ProposeInput,
) (*models.Appointment, error) {

	id := *in.ExistingID

	existing, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if (in.StartTime == nil) != (in.EndTime == nil) {
		return nil, httperr.New(httperr.KindIncompleteTimeChange,
			"Both start time and end time must be provided together")
	}

	if in.ContactMethod != nil && !oneOf(*in.ContactMethod, domain.ContactMethods) {
		return nil, httperr.Validation([]string{"contactMethod must be one of: phone, email, in_person"})
	}
	if in.Status != nil && !domain.Status(*in.Status).Valid() {
		return nil, httperr.Validation([]string{"status must be one of: scheduled, in_progress, completed, cancelled"})
	}

	patch := store.Patch{}
	timeChanged := in.StartTime != nil
	dateChanged := in.Date != nil && *in.Date != existing.Date

	date := existing.Date
	if in.Date != nil {
		date = *in.Date
	}

	var iv domain.Interval
	if timeChanged {
		iv, err = domain.NewInterval(*in.StartTime, *in.EndTime)
		if err != nil {
			return nil, err
		}
		patch["startTime"] = *in.StartTime
		patch["endTime"] = *in.EndTime
		if iv.Duration() != existing.Duration {
			patch["duration"] = iv.Duration()
		}
	} else if dateChanged {
		iv, err = domain.ParseInterval(existing.StartTime, existing.EndTime)
		if err != nil {
			return nil, err
		}
	}

	patch.
		Set("date", in.Date).
		Set("description", in.Description).
		Set("contactMethod", in.ContactMethod).
		Set("status", in.Status)

	var updated *models.Appointment
	err = uc.locker.WithLock(ctx, lock.ScheduleKey(date), func(ctx context.Context) error {
		if timeChanged || dateChanged {
			if err := uc.assertNoOverlap(ctx, date, iv, id); err != nil {
				return err
			}
		}

		var uerr error
		updated, uerr = uc.repo.UpdateAppointment(ctx, id, patch)
		return uerr
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(in.Actor.Event("appointment_updated", "appointment", int64(id), patchKeys(patch)))

	return updated, nil
}

// assertNoOverlap fails when candidate intersects any appointment on date
// other than self.
func (uc *Scheduler) assertNoOverlap(
	ctx context.Context,
	date string,
	candidate domain.Interval,
	self models.AppointmentID,
) error {

	sameDay, err := uc.repo.ListAppointmentsForDate(ctx, date)
	if err != nil {
		return err
	}

	for _, other := range sameDay {
		if other.ID == self {
			continue
		}
		oiv, err := domain.ParseInterval(other.StartTime, other.EndTime)
		if err != nil {
			zap.L().Warn("skipping appointment with unreadable times",
				zap.Int64("appointment_id", int64(other.ID)),
				zap.Error(err),
			)
			continue
		}
		if candidate.Overlaps(oiv) {
			return httperr.New(httperr.KindOverlapConflict,
				"The selected time slot overlaps with an existing appointment ("+oiv.String()+")")
		}
	}
	return nil
}

func requireCreateFields(in ProposeInput) error {
	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name+" is required")
		}
	}
	check("clientId", in.ClientID != nil)
	check("carId", in.CarID != nil)
	check("date", in.Date != nil)
	check("startTime", in.StartTime != nil)
	check("endTime", in.EndTime != nil)
	check("description", in.Description != nil)
	check("contactMethod", in.ContactMethod != nil)

	if len(missing) > 0 {
		return httperr.Validation(missing)
	}
	if !oneOf(*in.ContactMethod, domain.ContactMethods) {
		return httperr.Validation([]string{"contactMethod must be one of: phone, email, in_person"})
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}

func patchKeys(p store.Patch) map[string]any {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return map[string]any{"fields": keys}
}
