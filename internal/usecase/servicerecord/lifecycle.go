package servicerecord

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/audit"
	appointmentdomain "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/appointment"
	domain "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/servicerecord"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/lock"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/metrics"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

// Lifecycle drives service records and the status of their appointment.
// Every operation holds the appointment lock while it writes.
type Lifecycle struct {
	repo   domain.Repository
	locker lock.Locker
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewLifecycle(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
) *Lifecycle {
	return &Lifecycle{
		repo:   repo,
		locker: locker,
		audit:  audit,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the source of receivedAt/processedAt.
func (uc *Lifecycle) WithClock(now func() time.Time) *Lifecycle {
	uc.now = now
	return uc
}

// ======================================================
// OPEN
// ======================================================

type OpenInput struct {
	AppointmentID models.AppointmentID

	VisualIssues         string
	ClientReportedIssues string
	ReceivedBy           string

	Actor audit.Actor
}

func (uc *Lifecycle) Open(
	ctx context.Context,
	in OpenInput,
) (*models.ServiceRecord, error) {

	var created *models.ServiceRecord
	err := uc.locker.WithLock(ctx, lock.AppointmentKey(int64(in.AppointmentID)), func(ctx context.Context) error {
		ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
		if err != nil {
			return err
		}

		existing, err := uc.repo.FindByAppointment(ctx, in.AppointmentID)
		if err != nil {
			return err
		}
		if existing != nil {
			return httperr.New(httperr.KindDuplicateServiceRecord,
				"Service record already exists for this appointment")
		}

		previous := ap.Status
		if err := appointmentdomain.StartService(ap); err != nil {
			return err
		}
		if _, err := uc.repo.UpdateAppointment(ctx, ap.ID, store.Patch{"status": ap.Status}); err != nil {
			return err
		}

		created, err = uc.repo.CreateServiceRecord(ctx, &models.ServiceRecord{
			AppointmentID: in.AppointmentID,
			Reception: models.Reception{
				VisualIssues:         in.VisualIssues,
				ClientReportedIssues: in.ClientReportedIssues,
				ReceivedBy:           in.ReceivedBy,
				ReceivedAt:           uc.now(),
			},
			Completed: false,
		})
		if err != nil {
			uc.restoreStatus(ctx, ap.ID, previous)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ServiceRecordsOpenedTotal.Inc()
	uc.audit.Dispatch(in.Actor.Event("service_record_opened", "serviceRecord", int64(created.ID), map[string]any{
		"appointmentId": in.AppointmentID,
	}))

	return created, nil
}

// ======================================================
// ADD PROCESSING
// ======================================================

type ProcessingInput struct {
	Operations         []string
	ReplacedParts      []models.ReplacedPart
	AdditionalIssues   string
	Repaired           string
	ProcessingDuration int
	ProcessedBy        string

	Actor audit.Actor
}

func (uc *Lifecycle) AddProcessing(
	ctx context.Context,
	id models.ServiceRecordID,
	in ProcessingInput,
) (*models.ServiceRecord, error) {

	var updated *models.ServiceRecord
	err := uc.withRecordLock(ctx, id, func(ctx context.Context, sr *models.ServiceRecord) error {
		if err := domain.CanAddProcessing(sr); err != nil {
			return err
		}
		if err := domain.CheckProcessingDuration(in.ProcessingDuration); err != nil {
			return err
		}

		parts := in.ReplacedParts
		if parts == nil {
			parts = []models.ReplacedPart{}
		}
		processing := models.Processing{
			Operations:         in.Operations,
			ReplacedParts:      parts,
			AdditionalIssues:   in.AdditionalIssues,
			Repaired:           in.Repaired,
			ProcessingDuration: in.ProcessingDuration,
			ProcessedBy:        in.ProcessedBy,
			ProcessedAt:        uc.now(),
		}

		restore, err := uc.completeAppointment(ctx, sr.AppointmentID)
		if err != nil {
			return err
		}

		updated, err = uc.repo.UpdateServiceRecord(ctx, id, store.Patch{
			"processing": processing,
			"completed":  true,
		})
		if err != nil {
			restore()
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ServiceRecordsCompletedTotal.Inc()
	uc.audit.Dispatch(in.Actor.Event("service_record_processed", "serviceRecord", int64(id), map[string]any{
		"repaired":           in.Repaired,
		"processingDuration": in.ProcessingDuration,
	}))

	return updated, nil
}

// ======================================================
// UPDATE
// ======================================================

// UpdateInput merges into reception and processing field by field. Nil
// pointers leave the block untouched.
type UpdateInput struct {
	Reception  *domain.ReceptionChanges
	Processing *domain.ProcessingChanges
	Completed  *bool

	Actor audit.Actor
}

func (uc *Lifecycle) Update(
	ctx context.Context,
	id models.ServiceRecordID,
	in UpdateInput,
) (*models.ServiceRecord, error) {

	if in.Processing != nil && in.Processing.ProcessingDuration != nil {
		if err := domain.CheckProcessingDuration(*in.Processing.ProcessingDuration); err != nil {
			return nil, err
		}
	}

	completedNow := false
	var updated *models.ServiceRecord
	err := uc.withRecordLock(ctx, id, func(ctx context.Context, sr *models.ServiceRecord) error {
		patch := store.Patch{}

		if in.Reception != nil {
			patch["reception"] = domain.MergeReception(sr.Reception, *in.Reception)
		}
		if in.Processing != nil {
			merged := domain.MergeProcessing(sr.Processing, *in.Processing)
			if sr.Processing == nil || sr.Processing.ProcessedAt.IsZero() {
				merged.ProcessedAt = uc.now()
			}
			if merged.Operations == nil {
				merged.Operations = []string{}
			}
			if merged.ReplacedParts == nil {
				merged.ReplacedParts = []models.ReplacedPart{}
			}
			patch["processing"] = merged
		}
		patch.Set("completed", in.Completed)

		restore := func() {}
		if in.Completed != nil && *in.Completed && !sr.Completed {
			var err error
			restore, err = uc.completeAppointment(ctx, sr.AppointmentID)
			if err != nil {
				return err
			}
			completedNow = true
		}

		var err error
		updated, err = uc.repo.UpdateServiceRecord(ctx, id, patch)
		if err != nil {
			restore()
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if completedNow {
		metrics.ServiceRecordsCompletedTotal.Inc()
	}
	uc.audit.Dispatch(in.Actor.Event("service_record_updated", "serviceRecord", int64(id), nil))

	return updated, nil
}

// ======================================================
// DELETE
// ======================================================

// Delete removes the record. An in-progress appointment goes back to scheduled.
func (uc *Lifecycle) Delete(
	ctx context.Context,
	id models.ServiceRecordID,
	actor audit.Actor,
) error {

	err := uc.withRecordLock(ctx, id, func(ctx context.Context, sr *models.ServiceRecord) error {
		restore := func() {}

		ap, err := uc.repo.GetAppointment(ctx, sr.AppointmentID)
		switch {
		case err == nil:
			previous := ap.Status
			if appointmentdomain.RevertService(ap) {
				if _, err := uc.repo.UpdateAppointment(ctx, ap.ID, store.Patch{"status": ap.Status}); err != nil {
					return err
				}
				restore = func() { uc.restoreStatus(ctx, ap.ID, previous) }
			}
		case !httperr.IsBusiness(err, httperr.KindNotFound):
			return err
		}

		if err := uc.repo.DeleteServiceRecord(ctx, id); err != nil {
			restore()
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(actor.Event("service_record_deleted", "serviceRecord", int64(id), nil))
	return nil
}

// ======================================================
// helpers
// ======================================================

// withRecordLock loads the record, locks its appointment and hands fn a
// fresh copy read under the lock.
func (uc *Lifecycle) withRecordLock(
	ctx context.Context,
	id models.ServiceRecordID,
	fn func(ctx context.Context, sr *models.ServiceRecord) error,
) error {

	sr, err := uc.repo.GetServiceRecord(ctx, id)
	if err != nil {
		return err
	}

	return uc.locker.WithLock(ctx, lock.AppointmentKey(int64(sr.AppointmentID)), func(ctx context.Context) error {
		fresh, err := uc.repo.GetServiceRecord(ctx, id)
		if err != nil {
			return err
		}
		return fn(ctx, fresh)
	})
}

// completeAppointment marks the appointment completed and returns a func
// that puts the previous status back. A missing appointment is skipped.
func (uc *Lifecycle) completeAppointment(
	ctx context.Context,
	id models.AppointmentID,
) (func(), error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if httperr.IsBusiness(err, httperr.KindNotFound) {
		return func() {}, nil
	}
	if err != nil {
		return nil, err
	}

	previous := ap.Status
	appointmentdomain.Complete(ap)
	if _, err := uc.repo.UpdateAppointment(ctx, id, store.Patch{"status": ap.Status}); err != nil {
		return nil, err
	}
	return func() { uc.restoreStatus(ctx, id, previous) }, nil
}

func (uc *Lifecycle) restoreStatus(ctx context.Context, id models.AppointmentID, status string) {
	if _, err := uc.repo.UpdateAppointment(context.WithoutCancel(ctx), id, store.Patch{"status": status}); err != nil {
		zap.L().Error("failed to restore appointment status",
			zap.Int64("appointment_id", int64(id)),
			zap.String("status", status),
			zap.Error(err),
		)
	}
}
