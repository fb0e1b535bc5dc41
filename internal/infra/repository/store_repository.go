package repository

import (
	"context"
	"errors"

	appointmentdomain "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/appointment"
	servicerecorddomain "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/servicerecord"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

// StoreRepository implements the domain ports on top of a record store.
type StoreRepository struct {
	clients        store.Repo[models.Client, models.ClientID]
	cars           store.Repo[models.Car, models.CarID]
	appointments   store.Repo[models.Appointment, models.AppointmentID]
	serviceRecords store.Repo[models.ServiceRecord, models.ServiceRecordID]
}

func NewStoreRepository(s store.Store) *StoreRepository {
	return &StoreRepository{
		clients:        store.NewRepo[models.Client, models.ClientID](s, store.Clients),
		cars:           store.NewRepo[models.Car, models.CarID](s, store.Cars),
		appointments:   store.NewRepo[models.Appointment, models.AppointmentID](s, store.Appointments),
		serviceRecords: store.NewRepo[models.ServiceRecord, models.ServiceRecordID](s, store.ServiceRecords),
	}
}

func notFound(err error, message string) error {
	if errors.Is(err, store.ErrNotFound) {
		return httperr.New(httperr.KindNotFound, message)
	}
	return err
}

// --------------------------------------------------
// Client / Car
// --------------------------------------------------

func (r *StoreRepository) GetClient(
	ctx context.Context,
	id models.ClientID,
) (*models.Client, error) {

	c, err := r.clients.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "Client not found")
	}
	return c, nil
}

func (r *StoreRepository) GetCar(
	ctx context.Context,
	id models.CarID,
) (*models.Car, error) {

	car, err := r.cars.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "Car not found")
	}
	return car, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *StoreRepository) GetAppointment(
	ctx context.Context,
	id models.AppointmentID,
) (*models.Appointment, error) {

	ap, err := r.appointments.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "Appointment not found")
	}
	return ap, nil
}

func (r *StoreRepository) ListAppointments(
	ctx context.Context,
	f appointmentdomain.Filter,
) ([]models.Appointment, error) {

	filter := store.Filter{}
	if f.ClientID != 0 {
		filter["clientId"] = f.ClientID
	}
	if f.CarID != 0 {
		filter["carId"] = f.CarID
	}
	if f.Date != "" {
		filter["date"] = f.Date
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return r.appointments.Find(ctx, filter)
}

func (r *StoreRepository) ListAppointmentsForDate(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {
	return r.appointments.Find(ctx, store.Filter{"date": date})
}

func (r *StoreRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) (*models.Appointment, error) {
	return r.appointments.Create(ctx, ap)
}

func (r *StoreRepository) UpdateAppointment(
	ctx context.Context,
	id models.AppointmentID,
	p store.Patch,
) (*models.Appointment, error) {

	ap, err := r.appointments.Update(ctx, id, p)
	if err != nil {
		return nil, notFound(err, "Appointment not found")
	}
	return ap, nil
}

func (r *StoreRepository) DeleteAppointment(
	ctx context.Context,
	id models.AppointmentID,
) error {

	ok, err := r.appointments.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.New(httperr.KindNotFound, "Appointment not found")
	}
	return nil
}

func (r *StoreRepository) HasServiceRecord(
	ctx context.Context,
	id models.AppointmentID,
) (bool, error) {
	return r.serviceRecords.Exists(ctx, store.Filter{"appointmentId": id})
}

// --------------------------------------------------
// Service record
// --------------------------------------------------

func (r *StoreRepository) GetServiceRecord(
	ctx context.Context,
	id models.ServiceRecordID,
) (*models.ServiceRecord, error) {

	sr, err := r.serviceRecords.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "Service record not found")
	}
	return sr, nil
}

// FindByAppointment returns nil without error when no record references id.
func (r *StoreRepository) FindByAppointment(
	ctx context.Context,
	id models.AppointmentID,
) (*models.ServiceRecord, error) {

	found, err := r.serviceRecords.Find(ctx, store.Filter{"appointmentId": id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (r *StoreRepository) ListServiceRecords(
	ctx context.Context,
	f servicerecorddomain.Filter,
) ([]models.ServiceRecord, error) {

	filter := store.Filter{}
	if f.AppointmentID != 0 {
		filter["appointmentId"] = f.AppointmentID
	}
	if f.Completed != nil {
		filter["completed"] = *f.Completed
	}
	return r.serviceRecords.Find(ctx, filter)
}

func (r *StoreRepository) CreateServiceRecord(
	ctx context.Context,
	sr *models.ServiceRecord,
) (*models.ServiceRecord, error) {
	return r.serviceRecords.Create(ctx, sr)
}

func (r *StoreRepository) UpdateServiceRecord(
	ctx context.Context,
	id models.ServiceRecordID,
	p store.Patch,
) (*models.ServiceRecord, error) {

	sr, err := r.serviceRecords.Update(ctx, id, p)
	if err != nil {
		return nil, notFound(err, "Service record not found")
	}
	return sr, nil
}

func (r *StoreRepository) DeleteServiceRecord(
	ctx context.Context,
	id models.ServiceRecordID,
) error {

	ok, err := r.serviceRecords.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.New(httperr.KindNotFound, "Service record not found")
	}
	return nil
}

// Compile-time checks
var (
	_ appointmentdomain.Repository   = (*StoreRepository)(nil)
	_ servicerecorddomain.Repository = (*StoreRepository)(nil)
)
