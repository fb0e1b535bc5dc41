package appointment

import (
	"context"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

// Filter narrows appointment listings. Zero values are ignored.
type Filter struct {
	ClientID models.ClientID
	CarID    models.CarID
	Date     string
	Status   string
}

type Repository interface {
	// -------- Client / Car --------
	GetClient(
		ctx context.Context,
		id models.ClientID,
	) (*models.Client, error)

	GetCar(
		ctx context.Context,
		id models.CarID,
	) (*models.Car, error)

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id models.AppointmentID,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		f Filter,
	) ([]models.Appointment, error)

	ListAppointmentsForDate(
		ctx context.Context,
		date string,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		id models.AppointmentID,
		p store.Patch,
	) (*models.Appointment, error)

	DeleteAppointment(
		ctx context.Context,
		id models.AppointmentID,
	) error

	// -------- Service record references --------
	HasServiceRecord(
		ctx context.Context,
		id models.AppointmentID,
	) (bool, error)
}
