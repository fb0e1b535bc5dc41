package servicerecord

import (
	"context"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

type Filter struct {
	AppointmentID models.AppointmentID
	Completed     *bool
}

type Repository interface {
	GetServiceRecord(ctx context.Context, id models.ServiceRecordID) (*models.ServiceRecord, error)
	FindByAppointment(ctx context.Context, id models.AppointmentID) (*models.ServiceRecord, error)
	ListServiceRecords(ctx context.Context, f Filter) ([]models.ServiceRecord, error)
	CreateServiceRecord(ctx context.Context, sr *models.ServiceRecord) (*models.ServiceRecord, error)
	UpdateServiceRecord(ctx context.Context, id models.ServiceRecordID, p store.Patch) (*models.ServiceRecord, error)
	DeleteServiceRecord(ctx context.Context, id models.ServiceRecordID) error

	GetAppointment(ctx context.Context, id models.AppointmentID) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, id models.AppointmentID, p store.Patch) (*models.Appointment, error)
	GetClient(ctx context.Context, id models.ClientID) (*models.Client, error)
	GetCar(ctx context.Context, id models.CarID) (*models.Car, error)
}
