package servicerecord

import (
	"context"

	domain "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/servicerecord"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/dto"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
)

func (uc *Lifecycle) List(
	ctx context.Context,
	f domain.Filter,
) ([]dto.ServiceRecordDTO, error) {

	records, err := uc.repo.ListServiceRecords(ctx, f)
	if err != nil {
		return nil, err
	}

	e := newEnricher(uc.repo)
	out := make([]dto.ServiceRecordDTO, 0, len(records))
	for _, sr := range records {
		d, err := e.enrich(ctx, sr)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (uc *Lifecycle) Get(
	ctx context.Context,
	id models.ServiceRecordID,
) (*dto.ServiceRecordDTO, error) {

	sr, err := uc.repo.GetServiceRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err := newEnricher(uc.repo).enrich(ctx, *sr)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// enricher resolves appointment, client and car once per listing.
type enricher struct {
	repo         domain.Repository
	appointments map[models.AppointmentID]*models.Appointment
	clients      map[models.ClientID]*models.Client
	cars         map[models.CarID]*models.Car
}

func newEnricher(repo domain.Repository) *enricher {
	return &enricher{
		repo:         repo,
		appointments: map[models.AppointmentID]*models.Appointment{},
		clients:      map[models.ClientID]*models.Client{},
		cars:         map[models.CarID]*models.Car{},
	}
}

func (e *enricher) enrich(ctx context.Context, sr models.ServiceRecord) (dto.ServiceRecordDTO, error) {
	ap, ok := e.appointments[sr.AppointmentID]
	if !ok {
		found, err := e.repo.GetAppointment(ctx, sr.AppointmentID)
		if err != nil && !httperr.IsBusiness(err, httperr.KindNotFound) {
			return dto.ServiceRecordDTO{}, err
		}
		ap = found
		e.appointments[sr.AppointmentID] = ap
	}
	if ap == nil {
		return dto.NewServiceRecordDTO(sr, nil, nil, nil), nil
	}

	c, ok := e.clients[ap.ClientID]
	if !ok {
		found, err := e.repo.GetClient(ctx, ap.ClientID)
		if err != nil && !httperr.IsBusiness(err, httperr.KindNotFound) {
			return dto.ServiceRecordDTO{}, err
		}
		c = found
		e.clients[ap.ClientID] = c
	}

	car, ok := e.cars[ap.CarID]
	if !ok {
		found, err := e.repo.GetCar(ctx, ap.CarID)
		if err != nil && !httperr.IsBusiness(err, httperr.KindNotFound) {
			return dto.ServiceRecordDTO{}, err
		}
		car = found
		e.cars[ap.CarID] = car
	}

	return dto.NewServiceRecordDTO(sr, ap, c, car), nil
}
