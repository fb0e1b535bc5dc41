package appointment

import (
	"context"
	"fmt"
	"sort"
	"strings"

	domain "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/appointment"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/dto"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
)

// ListAppointments returns appointments enriched with client and car summaries.
type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	f domain.Filter,
) ([]dto.AppointmentDTO, error) {

	apps, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}
	return enrich(ctx, uc.repo, apps)
}

// Get returns one enriched appointment.
func (uc *ListAppointments) Get(
	ctx context.Context,
	id models.AppointmentID,
) (*dto.AppointmentDTO, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := enrich(ctx, uc.repo, []models.Appointment{*ap})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// ======================================================
// By month
// ======================================================

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

// Execute lists the month's appointments ordered by date and start time.
// clientID, when non-zero, restricts the result to one client.
func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	year int,
	month int,
	clientID models.ClientID,
) ([]dto.AppointmentDTO, error) {

	if year < 1900 || year > 9999 || month < 1 || month > 12 {
		return nil, httperr.Validation([]string{"year and month must form a valid month"})
	}
	prefix := fmt.Sprintf("%04d-%02d-", year, month)

	all, err := uc.repo.ListAppointments(ctx, domain.Filter{ClientID: clientID})
	if err != nil {
		return nil, err
	}

	var apps []models.Appointment
	for _, ap := range all {
		if strings.HasPrefix(ap.Date, prefix) {
			apps = append(apps, ap)
		}
	}

	sort.SliceStable(apps, func(i, j int) bool {
		if apps[i].Date != apps[j].Date {
			return apps[i].Date < apps[j].Date
		}
		return clockOf(apps[i].StartTime) < clockOf(apps[j].StartTime)
	})

	return enrich(ctx, uc.repo, apps)
}

func clockOf(s string) int {
	m, err := domain.ParseClock(s)
	if err != nil {
		return -1
	}
	return m
}

// enrich attaches client and car summaries. Lookups are cached per call;
// dangling references are left empty.
func enrich(
	ctx context.Context,
	repo domain.Repository,
	apps []models.Appointment,
) ([]dto.AppointmentDTO, error) {

	clients := map[models.ClientID]*models.Client{}
	cars := map[models.CarID]*models.Car{}

	out := make([]dto.AppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		c, ok := clients[ap.ClientID]
		if !ok {
			found, err := repo.GetClient(ctx, ap.ClientID)
			if err != nil && !httperr.IsBusiness(err, httperr.KindNotFound) {
				return nil, err
			}
			c = found
			clients[ap.ClientID] = c
		}

		car, ok := cars[ap.CarID]
		if !ok {
			found, err := repo.GetCar(ctx, ap.CarID)
			if err != nil && !httperr.IsBusiness(err, httperr.KindNotFound) {
				return nil, err
			}
			car = found
			cars[ap.CarID] = car
		}

		out = append(out, dto.NewAppointmentDTO(ap, c, car))
	}
	return out, nil
}
