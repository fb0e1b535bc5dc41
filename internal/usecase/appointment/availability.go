package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/appointment"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute returns the free business-hour slots of the given length on date.
// Every appointment on the date counts as busy, matching what Propose
// rejects as an overlap.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
	length int,
) ([]domain.TimeSlot, error) {

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, httperr.Validation([]string{"date must be a date in YYYY-MM-DD format"})
	}
	if length == 0 {
		length = domain.SlotGranularity
	}
	if length < 0 || length%domain.SlotGranularity != 0 {
		return nil, httperr.New(httperr.KindInvalidGranularity,
			fmt.Sprintf("Duration must be a positive multiple of %d minutes", domain.SlotGranularity))
	}

	apps, err := uc.repo.ListAppointmentsForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(apps))
	for _, ap := range apps {
		iv, err := domain.ParseInterval(ap.StartTime, ap.EndTime)
		if err != nil {
			continue
		}
		busy = append(busy, iv)
	}

	return domain.FreeSlots(busy, length), nil
}
