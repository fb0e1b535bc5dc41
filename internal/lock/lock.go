//go:generate mockgen -source ./lock.go -destination=./mocks/mock_locker.go -package=mock_lock
package lock

import (
	"context"
	"fmt"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
)

// Locker serialises work on a key. fn runs while the lock is held and the
// lock is released when fn returns.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

func ScheduleKey(date string) string {
	return "schedule:" + date
}

func AppointmentKey(id int64) string {
	return fmt.Sprintf("appointment:%d", id)
}

func errBusy(key string) error {
	return httperr.New(httperr.KindLockBusy, fmt.Sprintf("Resource %s is busy, try again", key))
}
