package week

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stafftrack/stafftrack/internal/utils"
)

type Service interface {
	GetAll(ctx context.Context) ([]Reference, error)
	// EnsureHorizon makes sure a week reference exists for every Friday from the
	// current week up to the configured planning horizon.
	EnsureHorizon(ctx context.Context, weeks int) error
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Reference, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) EnsureHorizon(ctx context.Context, weeks int) error {
	friday := nextFriday(s.clock.Now())
	for i := 0; i < weeks; i++ {
		weekEnding := friday.AddDate(0, 0, 7*i)
		_, err := s.repo.Store(ctx, Reference{
			WeekEnding: weekEnding,
			Label:      Label(weekEnding),
		})
		if err != nil {
			return fmt.Errorf("failed to store week reference for %s: %w", weekEnding.Format("2006-01-02"), err)
		}
	}
	log.Debugf("ensured %d week references from %s", weeks, friday.Format("2006-01-02"))
	return nil
}

// nextFriday returns the Friday of the week containing the given date, or the
// date itself when it already is a Friday.
func nextFriday(t time.Time) time.Time {
	t = truncateToDate(t)
	offset := (int(time.Friday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset)
}
