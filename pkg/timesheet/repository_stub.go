package timesheet

import (
	"context"
	"fmt"
	"time"
)

type RepositoryStub struct {
	nextId int
	data   map[string]Submission
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{nextId: 500, data: map[string]Submission{}}
}

func weekKey(userId int, weekEnding time.Time) string {
	return fmt.Sprintf("%d/%s", userId, weekEnding.Format("2006-01-02"))
}

func (s *RepositoryStub) StoreSubmission(ctx context.Context, userId int, submission Submission) (Submission, error) {
	key := weekKey(userId, submission.WeekEnding)
	if _, ok := s.data[key]; ok {
		return Submission{}, ErrAlreadySubmitted
	}
	s.nextId++
	submission.Id = s.nextId
	s.data[key] = submission
	return submission, nil
}

func (s *RepositoryStub) GetByWeek(ctx context.Context, userId int, weekEnding time.Time) (Submission, error) {
	submission, ok := s.data[weekKey(userId, weekEnding)]
	if !ok {
		return Submission{}, ErrSubmissionNotFound
	}
	return submission, nil
}

func (s *RepositoryStub) Reset() {
	s.nextId = 500
	s.data = map[string]Submission{}
}
