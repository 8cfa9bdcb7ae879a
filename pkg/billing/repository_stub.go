package billing

import (
	"context"
	"sort"
)

type RepositoryStub struct {
	data        map[int]Assignment
	failWith    error
	findCalls   int
	lastFindIds []int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{data: map[int]Assignment{}}
}

func (s *RepositoryStub) SetAssignment(a Assignment) {
	s.data[a.Id] = a
}

// FailWith makes every subsequent call return the given error, simulating an
// unreachable store.
func (s *RepositoryStub) FailWith(err error) {
	s.failWith = err
}

func (s *RepositoryStub) FindCalls() int {
	return s.findCalls
}

func (s *RepositoryStub) FindByIds(ctx context.Context, ids []int) ([]Assignment, error) {
	s.findCalls++
	s.lastFindIds = ids
	if s.failWith != nil {
		return nil, s.failWith
	}
	var assignments []Assignment
	for _, id := range ids {
		if a, ok := s.data[id]; ok {
			assignments = append(assignments, a)
		}
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].Id < assignments[j].Id })
	return assignments, nil
}

func (s *RepositoryStub) GetAll(ctx context.Context) ([]Assignment, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	assignments := make([]Assignment, 0, len(s.data))
	for _, a := range s.data {
		assignments = append(assignments, a)
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].Id < assignments[j].Id })
	return assignments, nil
}

func (s *RepositoryStub) Reset() {
	s.data = map[int]Assignment{}
	s.failWith = nil
	s.findCalls = 0
	s.lastFindIds = nil
}
