package forecast

import (
	"context"
	"sort"
)

type RepositoryStub struct {
	nextId int
	data   map[int]Allocation
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{nextId: 100, data: map[int]Allocation{}}
}

func (s *RepositoryStub) SetAllocation(allocation Allocation) {
	s.data[allocation.Id] = allocation
}

func (s *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	return fn(s)
}

func (s *RepositoryStub) GetAllForUser(ctx context.Context, userId int) ([]Allocation, error) {
	allocations := make([]Allocation, 0, len(s.data))
	for _, allocation := range s.data {
		allocations = append(allocations, allocation)
	}
	sort.Slice(allocations, func(i, j int) bool { return allocations[i].Id < allocations[j].Id })
	return allocations, nil
}

func (s *RepositoryStub) GetById(ctx context.Context, userId int, id int) (Allocation, error) {
	allocation, ok := s.data[id]
	if !ok {
		return Allocation{}, ErrAllocationNotFound
	}
	return allocation, nil
}

func (s *RepositoryStub) Store(ctx context.Context, userId int, allocation Allocation) (Allocation, error) {
	s.nextId++
	allocation.Id = s.nextId
	s.data[allocation.Id] = allocation
	return allocation, nil
}

func (s *RepositoryStub) Update(ctx context.Context, userId int, allocation Allocation) (Allocation, error) {
	if _, ok := s.data[allocation.Id]; !ok {
		return Allocation{}, ErrAllocationNotFound
	}
	s.data[allocation.Id] = allocation
	return allocation, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, id int) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *RepositoryStub) Reset() {
	s.nextId = 100
	s.data = map[int]Allocation{}
}
