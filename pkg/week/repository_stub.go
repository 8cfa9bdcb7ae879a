package week

import "context"

type RepositoryStub struct {
	nextId int
	data   map[int]Reference
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{data: map[int]Reference{}}
}

func (s *RepositoryStub) Store(ctx context.Context, ref Reference) (Reference, error) {
	for _, existing := range s.data {
		if existing.WeekEnding.Equal(ref.WeekEnding) {
			ref.Id = existing.Id
			s.data[ref.Id] = ref
			return ref, nil
		}
	}
	s.nextId++
	ref.Id = s.nextId
	s.data[ref.Id] = ref
	return ref, nil
}

func (s *RepositoryStub) SetReference(ref Reference) {
	s.data[ref.Id] = ref
}

func (s *RepositoryStub) GetAll(ctx context.Context) ([]Reference, error) {
	refs := make([]Reference, 0, len(s.data))
	for _, ref := range s.data {
		refs = append(refs, ref)
	}
	return refs, nil
}

func (s *RepositoryStub) FindByIds(ctx context.Context, ids []int) ([]Reference, error) {
	var refs []Reference
	for _, id := range ids {
		if ref, ok := s.data[id]; ok {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

func (s *RepositoryStub) Reset() {
	s.data = map[int]Reference{}
}
