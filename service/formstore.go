package service

import (
	"errors"

	"github.com/fulldump/dataform/form"
	"github.com/fulldump/dataform/record"
)

// FormStore exposes the service with the store semantics the form expects,
// journaling included.
func (s *Service) FormStore() form.Store {
	return &formStore{s: s}
}

type formStore struct {
	s *Service
}

func (f *formStore) Append(r record.Record) error {
	_, err := f.s.Insert(r)
	return err
}

func (f *formStore) Reload() error {
	_, err := f.s.Reload()
	return err
}

func (f *formStore) FindByKey(id string) (int, record.Record, bool) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.store.FindByKey(id)
}

// DeleteAt ignores an index out of range, like the store does.
func (f *formStore) DeleteAt(index int) error {
	_, err := f.s.Remove(index)
	if errors.Is(err, ErrIndexOutOfRange) {
		return nil
	}
	return err
}

func (f *formStore) IsEmpty() bool {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.store.IsEmpty()
}
