package storage

import (
	"phonedb/internal/metrics"
	"phonedb/internal/record"
)

// Service wraps the Store with metrics. It is what the command layer talks to.
type Service struct {
	store *Store
}

func NewService(limits record.Limits) *Service {
	return &Service{store: NewStore(limits)}
}

func (s *Service) Add(surname, phone string) error {
	_, err := s.store.Append(surname, phone)
	if err != nil {
		metrics.StorageOperationsTotal.WithLabelValues("add", "rejected").Inc()
		return err
	}
	metrics.StorageOperationsTotal.WithLabelValues("add", "ok").Inc()
	metrics.StorageRecordsTotal.Set(float64(s.store.Len()))
	return nil
}

func (s *Service) Get(surname string) (string, bool) {
	r := s.store.Find(surname)
	if r == nil {
		metrics.StorageOperationsTotal.WithLabelValues("get", "miss").Inc()
		return "", false
	}
	metrics.StorageOperationsTotal.WithLabelValues("get", "hit").Inc()
	return r.Phone(), true
}

func (s *Service) Remove(surname string) bool {
	removed := s.store.Remove(surname)
	if removed {
		metrics.StorageOperationsTotal.WithLabelValues("remove", "hit").Inc()
		metrics.StorageRecordsTotal.Set(float64(s.store.Len()))
	} else {
		metrics.StorageOperationsTotal.WithLabelValues("remove", "miss").Inc()
	}
	return removed
}

func (s *Service) Len() int {
	return s.store.Len()
}

func (s *Service) Records() []*record.Record {
	return s.store.Records()
}

func (s *Service) Teardown() {
	s.store.Teardown()
	metrics.StorageRecordsTotal.Set(0)
}
