package service

import (
	"fmt"
	"slices"
	"sync"

	"github.com/SierraSoftworks/connor"
	"go.uber.org/zap"

	"github.com/fulldump/dataform/journal"
	"github.com/fulldump/dataform/record"
	"github.com/fulldump/dataform/recordindex"
	"github.com/fulldump/dataform/recordstore"
	"github.com/fulldump/dataform/utils"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

type Config struct {
	Filename      string
	Journal       string
	AtomicRewrite bool
}

// Service serializes every access to the record store so it can be shared by
// concurrent transports. It is still the only writer of the backing file.
type Service struct {
	mu      sync.Mutex
	status  string
	store   *recordstore.Store
	journal *journal.Journal
	logger  *zap.Logger
}

func NewService(config *Config, logger *zap.Logger) *Service {

	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		status: StatusOpening,
		store: recordstore.New(recordstore.Options{
			Filename:      config.Filename,
			AtomicRewrite: config.AtomicRewrite,
			Logger:        logger,
		}),
		logger: logger,
	}

	if config.Journal != "" {
		s.journal = journal.New(config.Journal)
	}

	return s
}

func (s *Service) GetStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Load reads the backing file for the first time and opens the service.
func (s *Service) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.Reload()
	if err != nil {
		s.status = StatusClosing
		return err
	}

	s.logger.Info("records loaded",
		zap.String("file", s.store.Filename()),
		zap.Int("total", s.store.Len()),
		zap.Int("malformed", len(s.store.Malformed())),
	)
	s.status = StatusOperating

	return nil
}

func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusClosing
}

// Store gives direct access to the store. Callers must not use it
// concurrently with the service.
func (s *Service) Store() *recordstore.Store {
	return s.store
}

func (s *Service) Insert(r record.Record) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.Append(r)
	if err != nil {
		return nil, err
	}

	if s.journal != nil {
		if _, err := s.journal.Append(r); err != nil {
			s.logger.Error("journal append", zap.Error(err))
		}
	}

	return &Item{
		Index:  s.store.Len() - 1,
		Record: r.Clone(),
	}, nil
}

func (s *Service) Find(id string) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.IsEmpty() {
		return nil, fmt.Errorf("%w: store is empty", ErrRecordNotFound)
	}

	index, r, found := s.store.FindByKey(id)
	if !found {
		return nil, fmt.Errorf("%w: id '%s'", ErrRecordNotFound, id)
	}

	return &Item{Index: index, Record: r}, nil
}

// Remove deletes the record at index. Unlike the store, an index out of
// range is reported.
func (s *Service) Remove(index int) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.store.Records()
	if index < 0 || index >= len(records) {
		return nil, fmt.Errorf("%w: %d, total %d", ErrIndexOutOfRange, index, len(records))
	}
	removed := records[index]

	err := s.store.DeleteAt(index)
	if err != nil {
		return nil, err
	}

	if s.journal != nil {
		if _, err := s.journal.Delete(index, removed); err != nil {
			s.logger.Error("journal delete", zap.Error(err))
		}
	}

	return &Item{Index: index, Record: removed}, nil
}

func (s *Service) Reload() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.Reload()
	if err != nil {
		return 0, err
	}

	return s.store.Len(), nil
}

type ListOptions struct {
	// Sort is "" (file order), "id" or "-id".
	Sort string
	// Prefix keeps only ids starting with it. Implies sorting by id.
	Prefix string
}

func (s *Service) List(options ListOptions) ([]*Item, error) {

	switch options.Sort {
	case "", "id", "-id":
	default:
		return nil, fmt.Errorf("%w: sort '%s', must be id or -id", ErrInvalidArgument, options.Sort)
	}

	s.mu.Lock()
	records := s.store.Records()
	s.mu.Unlock()

	if options.Sort == "" && options.Prefix == "" {
		result := make([]*Item, len(records))
		for i, r := range records {
			result[i] = &Item{Index: i, Record: r}
		}
		return result, nil
	}

	index := recordindex.New(records)
	result := []*Item{}
	collect := func(e *recordindex.Entry) bool {
		result = append(result, &Item{Index: e.Position, Record: e.Record})
		return true
	}

	switch {
	case options.Prefix != "":
		index.Prefix(options.Prefix, collect)
		if options.Sort == "-id" {
			slices.Reverse(result)
		}
	case options.Sort == "-id":
		index.Descend(collect)
	default:
		index.Ascend(collect)
	}

	return result, nil
}

type SearchOptions struct {
	Filter map[string]interface{} `json:"filter"`
	Skip   int                    `json:"skip"`
	// Limit <= 0 means no limit.
	Limit int `json:"limit"`
}

func (s *Service) Search(options SearchOptions) ([]*Item, error) {

	err := checkFilterFields(options.Filter)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	records := s.store.Records()
	s.mu.Unlock()

	hasFilter := len(options.Filter) > 0
	skip := options.Skip
	limit := options.Limit

	result := []*Item{}
	for i, r := range records {

		if limit > 0 && len(result) >= limit {
			break
		}

		if hasFilter {
			match, err := connor.Match(options.Filter, r.Map())
			if err != nil {
				return nil, fmt.Errorf("%w: match: %s", ErrInvalidArgument, err.Error())
			}
			if !match {
				continue
			}
		}

		if skip > 0 {
			skip--
			continue
		}

		result = append(result, &Item{Index: i, Record: r})
	}

	return result, nil
}

func checkFilterFields(filter map[string]interface{}) error {

	available := map[string]bool{}
	for _, name := range record.FieldNames() {
		available[name] = true
	}

	for key := range filter {
		if len(key) > 0 && key[0] == '$' {
			continue
		}
		if !available[key] {
			return fmt.Errorf("%w: unknown field '%s', available %v", ErrInvalidArgument, key, utils.GetKeys(available))
		}
	}

	return nil
}

// History returns the journal. Without a journal it is empty.
func (s *Service) History() ([]*journal.Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.journal == nil {
		return []*journal.Command{}, nil
	}
	return journal.Read(s.journal.Filename)
}
