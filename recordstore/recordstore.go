package recordstore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/fulldump/dataform/record"
)

const DefaultFilename = "records.txt"

type Options struct {
	// Filename of the backing file, resolved against the working directory
	// when relative. Defaults to DefaultFilename.
	Filename string

	// AtomicRewrite makes DeleteAt write a temporary file and rename it over
	// the backing file. Off by default: a crash in the middle of a rewrite
	// can then leave a truncated file.
	AtomicRewrite bool

	Logger *zap.Logger
}

// Store keeps the records of a single line-oriented backing file in memory.
//
// It is not safe for concurrent use and assumes it is the only writer of the
// backing file: two processes (or two stores) on the same file will lose
// each other's writes.
type Store struct {
	filename      string
	atomicRewrite bool
	logger        *zap.Logger

	records   []record.Record
	malformed []int
}

func New(options Options) *Store {

	filename := options.Filename
	if filename == "" {
		filename = DefaultFilename
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		filename:      filename,
		atomicRewrite: options.AtomicRewrite,
		logger:        logger.With(zap.String("file", filename)),
		records:       []record.Record{},
	}
}

func (s *Store) Filename() string {
	return s.filename
}

// Append writes r as the last line of the backing file and reloads.
func (s *Store) Append(r record.Record) error {

	err := appendLine(s.filename, r.Line())
	if err != nil {
		s.logger.Error("append record", zap.Error(err))
		return fmt.Errorf("append record: %w", err)
	}

	return s.Reload()
}

func appendLine(filename, line string) (err error) {

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	_, err = io.WriteString(f, line+"\n")
	return err
}

// Reload replaces the in-memory records with the content of the backing file.
// A missing file is an empty store.
func (s *Store) Reload() error {

	f, err := os.Open(s.filename)
	if errors.Is(err, os.ErrNotExist) {
		s.records = []record.Record{}
		s.malformed = nil
		return nil
	}
	if err != nil {
		s.logger.Error("open for reload", zap.Error(err))
		return fmt.Errorf("open for reload: %w", err)
	}
	defer f.Close()

	records := []record.Record{}
	var malformed []int

	reader := bufio.NewReaderSize(f, 64*1024)

	lineNumber := 0
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			s.logger.Error("read for reload", zap.Error(err))
			return fmt.Errorf("read for reload: %w", err)
		}
		if line == "" && err != nil {
			break
		}
		lineNumber++

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			r := record.Parse(line)
			if !r.Valid() {
				s.logger.Warn("malformed line",
					zap.Int("line", lineNumber),
					zap.Int("fields", len(r)),
				)
				malformed = append(malformed, len(records))
			}
			records = append(records, r)
		}

		if err != nil {
			break
		}
	}

	s.records = records
	s.malformed = malformed

	return nil
}

// FindByKey returns the first record whose id equals id exactly.
func (s *Store) FindByKey(id string) (int, record.Record, bool) {
	for i, r := range s.records {
		key, ok := r.ID()
		if ok && key == id {
			return i, r.Clone(), true
		}
	}
	return -1, nil, false
}

// DeleteAt removes the record at index and rewrites the whole backing file.
// An index out of range does nothing.
func (s *Store) DeleteAt(index int) error {

	if index < 0 || index >= len(s.records) {
		return nil
	}

	s.records = append(s.records[:index], s.records[index+1:]...)

	err := s.rewrite()
	if err != nil {
		s.logger.Error("rewrite after delete", zap.Int("index", index), zap.Error(err))
		return fmt.Errorf("rewrite after delete: %w", err)
	}

	return s.Reload()
}

func (s *Store) rewrite() error {
	if s.atomicRewrite {
		return rewriteAtomic(s.filename, s.records)
	}
	return rewriteInPlace(s.filename, s.records)
}

func writeLines(w io.Writer, records []record.Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if _, err := bw.WriteString(r.Line() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func rewriteInPlace(filename string, records []record.Record) (err error) {

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	return writeLines(f, records)
}

func rewriteAtomic(filename string, records []record.Record) error {

	dir, name := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	err = writeLines(tmp, records)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return err
	}

	err = os.Rename(tmpName, filename)
	if err != nil {
		os.Remove(tmpName)
		return err
	}

	return nil
}

// Records returns a copy of the records in file order.
func (s *Store) Records() []record.Record {
	result := make([]record.Record, len(s.records))
	for i, r := range s.records {
		result[i] = r.Clone()
	}
	return result
}

func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) IsEmpty() bool {
	return len(s.records) == 0
}

// Malformed returns the positions of the records that did not split into
// record.FieldCount fields on the last reload.
func (s *Store) Malformed() []int {
	return append([]int{}, s.malformed...)
}
