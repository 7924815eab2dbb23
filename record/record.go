package record

import (
	"errors"
	"fmt"
	"strings"
)

// Separator joins the fields of a record on disk. There is no quoting, so a
// field holding a comma produces a line that no longer splits into five
// fields.
const Separator = ","

var (
	ErrMissingField = errors.New("missing field")
	ErrMalformed    = errors.New("malformed record")
)

// Record is the raw positional tuple as read from or written to one line:
// [fullName, id, gender, province, dateOfBirth]. A record read from a damaged
// line keeps whatever the split produced.
type Record []string

func New(fullName, id, gender, province, dateOfBirth string) Record {
	return Record{fullName, id, gender, province, dateOfBirth}
}

// Parse splits a line into a record. The raw split is kept even when it does
// not yield exactly FieldCount fields.
func Parse(line string) Record {
	return Record(strings.Split(line, Separator))
}

// Line returns the on-disk representation without line terminator.
func (r Record) Line() string {
	return strings.Join(r, Separator)
}

func (r Record) Valid() bool {
	return len(r) == FieldCount
}

// Err reports ErrMalformed when the record does not hold exactly FieldCount
// fields.
func (r Record) Err() error {
	if r.Valid() {
		return nil
	}
	return fmt.Errorf("%w: %d fields, expected %d", ErrMalformed, len(r), FieldCount)
}

func (r Record) Get(f Field) (string, error) {
	if !f.Known() {
		return "", fmt.Errorf("field %d: %w", int(f), ErrMissingField)
	}
	if int(f) >= len(r) {
		return "", fmt.Errorf("%s: %w", f, ErrMissingField)
	}
	return r[f], nil
}

// ID returns the lookup key and false when the record is too short to have
// one.
func (r Record) ID() (string, bool) {
	id, err := r.Get(ID)
	return id, err == nil
}

// Map returns the fields present in the record keyed by their name.
func (r Record) Map() map[string]interface{} {
	m := map[string]interface{}{}
	for _, f := range Fields() {
		v, err := r.Get(f)
		if err != nil {
			break
		}
		m[f.String()] = v
	}
	return m
}

func (r Record) Clone() Record {
	return append(Record{}, r...)
}

func (r Record) Equal(other Record) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}
	return true
}
