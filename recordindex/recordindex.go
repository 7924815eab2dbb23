// Package recordindex keeps an ordered view of a record snapshot keyed by id.
//
// Ids are not unique, so entries are ordered by id and then by position in
// the snapshot: among duplicates the record stored first comes first.
package recordindex

import (
	"strings"

	"github.com/google/btree"

	"github.com/fulldump/dataform/record"
)

type Entry struct {
	ID       string
	Position int
	Record   record.Record
}

type Index struct {
	btree *btree.BTreeG[*Entry]
}

func less(a, b *Entry) bool {
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return a.Position < b.Position
}

// New indexes records by id. Records without an id are left out.
func New(records []record.Record) *Index {

	index := &Index{
		btree: btree.NewG(32, less),
	}

	for i, r := range records {
		id, ok := r.ID()
		if !ok {
			continue
		}
		index.btree.ReplaceOrInsert(&Entry{
			ID:       id,
			Position: i,
			Record:   r,
		})
	}

	return index
}

func (i *Index) Len() int {
	return i.btree.Len()
}

func (i *Index) Ascend(f func(e *Entry) bool) {
	i.btree.Ascend(func(e *Entry) bool {
		return f(e)
	})
}

func (i *Index) Descend(f func(e *Entry) bool) {
	i.btree.Descend(func(e *Entry) bool {
		return f(e)
	})
}

// Prefix traverses in ascending order the entries whose id starts with prefix.
func (i *Index) Prefix(prefix string, f func(e *Entry) bool) {
	pivot := &Entry{ID: prefix, Position: -1}
	i.btree.AscendGreaterOrEqual(pivot, func(e *Entry) bool {
		if !strings.HasPrefix(e.ID, prefix) {
			return false
		}
		return f(e)
	})
}
