package service

import (
	"errors"

	"github.com/fulldump/dataform/journal"
	"github.com/fulldump/dataform/record"
)

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Item is a record together with its position in the backing file.
type Item struct {
	Index  int
	Record record.Record
}

type Servicer interface {
	GetStatus() string
	Insert(r record.Record) (*Item, error)
	Find(id string) (*Item, error)
	Remove(index int) (*Item, error)
	Reload() (int, error)
	List(options ListOptions) ([]*Item, error)
	Search(options SearchOptions) ([]*Item, error)
	History() ([]*journal.Command, error)
}
