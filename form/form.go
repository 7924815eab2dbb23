package form

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fulldump/dataform/record"
)

type Store interface {
	Append(r record.Record) error
	Reload() error
	FindByKey(id string) (int, record.Record, bool)
	DeleteAt(index int) error
	IsEmpty() bool
}

type Kind string

const (
	KindInfo  Kind = "info"
	KindError Kind = "error"
)

// Notice is what the form reports to the user after an action.
type Notice struct {
	Kind    Kind
	Title   string
	Message string
}

func (n Notice) String() string {
	return n.Title + ": " + n.Message
}

func info(title, message string) Notice {
	return Notice{Kind: KindInfo, Title: title, Message: message}
}

func failure(title, message string) Notice {
	return Notice{Kind: KindError, Title: title, Message: message}
}

type Form struct {
	Fields    Fields
	Selection Selection

	store  Store
	logger *zap.Logger
}

func New(store Store, logger *zap.Logger) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Form{
		store:  store,
		logger: logger,
	}
}

// CanDelete tells whether a record is loaded and can be deleted.
func (f *Form) CanDelete() bool {
	_, ok := f.Selection.Index()
	return ok
}

// Save appends the typed fields as a new record.
func (f *Form) Save() Notice {

	err := f.Fields.Validate()
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return failure("Validation Error", validationErr.Message)
		}
		return failure("Validation Error", err.Error())
	}

	err = f.store.Append(f.Fields.Record())
	if err != nil {
		f.logger.Error("save record", zap.String("id", f.Fields.ID), zap.Error(err))
		return failure("Error", "Record could not be saved: "+err.Error())
	}

	f.clear()
	return info("Success", "Record saved successfully.")
}

// Find loads the first record with the typed id into the form.
func (f *Form) Find() Notice {

	id := f.Fields.ID
	if id == "" {
		return failure("Validation Error", "Please enter an ID to search.")
	}

	if f.store.IsEmpty() {
		return info("No Records", "No records found.")
	}

	index, r, found := f.store.FindByKey(id)
	if !found {
		return info("Record Not Found", "No record found with ID: "+id)
	}

	fields, err := FromRecord(r)
	if err != nil {
		f.logger.Warn("display record", zap.Int("index", index), zap.Error(err))
		return failure("Error", fmt.Sprintf("Record %d cannot be displayed: %s", index, err.Error()))
	}

	f.Fields = fields
	f.Selection.Select(index)

	return info("Record Found", "Record found with ID: "+id)
}

// Delete removes the loaded record. Without a loaded record nothing happens.
func (f *Form) Delete() (Notice, bool) {

	index, ok := f.Selection.Index()
	if !ok {
		return Notice{}, false
	}

	err := f.store.DeleteAt(index)
	if err != nil {
		f.logger.Error("delete record", zap.Int("index", index), zap.Error(err))
		return failure("Error", "Record could not be deleted: "+err.Error()), true
	}

	f.clear()
	return info("Success", "Record deleted successfully."), true
}

// Restore discards whatever is typed or loaded.
func (f *Form) Restore() {
	f.clear()
}

func (f *Form) clear() {
	f.Fields.Clear()
	f.Selection.Clear()
}
