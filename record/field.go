package record

import "fmt"

type Field int

const (
	FullName Field = iota
	ID
	Gender
	Province
	DateOfBirth
)

const FieldCount = 5

var fieldNames = [FieldCount]string{
	"fullName",
	"id",
	"gender",
	"province",
	"dateOfBirth",
}

func Fields() []Field {
	return []Field{FullName, ID, Gender, Province, DateOfBirth}
}

func (f Field) Known() bool {
	return f >= 0 && int(f) < FieldCount
}

func (f Field) String() string {
	if !f.Known() {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("unknown field '%s'", name)
}

// FieldNames returns the field names in positional order.
func FieldNames() []string {
	return append([]string{}, fieldNames[:]...)
}
