package apirecordsv1

import (
	"context"
	"net/http"

	"github.com/fulldump/dataform/form"
)

func insert(ctx context.Context, w http.ResponseWriter, input *form.Fields) (*RecordResponse, error) {

	err := input.Validate()
	if err != nil {
		return nil, err
	}

	item, err := GetServicer(ctx).Insert(input.Record())
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return newRecordResponse(item), nil
}
