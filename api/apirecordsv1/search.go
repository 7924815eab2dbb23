package apirecordsv1

import (
	"context"

	"github.com/fulldump/dataform/service"
)

func search(ctx context.Context, input *service.SearchOptions) ([]*RecordResponse, error) {

	items, err := GetServicer(ctx).Search(*input)
	if err != nil {
		return nil, err
	}

	return newRecordResponses(items), nil
}
