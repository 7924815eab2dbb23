package apirecordsv1

import (
	"context"
	"fmt"

	"github.com/fulldump/dataform/service"
)

type findRequest struct {
	ID string `json:"id"`
}

func find(ctx context.Context, input *findRequest) (*RecordResponse, error) {

	if input.ID == "" {
		return nil, fmt.Errorf("%w: id is required", service.ErrInvalidArgument)
	}

	item, err := GetServicer(ctx).Find(input.ID)
	if err != nil {
		return nil, err
	}

	return newRecordResponse(item), nil
}
