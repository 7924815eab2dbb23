package apirecordsv1

import (
	"context"
	"fmt"

	"github.com/fulldump/dataform/service"
)

type removeRequest struct {
	Index *int `json:"index"`
}

func remove(ctx context.Context, input *removeRequest) (*RecordResponse, error) {

	if input.Index == nil {
		return nil, fmt.Errorf("%w: index is required", service.ErrInvalidArgument)
	}

	item, err := GetServicer(ctx).Remove(*input.Index)
	if err != nil {
		return nil, err
	}

	return newRecordResponse(item), nil
}
