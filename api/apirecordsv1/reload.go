package apirecordsv1

import (
	"context"
)

type reloadResponse struct {
	Total int `json:"total"`
}

func reload(ctx context.Context) (*reloadResponse, error) {

	total, err := GetServicer(ctx).Reload()
	if err != nil {
		return nil, err
	}

	return &reloadResponse{Total: total}, nil
}
