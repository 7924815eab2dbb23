package apirecordsv1

import (
	"context"
	"net/http"

	"github.com/fulldump/dataform/service"
)

func listRecords(ctx context.Context, r *http.Request) ([]*RecordResponse, error) {

	query := r.URL.Query()

	items, err := GetServicer(ctx).List(service.ListOptions{
		Sort:   query.Get("sort"),
		Prefix: query.Get("prefix"),
	})
	if err != nil {
		return nil, err
	}

	return newRecordResponses(items), nil
}
