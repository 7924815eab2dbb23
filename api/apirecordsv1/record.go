package apirecordsv1

import (
	"github.com/fulldump/dataform/record"
	"github.com/fulldump/dataform/service"
)

type RecordResponse struct {
	Index       int      `json:"index"`
	FullName    string   `json:"fullName"`
	ID          string   `json:"id"`
	Gender      string   `json:"gender"`
	Province    string   `json:"province"`
	DateOfBirth string   `json:"dateOfBirth"`
	Malformed   bool     `json:"malformed,omitempty"`
	Raw         []string `json:"raw,omitempty"`
}

func newRecordResponse(item *service.Item) *RecordResponse {

	get := func(f record.Field) string {
		v, _ := item.Record.Get(f)
		return v
	}

	response := &RecordResponse{
		Index:       item.Index,
		FullName:    get(record.FullName),
		ID:          get(record.ID),
		Gender:      get(record.Gender),
		Province:    get(record.Province),
		DateOfBirth: get(record.DateOfBirth),
	}

	if !item.Record.Valid() {
		response.Malformed = true
		response.Raw = item.Record
	}

	return response
}

func newRecordResponses(items []*service.Item) []*RecordResponse {
	result := make([]*RecordResponse, len(items))
	for i, item := range items {
		result[i] = newRecordResponse(item)
	}
	return result
}
