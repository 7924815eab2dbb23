package apirecordsv1

import (
	"github.com/fulldump/box"
)

func BuildV1Records(v1 *box.R) *box.R {

	records := v1.Resource("/records").
		WithActions(
			box.Get(listRecords).WithName("listRecords"),
			box.Post(insert).WithName("insert"),
			box.ActionPost(find).WithName("find"),
			box.ActionPost(remove).WithName("remove"),
			box.ActionPost(reload).WithName("reload"),
			box.ActionPost(search).WithName("search"),
		)

	v1.Resource("/history").
		WithActions(
			box.Get(history).WithName("history"),
		)

	return records
}
