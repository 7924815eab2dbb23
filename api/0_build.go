package api

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/dataform/api/apirecordsv1"
	"github.com/fulldump/dataform/service"
)

func Build(s service.Servicer, version string, apiKey, apiSecret string) *box.B {

	b := box.NewBox()

	v1 := b.Resource("/v1")
	v1.WithInterceptors(
		box.SetResponseHeader("Content-Type", "application/json"),
		Authenticate(apiKey, apiSecret),
		injectServicer(s),
	)
	apirecordsv1.BuildV1Records(v1)

	b.Resource("/release").
		WithActions(box.Get(func() string {
			return version
		}).WithName("release"))

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apirecordsv1.SetServicer(ctx, s))
		}
	}
}
