// Package phoneapi provides the phone lookup bounded context module.
package phoneapi

import (
	apphttp "phonekit/internal/http"
	"phonekit/internal/lookupcache"
	"phonekit/internal/phoneapi/handler"
	"phonekit/internal/phoneapi/service"
	"phonekit/phonenumbers"
	"phonekit/phonenumbers/metadata/source"
	"phonekit/platform/logger"
	"phonekit/platform/validator"
)

// Module is the phone lookup module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the phone lookup module.
func NewModule(util *phonenumbers.Util, cache *lookupcache.Cache, metadataSrc source.Source,
	sourceName, defaultRegion string, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(util, cache, metadataSrc, sourceName, defaultRegion, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "phoneapi"
}

// Service returns the service layer for external use (health checks).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the phone routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	phone := ctx.V1.Group("/phone")
	phone.POST("/parse", m.handler.Parse)
	phone.POST("/validate", m.handler.Validate)
	phone.POST("/format", m.handler.Format)
	phone.GET("/regions/:region/ndd", m.handler.NddPrefix)
	phone.GET("/country-codes/:code/region", m.handler.RegionForCountryCode)

	ctx.Admin.POST("/metadata/reload", m.handler.ReloadMetadata)
}
