// Package handler exposes the phone API over HTTP.
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"phonekit/internal/phoneapi/service"
	"phonekit/internal/phoneapi/transport"
	"phonekit/platform/httpkit"
	"phonekit/platform/validator"
)

// Handler handles HTTP requests for phone lookups.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new phone API handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Parse parses a number and returns the full lookup result.
// POST /api/v1/phone/parse
func (h *Handler) Parse(c *gin.Context) {
	var req transport.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Lookup(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Validate reports validity and classification of a number.
// POST /api/v1/phone/validate
func (h *Handler) Validate(c *gin.Context) {
	var req transport.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Validate(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Format renders a number in one of the canonical presentations.
// POST /api/v1/phone/format
func (h *Handler) Format(c *gin.Context) {
	var req transport.FormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.FormatNumber(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// NddPrefix returns a region's national dialling prefix.
// GET /api/v1/phone/regions/:region/ndd?stripNonDigits=true
func (h *Handler) NddPrefix(c *gin.Context) {
	region := c.Param("region")
	if err := h.val.Var(region, "region"); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid region code", nil)
		return
	}
	stripNonDigits := strings.EqualFold(c.Query("stripNonDigits"), "true")

	result, err := h.svc.NddPrefix(strings.ToUpper(region), stripNonDigits)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RegionForCountryCode resolves the main region of a calling code.
// GET /api/v1/phone/country-codes/:code/region
func (h *Handler) RegionForCountryCode(c *gin.Context) {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil || code <= 0 {
		httpkit.Error(c, http.StatusBadRequest, "invalid country calling code", nil)
		return
	}

	result, err := h.svc.RegionForCountryCode(code)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ReloadMetadata refetches and swaps the metadata document.
// POST /api/v1/admin/metadata/reload
func (h *Handler) ReloadMetadata(c *gin.Context) {
	result, err := h.svc.ReloadMetadata(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
