package handlers

import (
	"net/http"
	"strconv"

	"github.com/alphacoop/gateway-settings-api/audit"
)

// Audit is a HTTP server for the settings change history.
type Audit struct {
	service *audit.Service
}

func NewAudit(service *audit.Service) *Audit {
	return &Audit{service}
}

func (a *Audit) List() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		limit, err := strconv.Atoi(r.FormValue("limit"))
		if err != nil {
			limit = 0
		}

		offset, err := strconv.Atoi(r.FormValue("offset"))
		if err != nil {
			offset = 0
		}

		ee, err := a.service.List(limit, offset)
		if err != nil {
			handleError(rw, r, err)
			return
		}

		res := make([]audit.EntryJSON, len(ee))
		for i, e := range ee {
			res[i] = e.ToJSON()
		}

		handleJsonResponse(rw, http.StatusOK, res)
	})
}
