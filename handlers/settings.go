package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/alphacoop/gateway-settings-api/settings"
)

// Settings is a HTTP server for gateway settings management.
type Settings struct {
	service *settings.Service
}

func NewSettings(service *settings.Service) *Settings {
	return &Settings{service}
}

func (s *Settings) GetSettings() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		res := s.service.GetSettings()
		handleJsonResponse(rw, http.StatusOK, res.ToJSON())
	})
}

func (s *Settings) SetSettings() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		// Check body is not empty
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, r, err)
			return
		}

		// Decode JSON over the current wire form so fields absent from the
		// request body keep their current value
		settingsJSON := s.service.GetSettings().ToJSON()
		if err := json.NewDecoder(r.Body).Decode(&settingsJSON); err != nil {
			handleError(rw, r, InvalidBodyError)
			return
		}

		updated := s.service.UpdateSettings(
			settingsJSON.QRCodeURL,
			settingsJSON.ReceiverName,
			settingsJSON.ReceiverNumber,
		)

		// Return updated version
		handleJsonResponse(rw, http.StatusOK, updated.ToJSON())
	})
}
