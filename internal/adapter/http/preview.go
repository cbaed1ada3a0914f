package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/couchcryptid/daily-brief-service/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
}

type parseCommandRequest struct {
	Text string `json:"text" validate:"max=10000"`
}

type previewReportRequest struct {
	Location    string                     `json:"location" validate:"required,max=200"`
	Personality string                     `json:"personality" validate:"omitempty,oneof=neutral cute brutal emuska"`
	Language    string                     `json:"language" validate:"omitempty,oneof=en es sk"`
	Observation *domain.WeatherObservation `json:"observation" validate:"required"`
}

type previewReportResponse struct {
	Condition domain.WeatherCondition `json:"condition"`
	Report    string                  `json:"report"`
}

func (s *Server) handleParseCommand(w http.ResponseWriter, r *http.Request) {
	var req parseCommandRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, domain.ParseCommand(req.Text))
}

func (s *Server) handlePreviewReport(w http.ResponseWriter, r *http.Request) {
	var req previewReportRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	personality, language, _ := domain.NormalizeProfile(req.Personality, req.Language)
	obs := *req.Observation
	writeJSON(w, http.StatusOK, previewReportResponse{
		Condition: domain.ClassifyCondition(obs),
		Report:    s.builder.GenerateWeatherReport(obs, req.Location, personality, language),
	})
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}
