package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/wojciechlas/blendsphere-srs/internal/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// decodeAndValidate decodes a JSON request body into dst and runs the
// shared validator over it. An empty body is treated as a zero value so
// endpoints with all-optional fields accept bare requests.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	if r.Body != nil && r.ContentLength != 0 {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(dst); err != nil {
			return errors.NewBadRequestError("invalid JSON body")
		}
	}
	if err := s.validate.Struct(dst); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return errors.NewValidationError(verrs[0].Field(), "failed on rule "+verrs[0].Tag())
		}
		return errors.NewBadRequestError("invalid request")
	}
	return nil
}
