package rest

import (
	"encoding/json"
	"net/http"

	"github.com/openlot/auction-exchange-backend/internal/domain/errors"
	"github.com/openlot/auction-exchange-backend/internal/service/admission"
)

// ErrorResponse is the body returned for every rejected or failed call.
type ErrorResponse struct {
	Reason  string                 `json:"reason,omitempty"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeRejection maps an admission decision onto the wire. The reason
// kind is the contract; the message is advisory.
func writeRejection(w http.ResponseWriter, d admission.Decision) {
	status := http.StatusUnprocessableEntity
	resp := ErrorResponse{Reason: string(d.Reason)}
	if d.Err != nil {
		status = d.Err.StatusCode
		resp.Code = d.Err.Code
		resp.Message = d.Err.Message
		resp.Details = d.Err.Details
	}
	writeJSON(w, status, resp)
}

func writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Code: "INTERNAL_ERROR", Message: "internal error"}
	if appErr, ok := err.(*errors.AppError); ok {
		resp.Code = appErr.Code
		resp.Message = appErr.Message
		resp.Details = appErr.Details
	}
	writeJSON(w, errors.GetStatusCode(err), resp)
}

func writeValidationError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    "INVALID_REQUEST",
		Message: err.Error(),
	})
}
