package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quantive/kb-catalog/internal/api/response"
	"github.com/quantive/kb-catalog/internal/domain"
)

var validate = validator.New()

// writeError maps domain errors onto HTTP statuses. Internal store errors
// are never exposed beyond their category.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	var notFoundErr *domain.NotFoundError
	var typeMismatchErr *domain.TypeMismatchError
	var invalidTypeErr *domain.InvalidDocumentTypeError
	var partialErr *domain.DeletionPartialFailureError

	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(w, validationErr.Error())
	case errors.As(err, &notFoundErr):
		response.NotFound(w, notFoundErr.Error())
	case errors.As(err, &typeMismatchErr):
		response.Conflict(w, typeMismatchErr.Error())
	case errors.As(err, &invalidTypeErr):
		response.Conflict(w, invalidTypeErr.Error())
	case errors.As(err, &partialErr):
		response.BadGateway(w, "deletion failed at stage "+partialErr.Stage+"; retry the request")
	default:
		response.InternalError(w, "internal error")
	}
}
