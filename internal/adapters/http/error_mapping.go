package httpadapter

import (
	"net/http"

	"github.com/tbarantsev/email-insights/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrNoData):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrSourceUnreachable), domain.IsKind(err, domain.ErrSourceShape):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
