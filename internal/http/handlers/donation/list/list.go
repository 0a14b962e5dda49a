// Package list реализует HTTP-обработчик получения списка пожертвований.
//
// Администратор видит все пожертвования, донор — только свои.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/openhearts/openhearts/internal/http/middlewarectx"
	"github.com/openhearts/openhearts/internal/http/response"
	"github.com/openhearts/openhearts/internal/lib/sl"
	"github.com/openhearts/openhearts/internal/models"
)

// Handler обрабатывает запросы на получение списка пожертвований.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списка пожертвований.
type Service interface {
	List(ctx context.Context, userUID, role string) ([]*models.DonationInfo, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список пожертвований
// @Description Возвращает пожертвования текущего пользователя; администратору — все.
// @Tags Donations
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список пожертвований"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /donations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.donation.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authorized, no token"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	donations, err := h.service.List(r.Context(), userUID, role)
	if err != nil {
		log.Error("failed to list donations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list donations"))
		return
	}

	log.Info("success to list donations", slog.Int("count", len(donations)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"donations": donations,
	}))
}
