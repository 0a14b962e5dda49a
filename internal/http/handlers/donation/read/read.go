// Package read реализует HTTP-обработчик получения пожертвования по ID.
//
// Донор может читать только свои пожертвования, администратор — любые.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/openhearts/openhearts/internal/http/middlewarectx"
	"github.com/openhearts/openhearts/internal/http/response"
	"github.com/openhearts/openhearts/internal/lib/sl"
	"github.com/openhearts/openhearts/internal/models"
	donation "github.com/openhearts/openhearts/internal/services/donation"
)

// Handler обрабатывает запросы на получение пожертвования по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения пожертвования.
type Service interface {
	Read(ctx context.Context, id int, userUID, role string) (*models.DonationInfo, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить пожертвование
// @Description Возвращает пожертвование по ID с данными владельца и категории.
// @Tags Donations
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID пожертвования"
// @Success 200 {object} map[string]any "Пожертвование"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Чужое пожертвование"
// @Failure 404 {object} response.ErrorResponse "Пожертвование не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /donations/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.donation.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authorized, no token"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	res, err := h.service.Read(r.Context(), id, userUID, role)
	if err != nil {
		switch {
		case errors.Is(err, donation.ErrDonationNotFound):
			log.Error("donation not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("donation not found"))
		case errors.Is(err, donation.ErrNotOwner):
			log.Error("donation belongs to another user", slog.Int("id", id))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("donation belongs to another user"))
		default:
			log.Error("failed to read donation", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not read donation"))
		}
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"donation": res,
	}))
}
