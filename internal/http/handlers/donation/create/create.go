// Package create реализует HTTP-обработчик записи нового пожертвования.
//
// Handler принимает JSON-запрос с категорией, суммой и идентификатором
// подтверждённого платежа, валидирует их, извлекает данные пользователя
// из контекста и возвращает созданную запись пожертвования.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/openhearts/openhearts/internal/http/middlewarectx"
	"github.com/openhearts/openhearts/internal/http/response"
	"github.com/openhearts/openhearts/internal/lib/sl"
	"github.com/openhearts/openhearts/internal/models"
	donation "github.com/openhearts/openhearts/internal/services/donation"
)

// Handler управляет HTTP-запросами на запись пожертвований.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики пожертвований
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики записи пожертвования.
type Service interface {
	Create(ctx context.Context, userUID, userName, userEmail string, req models.DummyDonation) (*models.DonationInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Записать пожертвование
// @Description Записывает завершённое пожертвование текущего пользователя с подтверждённым платежом.
// @Tags Donations
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyDonation true "Данные пожертвования"
// @Success 201 {object} map[string]any "Пожертвование записано"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Категория не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при записи пожертвования"
// @Router /donations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.donation.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyDonation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authorized, no token"))
		return
	}
	userName, _ := r.Context().Value(middlewarectx.UserName).(string)
	userEmail, _ := r.Context().Value(middlewarectx.UserEmail).(string)

	res, err := h.service.Create(r.Context(), userUID, userName, userEmail, req)
	if err != nil {
		if errors.Is(err, donation.ErrCategoryNotFound) {
			log.Error("category not found", slog.Int("category_id", req.CategoryID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("category not found"))
			return
		}
		log.Error("failed to create donation", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create donation"))
		return
	}

	log.Info("success to create donation", slog.Int("id", res.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"donation": res,
	}))
}
