// Package create реализует HTTP-обработчик создания новых категорий пожертвований.
//
// Handler принимает JSON-запрос с данными категории, валидирует их,
// вызывает бизнес-логику создания через сервис и возвращает созданную категорию.
// Доступен только администраторам.
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

	"github.com/openhearts/openhearts/internal/http/response"
	"github.com/openhearts/openhearts/internal/lib/sl"
	"github.com/openhearts/openhearts/internal/models"
	category "github.com/openhearts/openhearts/internal/services/category"
)

// Handler управляет HTTP-запросами на создание категорий.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики категорий
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания категории.
type Service interface {
	Create(ctx context.Context, req models.DummyCategory) (*models.Category, error)
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
// @Summary Создать категорию
// @Description Создает новую категорию пожертвований. Требует роль администратора.
// @Tags Categories
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyCategory true "Данные новой категории"
// @Success 201 {object} map[string]any "Категория создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или занятое имя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании категории"
// @Router /categories [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCategory
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

	res, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, category.ErrCategoryExists) {
			log.Error("category name already taken", slog.String("name", req.Name))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("category with this name already exists"))
			return
		}
		log.Error("failed to create category", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create category"))
		return
	}

	log.Info("success to create category", slog.Int("id", res.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"category": res,
	}))
}
