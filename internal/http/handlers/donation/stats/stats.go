// Package stats реализует HTTP-обработчик сводной статистики пожертвований.
//
// Возвращает общую сумму, число уникальных доноров и разбивку по категориям
// для завершённых пожертвований. Доступен только администраторам.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/openhearts/openhearts/internal/http/response"
	"github.com/openhearts/openhearts/internal/lib/sl"
	"github.com/openhearts/openhearts/internal/models"
)

// Handler обрабатывает запросы на получение сводной статистики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики агрегации статистики.
type Service interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статистика пожертвований
// @Description Возвращает сводную статистику по завершённым пожертвованиям. Требует роль администратора.
// @Tags Donations
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Сводная статистика"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /donations/stats/total [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.donation.stats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error("failed to count stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not count stats"))
		return
	}

	log.Info("success to count stats",
		slog.Float64("total_amount", res.TotalAmount), slog.Int("total_donors", res.TotalDonors))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"stats": res,
	}))
}
