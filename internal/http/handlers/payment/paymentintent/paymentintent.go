// Package paymentintent реализует HTTP-обработчик создания payment intent
// у платёжного провайдера.
//
// Handler принимает сумму в основных единицах валюты, конвертирует её
// в минимальные единицы и возвращает client_secret для подтверждения
// платежа на фронтенде. Запись пожертвования выполняется отдельным запросом
// после подтверждения платежа.
package paymentintent

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/openhearts/openhearts/internal/http/middlewarectx"
	"github.com/openhearts/openhearts/internal/http/response"
	"github.com/openhearts/openhearts/internal/lib/sl"
	"github.com/openhearts/openhearts/internal/models"
	"github.com/openhearts/openhearts/internal/paymentprovider"
)

// Handler управляет HTTP-запросами на создание payment intent.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	client   Client              // Клиент платёжного провайдера
	currency string              // Код валюты платежей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Client описывает интерфейс клиента платёжного провайдера.
type Client interface {
	CreatePaymentIntent(ctx context.Context, req paymentprovider.CreatePaymentIntentRequest) (*paymentprovider.PaymentIntent, error)
}

// New создает новый Handler с переданными логгером, клиентом и валютой.
func New(log *slog.Logger, client Client, currency string) *Handler {
	return &Handler{
		log:      log,
		client:   client,
		currency: currency,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать payment intent
// @Description Создает payment intent у платёжного провайдера и возвращает client_secret.
// @Tags Payment
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyPaymentIntent true "Сумма платежа в основных единицах валюты"
// @Success 200 {object} map[string]any "client_secret и идентификатор платежа"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неположительная сумма"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка платёжного провайдера"
// @Router /payment/create-payment-intent [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.paymentintent"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPaymentIntent
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

	intent, err := h.client.CreatePaymentIntent(r.Context(), paymentprovider.CreatePaymentIntentRequest{
		Amount:   int64(math.Round(req.Amount * 100)),
		Currency: h.currency,
		Metadata: map[string]string{
			"user_uid":  userUID,
			"user_name": userName,
		},
	})
	if err != nil {
		log.Error("failed to create payment intent", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create payment intent"))
		return
	}

	log.Info("payment intent created", slog.String("payment_intent_id", intent.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
	}))
}
