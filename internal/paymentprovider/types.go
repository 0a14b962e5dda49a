// Package paymentprovider реализует HTTP-клиент платёжного провайдера Stripe.
//
// Клиент создаёт payment intent на стороне провайдера и возвращает
// client_secret, который фронтенд использует для подтверждения платежа.
// Локально ничего не сохраняется.
package paymentprovider

// CreatePaymentIntentRequest представляет запрос на создание payment intent.
// Amount задаётся в минимальных единицах валюты (центах).
type CreatePaymentIntentRequest struct {
	Amount   int64             // сумма в минимальных единицах, например 1000 = 10.00
	Currency string            // код валюты, например "lkr"
	Metadata map[string]string // дополнительная инфа: user_uid, user_name
}

// PaymentIntent представляет ответ провайдера на создание payment intent.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// apiError — тело ошибки Stripe API.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
