// Package models содержит доменные структуры платформы пожертвований:
// пользователей, категории, пожертвования, а также вспомогательные типы
// для приёма данных из JSON-запросов и агрегированной статистики.
package models

import "time"

// User представляет зарегистрированного пользователя платформы.
// PasswordHash никогда не сериализуется в JSON-ответы.
type User struct {
	UID          string    `json:"uid"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // "donor" или "admin"
	CreatedAt    time.Time `json:"created_at"`
}

// Category представляет категорию пожертвований (например, "Education").
// TotalDonations — накопленная сумма завершённых пожертвований в категорию.
type Category struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Image          string    `json:"image"`
	TotalDonations float64   `json:"total_donations"`
	CreatedAt      time.Time `json:"created_at"`
}

// Donation представляет одно пожертвование. UserUID и CategoryID
// неизменяемы после создания записи.
type Donation struct {
	ID         int       `json:"id"`
	UserUID    string    `json:"user_uid"`
	CategoryID int       `json:"category_id"`
	Amount     float64   `json:"amount"`
	PaymentID  string    `json:"payment_id"`
	Status     string    `json:"status"` // pending | completed | failed
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// DonationInfo — пожертвование, дополненное данными владельца и категории,
// используется в списках и ответах на чтение.
type DonationInfo struct {
	Donation
	UserName     string `json:"user_name"`
	UserEmail    string `json:"user_email"`
	CategoryName string `json:"category_name"`
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// DummyLogin используется для приёма учетных данных из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// DummyCategory используется для приёма данных категории из JSON-запроса.
type DummyCategory struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image" validate:"omitempty,url"`
}

// DummyCategoryUpdate — частичное обновление категории: меняются только
// переданные поля.
type DummyCategoryUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Image       *string `json:"image" validate:"omitempty,url"`
}

// DummyDonation используется для приёма данных пожертвования из JSON-запроса.
// PaymentID — идентификатор подтверждённого платежа у платёжного провайдера.
type DummyDonation struct {
	CategoryID int     `json:"category" validate:"required,gt=0"`
	Amount     float64 `json:"amount" validate:"required,gte=1"`
	PaymentID  string  `json:"payment_id" validate:"required"`
	Message    string  `json:"message" validate:"omitempty,max=500"`
}

// DummyPaymentIntent используется для приёма суммы будущего платежа
// из JSON-запроса. Сумма задаётся в основных единицах валюты.
type DummyPaymentIntent struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// CategoryStat — агрегат по одной категории: сумма и количество
// завершённых пожертвований.
type CategoryStat struct {
	CategoryID   int     `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Total        float64 `json:"total"`
	Count        int     `json:"count"`
}

// Stats — сводная статистика по завершённым пожертвованиям.
type Stats struct {
	TotalAmount         float64        `json:"total_amount"`
	TotalDonors         int            `json:"total_donors"`
	DonationsByCategory []CategoryStat `json:"donations_by_category"`
}

// DonationReceipt — сообщение очереди для отправки письма-квитанции донору.
type DonationReceipt struct {
	Email        string  `json:"email"`
	UserName     string  `json:"user_name"`
	CategoryName string  `json:"category_name"`
	Amount       float64 `json:"amount"`
	Message      string  `json:"message,omitempty"`
}
