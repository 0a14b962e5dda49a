package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/openhearts/openhearts/internal/http/middlewarectx"
	"github.com/openhearts/openhearts/internal/models"
	donation "github.com/openhearts/openhearts/internal/services/donation"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userUID, userName, userEmail string, req models.DummyDonation) (*models.DonationInfo, error) {
	args := m.Called(ctx, userUID, userName, userEmail, req)
	if res := args.Get(0); res != nil {
		return res.(*models.DonationInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func withUser(req *http.Request) *http.Request {
	ctx := context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1")
	ctx = context.WithValue(ctx, middlewarectx.UserName, "Amal")
	ctx = context.WithValue(ctx, middlewarectx.UserEmail, "amal@example.com")
	return req.WithContext(ctx)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	info := &models.DonationInfo{
		Donation: models.Donation{
			ID: 7, UserUID: "uid-1", CategoryID: 1,
			Amount: 250, PaymentID: "pi_123", Status: "completed",
		},
		UserName:     "Amal",
		UserEmail:    "amal@example.com",
		CategoryName: "Education",
	}

	tests := []struct {
		name           string
		body           string
		withAuth       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешная запись пожертвования",
			body:     `{"category":1,"amount":250,"payment_id":"pi_123","message":"for school supplies"}`,
			withAuth: true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", "Amal", "amal@example.com",
					mock.AnythingOfType("models.DummyDonation")).Return(info, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"status":"completed"`,
		},
		{
			name:           "некорректный JSON",
			body:           `not json`,
			withAuth:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "нулевая сумма",
			body:           `{"category":1,"amount":0,"payment_id":"pi_123"}`,
			withAuth:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Amount`,
		},
		{
			name:           "нет payment_id",
			body:           `{"category":1,"amount":250}`,
			withAuth:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field PaymentID is a required field`,
		},
		{
			name:           "нет пользователя в контексте",
			body:           `{"category":1,"amount":250,"payment_id":"pi_123"}`,
			withAuth:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `not authorized, no token`,
		},
		{
			name:     "категория не найдена",
			body:     `{"category":99,"amount":250,"payment_id":"pi_123"}`,
			withAuth: true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", "Amal", "amal@example.com",
					mock.AnythingOfType("models.DummyDonation")).
					Return(nil, donation.ErrCategoryNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `category not found`,
		},
		{
			name:     "ошибка сервиса",
			body:     `{"category":1,"amount":250,"payment_id":"pi_123"}`,
			withAuth: true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", "Amal", "amal@example.com",
					mock.AnythingOfType("models.DummyDonation")).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not create donation`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/donations", strings.NewReader(tt.body))
			if tt.withAuth {
				req = withUser(req)
			}

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
