package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, userUID, name, email, passwordHash, role string) {
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`,
		userUID, name, email, passwordHash, role)
	require.NoError(t, err)
}

// CreateCategory создает тестовую категорию и возвращает её ID
func (f *TestDataFactory) CreateCategory(t *testing.T, name, description, image string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO categories (name, description, image)
		VALUES ($1, $2, $3) RETURNING id`,
		name, description, image).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateDonation создает тестовое пожертвование и возвращает его ID
func (f *TestDataFactory) CreateDonation(t *testing.T, userUID string, categoryID int,
	amount float64, paymentID, status, message string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO donations
		(user_uid, category_id, amount, payment_id, status, message)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		userUID, categoryID, amount, paymentID, status, message).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateDonationAt создает тестовое пожертвование с заданным временем создания,
// используется в тестах сортировки списков
func (f *TestDataFactory) CreateDonationAt(t *testing.T, userUID string, categoryID int,
	amount float64, paymentID, status string, createdAt time.Time) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO donations
		(user_uid, category_id, amount, payment_id, status, message, created_at)
		VALUES ($1, $2, $3, $4, $5, '', $6) RETURNING id`,
		userUID, categoryID, amount, paymentID, status, createdAt).Scan(&id)
	require.NoError(t, err)
	return id
}

// TestVerification содержит методы проверки состояния базы в тестах
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый экземпляр TestVerification
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyCategoryTotal проверяет накопленную сумму пожертвований категории
func (v *TestVerification) VerifyCategoryTotal(t *testing.T, categoryID int, expectedTotal float64) {
	var total float64
	err := v.storage.DB.QueryRow("SELECT total_donations FROM categories WHERE id = $1", categoryID).
		Scan(&total)
	require.NoError(t, err)
	require.Equal(t, expectedTotal, total)
}

// VerifyDonationExists проверяет, что пожертвование создано с ожидаемым статусом
func (v *TestVerification) VerifyDonationExists(t *testing.T, donationID int, expectedStatus string) {
	var status string
	err := v.storage.DB.QueryRow("SELECT status FROM donations WHERE id = $1", donationID).
		Scan(&status)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, status)
}

// VerifyCategoryDeleted проверяет, что категория удалена
func (v *TestVerification) VerifyCategoryDeleted(t *testing.T, categoryID int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM categories WHERE id = $1", categoryID).
		Scan(&count)
	require.NoError(t, err)
	require.Zero(t, count)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			if err = storage.DB.Ping(); err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	_, err = storage.DB.Exec(`
        CREATE EXTENSION IF NOT EXISTS "pgcrypto";

        CREATE TABLE users (
            uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'donor',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE categories (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            description TEXT NOT NULL,
            image TEXT NOT NULL DEFAULT 'https://via.placeholder.com/300',
            total_donations NUMERIC NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE donations (
            id SERIAL PRIMARY KEY,
            user_uid UUID NOT NULL REFERENCES users(uid),
            category_id INT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
            amount NUMERIC NOT NULL CHECK (amount > 0),
            payment_id TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            message TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		_ = storage.DB.Close()
		_ = postgresContainer.Terminate(ctx)
	}
	return storage, cleanup
}
