package customer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var customerColumns = []string{"id", "user_id", "phone", "birth_date", "created_at", "updated_at"}
var addressColumns = []string{"customer_id", "state", "city", "street", "number"}

func TestEnsureCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO customers \\(user_id\\)").
			WithArgs(uint(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		id, err := EnsureCustomer(context.Background(), db, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO customers").WillReturnError(errors.New("db error"))
		_, err := EnsureCustomer(context.Background(), db, 3)
		assert.ErrorContains(t, err, "ensure customer")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetOrCreateByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)
	now := time.Now()

	t.Run("With Address", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO customers \\(user_id\\)").
			WithArgs(uint(3)).
			WillReturnRows(sqlmock.NewRows(customerColumns).
				AddRow(int64(7), int64(3), "555", time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC), now, now))
		mock.ExpectQuery("FROM addresses WHERE customer_id = \\$1").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(addressColumns).AddRow(int64(7), "CA", "LA", "Main", 12))

		c, err := repo.GetOrCreateByUserID(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, int64(7), c.ID)
		require.NotNil(t, c.BirthDate)
		assert.Equal(t, "1990-04-02", *c.BirthDate)
		require.NotNil(t, c.Address)
		assert.Equal(t, 12, c.Address.Number)
	})

	t.Run("Without Address", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO customers").
			WillReturnRows(sqlmock.NewRows(customerColumns).AddRow(int64(8), int64(4), "", nil, now, now))
		mock.ExpectQuery("FROM addresses").
			WillReturnRows(sqlmock.NewRows(addressColumns))

		c, err := repo.GetOrCreateByUserID(context.Background(), 4)
		require.NoError(t, err)
		assert.Nil(t, c.BirthDate)
		assert.Nil(t, c.Address)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)
	now := time.Now()
	addr := &AddressInput{State: "CA", City: "LA", Street: "Main", Number: 12}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO customers \\(user_id, phone, birth_date\\)").
			WithArgs(uint(3), "555", nil).
			WillReturnRows(sqlmock.NewRows(customerColumns).AddRow(int64(7), int64(3), "555", nil, now, now))
		mock.ExpectQuery("INSERT INTO addresses").
			WithArgs(int64(7), "CA", "LA", "Main", 12).
			WillReturnRows(sqlmock.NewRows(addressColumns).AddRow(int64(7), "CA", "LA", "Main", 12))
		mock.ExpectCommit()

		c, err := repo.UpdateProfile(context.Background(), 3, "555", nil, addr)
		require.NoError(t, err)
		assert.Equal(t, "Main", c.Address.Street)
	})

	t.Run("Address Failure Rolls Back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO customers").
			WillReturnRows(sqlmock.NewRows(customerColumns).AddRow(int64(7), int64(3), "555", nil, now, now))
		mock.ExpectQuery("INSERT INTO addresses").WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		_, err := repo.UpdateProfile(context.Background(), 3, "555", nil, addr)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
