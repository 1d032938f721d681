package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// EnsureCustomer resolves the customer of a user, creating the row on first use.
func EnsureCustomer(ctx context.Context, q Querier, userID uint) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO customers (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id
	`, userID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ensure customer: %w", err)
	}
	return id, nil
}

type Repository interface {
	GetOrCreateByUserID(ctx context.Context, userID uint) (*Customer, error)
	UpdateProfile(ctx context.Context, userID uint, phone string, birthDate *time.Time, addr *AddressInput) (*Customer, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const customerReturning = `RETURNING id, user_id, phone, birth_date, created_at, updated_at`

func scanCustomer(row *sql.Row) (*Customer, error) {
	var (
		c     Customer
		birth sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Phone, &birth, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if birth.Valid {
		s := birth.Time.Format(dateLayout)
		c.BirthDate = &s
	}
	return &c, nil
}

func (r *repository) GetOrCreateByUserID(ctx context.Context, userID uint) (*Customer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetOrCreateByUserID"),
		zap.Uint("user_id", userID),
	)

	c, err := scanCustomer(r.db.QueryRowContext(ctx, `
		INSERT INTO customers (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		`+customerReturning, userID))
	if err != nil {
		log.Error("upsert customer failed", zap.Error(err))
		return nil, fmt.Errorf("get customer: %w", err)
	}

	addr, err := r.getAddress(ctx, r.db, c.ID)
	if err != nil {
		log.Error("load address failed", zap.Error(err))
		return nil, err
	}
	c.Address = addr
	return c, nil
}

func (r *repository) getAddress(ctx context.Context, q Querier, customerID int64) (*Address, error) {
	var a Address
	err := q.QueryRowContext(ctx,
		`SELECT customer_id, state, city, street, number FROM addresses WHERE customer_id = $1`,
		customerID,
	).Scan(&a.CustomerID, &a.State, &a.City, &a.Street, &a.Number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get address: %w", err)
	}
	return &a, nil
}

func (r *repository) UpdateProfile(
	ctx context.Context,
	userID uint,
	phone string,
	birthDate *time.Time,
	addr *AddressInput,
) (*Customer, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateProfile"),
		zap.Uint("user_id", userID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var birth sql.NullTime
	if birthDate != nil {
		birth = sql.NullTime{Time: *birthDate, Valid: true}
	}

	c, err := scanCustomer(tx.QueryRowContext(ctx, `
		INSERT INTO customers (user_id, phone, birth_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET phone = EXCLUDED.phone, birth_date = EXCLUDED.birth_date, updated_at = NOW()
		`+customerReturning, userID, phone, birth))
	if err != nil {
		log.Error("upsert customer failed", zap.Error(err))
		return nil, fmt.Errorf("update customer: %w", err)
	}

	if addr != nil {
		var a Address
		err := tx.QueryRowContext(ctx, `
			INSERT INTO addresses (customer_id, state, city, street, number)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (customer_id) DO UPDATE
			SET state = EXCLUDED.state, city = EXCLUDED.city, street = EXCLUDED.street, number = EXCLUDED.number
			RETURNING customer_id, state, city, street, number
		`, c.ID, addr.State, addr.City, addr.Street, addr.Number).
			Scan(&a.CustomerID, &a.State, &a.City, &a.Street, &a.Number)
		if err != nil {
			log.Error("upsert address failed", zap.Error(err))
			return nil, fmt.Errorf("upsert address: %w", err)
		}
		c.Address = &a
	} else {
		c.Address, err = r.getAddress(ctx, tx, c.ID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("customer profile updated", zap.Int64("customer_id", c.ID))
	return c, nil
}
