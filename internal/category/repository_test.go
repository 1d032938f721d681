package category

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categoryColumns = []string{"id", "title", "description", "top_product_id", "products_count"}

func TestRepository_AddCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	input := CreateCategoryInput{Title: "Electronics", Description: "gadgets"}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "title", "description", "top_product_id"}).
			AddRow(int64(1), "Electronics", "gadgets", nil)

		mock.ExpectQuery("INSERT INTO categories").
			WithArgs("Electronics", "gadgets", nil).
			WillReturnRows(rows)

		res, err := repo.AddCategory(context.Background(), input)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), res.ID)
		assert.Nil(t, res.TopProductID)
	})

	t.Run("Unknown Top Product", func(t *testing.T) {
		top := int64(99)
		mock.ExpectQuery("INSERT INTO categories").
			WithArgs("Electronics", "gadgets", int64(99)).
			WillReturnError(&pq.Error{Code: "23503"})

		_, err := repo.AddCategory(context.Background(), CreateCategoryInput{Title: "Electronics", Description: "gadgets", TopProductID: &top})
		assert.ErrorIs(t, err, ErrTopProductAbsent)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO categories").WillReturnError(errors.New("db error"))
		_, err := repo.AddCategory(context.Background(), input)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetCategories(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success_NoFilter", func(t *testing.T) {
		limit := int32(10)
		page := int32(1)

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM categories c").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		rows := sqlmock.NewRows(categoryColumns).
			AddRow(int64(1), "Books", "", nil, int64(3)).
			AddRow(int64(2), "Toys", "", int64(7), int64(0))

		mock.ExpectQuery("FROM categories c ORDER BY c.title ASC LIMIT \\$1 OFFSET \\$2").
			WithArgs(limit, int32(0)).
			WillReturnRows(rows)

		res, total, err := repo.GetCategories(context.Background(), nil, &limit, &page)
		assert.NoError(t, err)
		assert.Len(t, res, 2)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, int64(3), res[0].ProductsCount)
		require.NotNil(t, res[1].TopProductID)
		assert.Equal(t, int64(7), *res[1].TopProductID)
	})

	t.Run("Success_WithFilter", func(t *testing.T) {
		filter := "elec"
		limit := int32(10)
		page := int32(2)

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM categories c WHERE c.title ILIKE \\$1").
			WithArgs("%elec%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

		rows := sqlmock.NewRows(categoryColumns).AddRow(int64(11), "Electronics", "", nil, int64(0))

		mock.ExpectQuery("WHERE c.title ILIKE \\$1 ORDER BY c.title ASC LIMIT \\$2 OFFSET \\$3").
			WithArgs("%elec%", limit, int32(10)).
			WillReturnRows(rows)

		res, total, err := repo.GetCategories(context.Background(), &filter, &limit, &page)
		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, int64(11), total)
	})

	t.Run("Count Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("db down"))
		_, _, err := repo.GetCategories(context.Background(), nil, nil, nil)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetCategoryByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("FROM categories c WHERE c.id = \\$1").
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow(int64(4), "Garden", "outdoor", nil, int64(2)))

		c, err := repo.GetCategoryByID(context.Background(), 4)
		assert.NoError(t, err)
		assert.Equal(t, "Garden", c.Title)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("FROM categories c WHERE c.id = \\$1").
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(categoryColumns))

		_, err := repo.GetCategoryByID(context.Background(), 5)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestRepository_UpdateCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	title := "Home"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE categories SET title = \\$1 WHERE id = \\$2").
			WithArgs("Home", int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("WHERE c.id = \\$1").
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow(int64(4), "Home", "", nil, int64(0)))

		c, err := repo.UpdateCategory(context.Background(), 4, UpdateCategoryInput{Title: &title})
		assert.NoError(t, err)
		assert.Equal(t, "Home", c.Title)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec("UPDATE categories").
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.UpdateCategory(context.Background(), 40, UpdateCategoryInput{Title: &title})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM categories WHERE id = \\$1").
			WithArgs(int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.DeleteCategory(context.Background(), 4))
	})

	t.Run("Foreign Key Race", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM categories").
			WillReturnError(&pq.Error{Code: "23503"})
		assert.ErrorIs(t, repo.DeleteCategory(context.Background(), 4), ErrCategoryInUse)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM categories").
			WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.DeleteCategory(context.Background(), 4), ErrCategoryNotFound)
	})

	t.Run("CountProducts", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products WHERE category_id = \\$1").
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		n, err := repo.CountProducts(context.Background(), 4)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
