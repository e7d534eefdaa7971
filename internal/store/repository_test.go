package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_FindByUser(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM store_profiles").
			WithArgs(testUserID).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "store_name", "phone", "address", "image_url",
				"is_approved", "created_at", "updated_at",
			}).AddRow(testProfileID, testUserID, "Minh Farm", "0901234567", "Da Lat", nil,
				false, time.Now(), time.Now()))

		p, err := repo.FindByUser(ctx, testUserID)

		assert.NoError(t, err)
		assert.Equal(t, "Minh Farm", p.StoreName)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM store_profiles").
			WithArgs(testUserID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByUser(ctx, testUserID)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestRepository_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_PromotesOwner", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE store_profiles").
			WithArgs(testProfileID).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "store_name", "phone", "address", "image_url",
				"is_approved", "created_at", "updated_at",
			}).AddRow(testProfileID, testUserID, "Minh Farm", "0901234567", "Da Lat", nil,
				true, time.Now(), time.Now()))
		mock.ExpectExec("UPDATE users SET role").
			WithArgs(testUserID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		p, err := repo.Approve(ctx, testProfileID)

		assert.NoError(t, err)
		assert.True(t, p.IsApproved)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE store_profiles").
			WithArgs(testProfileID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err = repo.Approve(ctx, testProfileID)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("PromotionFails_RollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE store_profiles").
			WithArgs(testProfileID).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "store_name", "phone", "address", "image_url",
				"is_approved", "created_at", "updated_at",
			}).AddRow(testProfileID, testUserID, "Minh Farm", "0901234567", "Da Lat", nil,
				true, time.Now(), time.Now()))
		mock.ExpectExec("UPDATE users SET role").
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		_, err = repo.Approve(ctx, testProfileID)
		assert.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
