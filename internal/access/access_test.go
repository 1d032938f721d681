package access

import (
	"context"
	"testing"

	"storefront-be/internal/apperr"
	"storefront-be/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	assert.False(t, FromContext(context.Background()).Authenticated())

	ctx := utils.SetUserContext(context.Background(), 3, "c@shop.test", false)
	c := FromContext(ctx)
	assert.Equal(t, Caller{UserID: 3, Email: "c@shop.test"}, c)
	assert.True(t, c.Authenticated())
}

func TestGuards(t *testing.T) {
	anon := context.Background()
	customer := utils.SetUserContext(context.Background(), 3, "c@shop.test", false)
	staff := utils.SetUserContext(context.Background(), 9, "s@shop.test", true)

	t.Run("RequireAuthenticated", func(t *testing.T) {
		_, err := RequireAuthenticated(anon)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))

		_, err = RequireAuthenticated(customer)
		assert.NoError(t, err)
	})

	t.Run("RequireStaff", func(t *testing.T) {
		_, err := RequireStaff(anon)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))

		_, err = RequireStaff(customer)
		assert.True(t, apperr.IsForbidden(err))

		c, err := RequireStaff(staff)
		assert.NoError(t, err)
		assert.True(t, c.IsStaff)
	})

	t.Run("RequireOwnerOrStaff", func(t *testing.T) {
		_, err := RequireOwnerOrStaff(customer, 3)
		assert.NoError(t, err)

		_, err = RequireOwnerOrStaff(customer, 4)
		assert.True(t, apperr.IsForbidden(err))

		_, err = RequireOwnerOrStaff(staff, 4)
		assert.NoError(t, err)

		_, err = RequireOwnerOrStaff(anon, 4)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	})
}
