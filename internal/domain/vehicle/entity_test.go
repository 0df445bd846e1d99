//go:build unit

package vehicle_test

import (
	"strings"
	"testing"

	"driveshare/internal/domain/vehicle"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVehicle(t *testing.T) {
	ownerID := uuid.New()

	t.Run("new listing starts pending and unbookable", func(t *testing.T) {
		v, err := vehicle.NewVehicle(ownerID, "Honda Fit", "abc-1234", 4500)
		require.NoError(t, err)
		assert.Equal(t, vehicle.StatusPending, v.Status())
		assert.False(t, v.IsBookable())
	})

	t.Run("name and plate are normalized", func(t *testing.T) {
		v, err := vehicle.NewVehicle(ownerID, "  Honda Fit  ", " abc-1234 ", 4500)
		require.NoError(t, err)
		assert.Equal(t, "Honda Fit", v.Name())
		assert.Equal(t, "ABC-1234", v.Plate())
	})

	t.Run("validation failures", func(t *testing.T) {
		cases := []struct {
			name    string
			v       string
			plate   string
			rate    int64
			wantErr error
		}{
			{"empty name", "  ", "ABC-1234", 4500, vehicle.ErrEmptyName},
			{"name too long", strings.Repeat("x", 256), "ABC-1234", 4500, vehicle.ErrNameTooLong},
			{"empty plate", "Honda Fit", "", 4500, vehicle.ErrEmptyPlate},
			{"negative rate", "Honda Fit", "ABC-1234", -1, vehicle.ErrNegativeRate},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := vehicle.NewVehicle(ownerID, tc.v, tc.plate, tc.rate)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})
}

func TestModeration(t *testing.T) {
	ownerID := uuid.New()

	newPending := func(t *testing.T) *vehicle.Vehicle {
		t.Helper()
		v, err := vehicle.NewVehicle(ownerID, "Honda Fit", "ABC-1234", 4500)
		require.NoError(t, err)
		return v
	}

	t.Run("approve makes the listing bookable", func(t *testing.T) {
		v := newPending(t)
		require.NoError(t, v.Approve())
		assert.Equal(t, vehicle.StatusApproved, v.Status())
		assert.True(t, v.IsBookable())
	})

	t.Run("reject keeps the listing unbookable", func(t *testing.T) {
		v := newPending(t)
		require.NoError(t, v.Reject())
		assert.Equal(t, vehicle.StatusRejected, v.Status())
		assert.False(t, v.IsBookable())
	})

	t.Run("moderation decisions are final", func(t *testing.T) {
		v := newPending(t)
		require.NoError(t, v.Approve())
		assert.ErrorIs(t, v.Approve(), vehicle.ErrAlreadyModerated)
		assert.ErrorIs(t, v.Reject(), vehicle.ErrAlreadyModerated)
	})
}
