package helper_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resort/helper"
	foodMocks "resort/internal/domains/food/mocks"
	resortMocks "resort/internal/domains/resort/mocks"
	roomMocks "resort/internal/domains/room/mocks"
	roomModel "resort/internal/domains/room/model"
	userMocks "resort/internal/domains/user/mocks"
	userModel "resort/internal/domains/user/model"
	"resort/shared/constant"
	"resort/shared/password"
)

func TestLoadSeed(t *testing.T) {
	data, err := helper.LoadSeed(filepath.Join("..", "seeds", "seed.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "admin", data.Admin.Username)
	require.Len(t, data.Resorts, 3)
	assert.Equal(t, "Paradise Beach Resort", data.Resorts[0].Name)
	require.Len(t, data.Resorts[1].Rooms, 3)
	assert.Equal(t, 4, data.Resorts[1].Rooms[2].Beds)
	assert.InDelta(t, 500.0, data.Resorts[2].Rooms[2].PricePerNight, 0.001)
	assert.Len(t, data.FoodOptions, 6)
}

func TestLoadSeed_Errors(t *testing.T) {
	_, err := helper.LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resorts: [:"), 0o600))

	_, err = helper.LoadSeed(path)
	assert.Error(t, err)
}

type seedMocks struct {
	users   *userMocks.MockUser
	resorts *resortMocks.MockResort
	rooms   *roomMocks.MockRoom
	foods   *foodMocks.MockFoodOption
	seeder  *helper.Seeder
}

func newSeeder(t *testing.T) *seedMocks {
	ctrl := gomock.NewController(t)

	m := &seedMocks{
		users:   userMocks.NewMockUser(ctrl),
		resorts: resortMocks.NewMockResort(ctrl),
		rooms:   roomMocks.NewMockRoom(ctrl),
		foods:   foodMocks.NewMockFoodOption(ctrl),
	}

	m.seeder = helper.NewSeeder(m.users, m.resorts, m.rooms, m.foods)

	return m
}

func sample() helper.SeedData {
	return helper.SeedData{
		Admin: helper.SeedAdmin{Username: "admin", Password: "admin123", Email: "admin@resort.com"},
		Resorts: []helper.SeedResort{
			{
				Name:     "Paradise Beach Resort",
				Location: "Maldives",
				Rooms: []helper.SeedRoom{
					{RoomType: "Eco", Beds: 1, PricePerNight: 100, AvailableCount: 10},
					{RoomType: "Premium", Beds: 2, PricePerNight: 200, AvailableCount: 8},
				},
			},
		},
		FoodOptions: []helper.SeedFoodOption{{CuisineType: "Local", MealPlan: "Full Board", PricePerDay: 80}},
	}
}

func TestSeeder_Run(t *testing.T) {
	t.Run("seeds empty database", func(t *testing.T) {
		m := newSeeder(t)

		m.users.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		m.users.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.Equal(t, constant.RoleAdmin, user.Role)
				assert.NoError(t, password.Verify("admin123", user.PasswordHash))
				assert.Equal(t, constant.ContextSystem, user.CreatedBy)

				return nil
			})
		m.resorts.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		var resortIDs []string

		m.rooms.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, room roomModel.Room) error {
				resortIDs = append(resortIDs, room.ResortID)

				return nil
			}).
			Times(2)
		m.foods.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		seeded, err := m.seeder.Run(context.Background(), sample())

		require.NoError(t, err)
		assert.True(t, seeded)
		require.Len(t, resortIDs, 2)
		assert.Equal(t, resortIDs[0], resortIDs[1])
		assert.NotEmpty(t, resortIDs[0])
	})

	t.Run("skips populated database", func(t *testing.T) {
		m := newSeeder(t)

		m.users.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)

		seeded, err := m.seeder.Run(context.Background(), sample())

		require.NoError(t, err)
		assert.False(t, seeded)
	})

	t.Run("stops at first failure", func(t *testing.T) {
		m := newSeeder(t)

		m.users.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		m.users.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		m.resorts.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		seeded, err := m.seeder.Run(context.Background(), sample())

		require.Error(t, err)
		assert.False(t, seeded)
		assert.Contains(t, err.Error(), "Paradise Beach Resort")
	})
}
