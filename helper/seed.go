package helper

import (
	"context"
	"fmt"
	"os"

	foodModel "resort/internal/domains/food/model"
	foodRepository "resort/internal/domains/food/repository"
	resortModel "resort/internal/domains/resort/model"
	resortRepository "resort/internal/domains/resort/repository"
	roomModel "resort/internal/domains/room/model"
	roomRepository "resort/internal/domains/room/repository"
	userModel "resort/internal/domains/user/model"
	userRepository "resort/internal/domains/user/repository"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	gModel "resort/shared/model"
	"resort/shared/password"
	"resort/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type SeedAdmin struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
}

type SeedRoom struct {
	RoomType       string  `yaml:"room_type"`
	Beds           int     `yaml:"beds"`
	PricePerNight  float64 `yaml:"price_per_night"`
	AvailableCount int     `yaml:"available_count"`
}

type SeedResort struct {
	Name        string     `yaml:"name"`
	Location    string     `yaml:"location"`
	Description string     `yaml:"description"`
	Rooms       []SeedRoom `yaml:"rooms"`
}

type SeedFoodOption struct {
	CuisineType string  `yaml:"cuisine_type"`
	MealPlan    string  `yaml:"meal_plan"`
	PricePerDay float64 `yaml:"price_per_day"`
}

type SeedData struct {
	Admin       SeedAdmin        `yaml:"admin"`
	Resorts     []SeedResort     `yaml:"resorts"`
	FoodOptions []SeedFoodOption `yaml:"food_options"`
}

func LoadSeed(path string) (SeedData, error) {
	var data SeedData

	raw, err := os.ReadFile(path)
	if err != nil {
		return data, fmt.Errorf("failed to read seed file: %w", err)
	}

	if err = yaml.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return data, nil
}

// Seeder fills an empty database with the sample catalogue and the admin account.
type Seeder struct {
	users   userRepository.User
	resorts resortRepository.Resort
	rooms   roomRepository.Room
	foods   foodRepository.FoodOption
}

func NewSeeder(users userRepository.User, resorts resortRepository.Resort, rooms roomRepository.Room, foods foodRepository.FoodOption) *Seeder {
	return &Seeder{
		users:   users,
		resorts: resorts,
		rooms:   rooms,
		foods:   foods,
	}
}

// Run seeds only when the users table is empty and reports whether anything was written.
func (s *Seeder) Run(ctx context.Context, data SeedData) (bool, error) {
	total, err := s.users.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}

	if total > 0 {
		log.Info().Int("users", total).Msg("Database already seeded, skipping")

		return false, nil
	}

	if err = s.seedAdmin(ctx, data.Admin); err != nil {
		return false, err
	}

	for _, resort := range data.Resorts {
		if err = s.seedResort(ctx, resort); err != nil {
			return false, err
		}
	}

	for _, food := range data.FoodOptions {
		option := foodModel.FoodOption{
			ID:          uuid.NewString(),
			CuisineType: food.CuisineType,
			MealPlan:    food.MealPlan,
			PricePerDay: food.PricePerDay,
			Metadata:    seedMetadata(),
		}

		if err = s.foods.Insert(ctx, option); err != nil {
			return false, fmt.Errorf("failed to seed food option %s %s: %w", food.CuisineType, food.MealPlan, err)
		}
	}

	log.Info().
		Int("resorts", len(data.Resorts)).
		Int("food_options", len(data.FoodOptions)).
		Msg("Database seeded")

	return true, nil
}

func (s *Seeder) seedAdmin(ctx context.Context, admin SeedAdmin) error {
	hash, err := password.Hash(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := userModel.User{
		ID:           uuid.NewString(),
		Username:     admin.Username,
		PasswordHash: hash,
		Email:        admin.Email,
		Phone:        admin.Phone,
		Role:         constant.RoleAdmin,
		Metadata:     seedMetadata(),
	}

	if err = s.users.Insert(ctx, user); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	return nil
}

func (s *Seeder) seedResort(ctx context.Context, seed SeedResort) error {
	resort := resortModel.Resort{
		ID:          uuid.NewString(),
		Name:        seed.Name,
		Location:    seed.Location,
		Description: seed.Description,
		Metadata:    seedMetadata(),
	}

	if err := s.resorts.Insert(ctx, resort); err != nil {
		return fmt.Errorf("failed to seed resort %s: %w", seed.Name, err)
	}

	for _, room := range seed.Rooms {
		mod := roomModel.Room{
			ID:             uuid.NewString(),
			ResortID:       resort.ID,
			RoomType:       room.RoomType,
			Beds:           room.Beds,
			PricePerNight:  room.PricePerNight,
			AvailableCount: room.AvailableCount,
			Metadata:       seedMetadata(),
		}

		if err := s.rooms.Insert(ctx, mod); err != nil {
			return fmt.Errorf("failed to seed %s room of %s: %w", room.RoomType, seed.Name, err)
		}
	}

	return nil
}

func seedMetadata() gModel.Metadata {
	now := timezone.Now()

	return gModel.Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  constant.ContextSystem,
		ModifiedBy: constant.ContextSystem,
	}
}
