package testutil

import (
	"context"
	"reflect"

	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/internal/repository"
	"github.com/google/uuid"
)

// SampleCommunity creates a community with randomized fields. Non-zero fields
// of init overwrite the sample before it is persisted.
func SampleCommunity(ctx context.Context, init *entity.Community) (entity.Community, error) {
	communityRepo := repository.NewCommunityRepository()

	sample := &entity.Community{
		Base:            entity.Base{ID: uuid.NewString()},
		Handle:          uuid.NewString(),
		DisplayName:     "Sample Community",
		PlatformGuildID: uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := communityRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

// SampleUser creates a user with randomized fields.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	userRepo := repository.NewUserRepository()

	sample := &entity.User{
		Base: entity.Base{ID: uuid.NewString()},
		Name: uuid.NewString(),
		Role: entity.UserRole,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := userRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

// SampleFollower creates a follower row for an existing user and community.
func SampleFollower(ctx context.Context, init *entity.Follower) (entity.Follower, error) {
	followerRepo := repository.NewFollowerRepository()

	sample := &entity.Follower{
		UserID:      uuid.NewString(),
		CommunityID: uuid.NewString(),
		InviteCode:  uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := followerRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

// SampleGiveaway creates an open giveaway with randomized fields.
func SampleGiveaway(ctx context.Context, init *entity.GiveawayEvent) (entity.GiveawayEvent, error) {
	giveawayRepo := repository.NewGiveawayRepository()

	sample := &entity.GiveawayEvent{
		Base:        entity.Base{ID: uuid.NewString()[:8]},
		CommunityID: uuid.NewString(),
		Prize:       "Sample Prize",
		WinnerCount: 1,
		Status:      entity.GiveawayOpen,
		CreatedBy:   uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := giveawayRepo.CreateEvent(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
