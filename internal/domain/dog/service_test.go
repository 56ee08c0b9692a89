package dog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dogwalk-app-go/internal/domain/dog"
	"dogwalk-app-go/internal/repository/inmemory"
)

func TestDogLifecycle(t *testing.T) {
	svc := dog.NewService(inmemory.NewStore().Dogs())
	ctx := context.Background()

	breed := "  "
	created, err := svc.CreateDog(ctx, dog.CreateDogInput{OwnerID: "owner", Name: " Rex ", Breed: &breed})
	require.NoError(t, err)
	assert.Equal(t, "Rex", created.Name)
	assert.Nil(t, created.Breed)

	name := "Rexy"
	_, err = svc.UpdateDog(ctx, dog.UpdateDogInput{OwnerID: "intruder", DogID: created.ID, Name: &name})
	assert.ErrorIs(t, err, dog.ErrNotOwner)

	updated, err := svc.UpdateDog(ctx, dog.UpdateDogInput{OwnerID: "owner", DogID: created.ID, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Rexy", updated.Name)

	dogs, err := svc.ListDogs(ctx, "owner")
	require.NoError(t, err)
	assert.Len(t, dogs, 1)

	assert.ErrorIs(t, svc.DeleteDog(ctx, "intruder", created.ID), dog.ErrNotOwner)
	require.NoError(t, svc.DeleteDog(ctx, "owner", created.ID))
	_, err = svc.GetDog(ctx, created.ID)
	assert.ErrorIs(t, err, dog.ErrDogNotFound)
}

func TestCreateDogValidation(t *testing.T) {
	svc := dog.NewService(inmemory.NewStore().Dogs())
	ctx := context.Background()

	_, err := svc.CreateDog(ctx, dog.CreateDogInput{Name: "Rex"})
	assert.ErrorIs(t, err, dog.ErrOwnerRequired)
	_, err = svc.CreateDog(ctx, dog.CreateDogInput{OwnerID: "o"})
	assert.ErrorIs(t, err, dog.ErrNameRequired)

	future := time.Now().Add(48 * time.Hour)
	_, err = svc.CreateDog(ctx, dog.CreateDogInput{OwnerID: "o", Name: "Rex", BirthDate: &future})
	assert.ErrorIs(t, err, dog.ErrBirthInFuture)
}
