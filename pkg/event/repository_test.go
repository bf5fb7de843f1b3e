package event

import (
	"context"
	"os"
	"testing"

	"github.com/schedly/schedly/internal/config"
	"github.com/schedly/schedly/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var db *mongo.Database

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:8.0")
	if err != nil {
		log.Printf("Failed to start mongodb container: %v", err)
		os.Exit(1)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		log.Printf("Failed to get mongodb connection string: %v", err)
		os.Exit(1)
	}
	log.Infof("MongoDB container started at %s", uri)

	db, err = database.Connect(config.Mongo{URI: uri, Database: "schedly_test"})
	if err != nil {
		log.Printf("Failed to connect to mongodb: %v", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := container.Terminate(ctx); err != nil {
		log.Printf("Failed to terminate mongodb container: %v", err)
	}
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *RepositoryImpl) {
	ctx := context.Background()
	require.NoError(t, db.Collection(collectionName).Drop(ctx))
	return ctx, NewRepository(db)
}

func TestRepositoryImpl_Store(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	stored, err := repo.Store(ctx, inputToEvent(validInput()))
	assert.NoError(t, err)

	// then
	assert.False(t, stored.ID.IsZero())

	events, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, stored, events[0])
}

func TestRepositoryImpl_FindAll_PreservesInsertionOrder(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	names := []string{"First", "Second", "Third"}
	for _, name := range names {
		candidate := inputToEvent(validInput())
		candidate.Name = name
		_, err := repo.Store(ctx, candidate)
		require.NoError(t, err)
	}

	// when
	events, err := repo.FindAll(ctx)
	assert.NoError(t, err)

	// then
	require.Len(t, events, 3)
	for i, event := range events {
		assert.Equal(t, names[i], event.Name)
	}
}

func TestRepositoryImpl_FindByID(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	stored, err := repo.Store(ctx, inputToEvent(validInput()))
	require.NoError(t, err)

	// when
	found, err := repo.FindByID(ctx, stored.ID.Hex())
	assert.NoError(t, err)

	// then
	require.NotNil(t, found)
	assert.Equal(t, stored, *found)
}

func TestRepositoryImpl_FindByID_UnknownID(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	found, err := repo.FindByID(ctx, primitive.NewObjectID().Hex())

	// then
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepositoryImpl_FindByID_MalformedID(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	found, err := repo.FindByID(ctx, "not-an-object-id")

	// then
	assert.Error(t, err)
	assert.Nil(t, found)
}

func TestRepositoryImpl_Update(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	stored, err := repo.Store(ctx, inputToEvent(validInput()))
	require.NoError(t, err)

	changed := inputToEvent(validInput())
	changed.Name = "Standup (moved)"
	changed.Reminder = "10"

	// when
	updated, err := repo.Update(ctx, stored.ID.Hex(), changed)
	assert.NoError(t, err)

	// then
	require.NotNil(t, updated)
	assert.Equal(t, stored.ID, updated.ID)
	assert.Equal(t, "Standup (moved)", updated.Name)
	assert.Equal(t, "10", updated.Reminder)

	found, err := repo.FindByID(ctx, stored.ID.Hex())
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, *updated, *found)
}

func TestRepositoryImpl_Update_ClearsOptionalFields(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	initial := inputToEvent(validInput())
	initial.Description = "Daily sync"
	initial.MeetingRoom = "Conference Room 1"
	stored, err := repo.Store(ctx, initial)
	require.NoError(t, err)

	cleared := inputToEvent(validInput())
	cleared.Description = ""
	cleared.MeetingRoom = ""
	cleared.Location = nil

	// when
	updated, err := repo.Update(ctx, stored.ID.Hex(), cleared)
	assert.NoError(t, err)

	// then the blanked fields are gone from the store, not just the response
	require.NotNil(t, updated)
	assert.Equal(t, "", updated.Description)
	assert.Equal(t, "", updated.MeetingRoom)
	assert.Nil(t, updated.Location)

	found, err := repo.FindByID(ctx, stored.ID.Hex())
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "", found.Description)
	assert.Equal(t, "", found.MeetingRoom)
	assert.Nil(t, found.Location)
	assert.Equal(t, stored.ID, found.ID)
}

func TestRepositoryImpl_Update_UnknownID(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	updated, err := repo.Update(ctx, primitive.NewObjectID().Hex(), inputToEvent(validInput()))

	// then
	assert.NoError(t, err)
	assert.Nil(t, updated)
}

func TestRepositoryImpl_Delete(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	stored, err := repo.Store(ctx, inputToEvent(validInput()))
	require.NoError(t, err)

	// when
	deleted, err := repo.Delete(ctx, stored.ID.Hex())
	assert.NoError(t, err)

	// then
	require.NotNil(t, deleted)
	assert.Equal(t, stored, *deleted)

	found, err := repo.FindByID(ctx, stored.ID.Hex())
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepositoryImpl_Delete_UnknownID(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	deleted, err := repo.Delete(ctx, primitive.NewObjectID().Hex())

	// then
	assert.NoError(t, err)
	assert.Nil(t, deleted)
}
