package event

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository is the store gateway for events. Lookups against an id with no
// match return (nil, nil); a malformed id is an error.
type Repository interface {
	FindAll(ctx context.Context) ([]Event, error)
	FindByID(ctx context.Context, id string) (*Event, error)
	Store(ctx context.Context, event Event) (Event, error)
	Update(ctx context.Context, id string, event Event) (*Event, error)
	Delete(ctx context.Context, id string) (*Event, error)
}

const collectionName = "events"

type RepositoryImpl struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) *RepositoryImpl {
	return &RepositoryImpl{coll: db.Collection(collectionName)}
}

// FindAll returns every stored event in natural collection order.
func (r *RepositoryImpl) FindAll(ctx context.Context) ([]Event, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		err := fmt.Errorf("could not query events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer cursor.Close(ctx)

	events := make([]Event, 0)
	if err := cursor.All(ctx, &events); err != nil {
		err := fmt.Errorf("could not decode events: %w", err)
		log.Error(err)
		return nil, err
	}
	return events, nil
}

func (r *RepositoryImpl) FindByID(ctx context.Context, id string) (*Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		err := fmt.Errorf("malformed event id %q: %w", id, err)
		log.Error(err)
		return nil, err
	}

	var event Event
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		err := fmt.Errorf("could not query event %s: %w", id, err)
		log.Error(err)
		return nil, err
	}
	return &event, nil
}

// Store inserts the event and returns it with its assigned id.
func (r *RepositoryImpl) Store(ctx context.Context, event Event) (Event, error) {
	event.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		err := fmt.Errorf("could not insert event: %w", err)
		log.Error(err)
		return Event{}, err
	}
	return event, nil
}

// Update replaces the whole stored document with the validated payload and
// returns it after the write so the response reflects the latest committed
// state. Full replacement, not a field-wise $set: a payload that blanks an
// optional field must clear it in the store too.
func (r *RepositoryImpl) Update(ctx context.Context, id string, event Event) (*Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		err := fmt.Errorf("malformed event id %q: %w", id, err)
		log.Error(err)
		return nil, err
	}

	// The id is immutable; the zero ObjectID is omitted from the replacement
	// document so the stored _id survives.
	event.ID = primitive.NilObjectID

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var updated Event
	err = r.coll.FindOneAndReplace(ctx, bson.M{"_id": oid}, event, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		err := fmt.Errorf("could not update event %s: %w", id, err)
		log.Error(err)
		return nil, err
	}
	return &updated, nil
}

// Delete removes the event and returns its prior content.
func (r *RepositoryImpl) Delete(ctx context.Context, id string) (*Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		err := fmt.Errorf("malformed event id %q: %w", id, err)
		log.Error(err)
		return nil, err
	}

	var deleted Event
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		err := fmt.Errorf("could not delete event %s: %w", id, err)
		log.Error(err)
		return nil, err
	}
	return &deleted, nil
}
