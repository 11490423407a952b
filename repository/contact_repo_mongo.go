package repository

import (
	"context"
	"time"

	"portfolio-backend/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoContactRepo struct {
	DB   *mongo.Client
	Name string
}

func NewMongoContactRepo(db *mongo.Client, name string) *MongoContactRepo {
	return &MongoContactRepo{DB: db, Name: name}
}

func (r *MongoContactRepo) coll() *mongo.Collection {
	return r.DB.Database(r.Name).Collection(contactCollection)
}

func (r *MongoContactRepo) CreateContact(ctx context.Context, c *models.Contact) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.TimeStamp.IsZero() {
		c.TimeStamp = time.Now().UTC()
	}
	_, err := r.coll().InsertOne(ctx, c)
	return err
}

// ListContacts returns messages newest first.
func (r *MongoContactRepo) ListContacts(ctx context.Context) ([]*models.Contact, error) {
	return findAll[models.Contact](ctx, r.coll(), bson.M{}, options.Find().SetSort(bson.D{{Key: "timeStamp", Value: -1}}))
}

func (r *MongoContactRepo) DeleteContact(ctx context.Context, id string) (*models.Contact, error) {
	c := &models.Contact{}
	found, err := findOneAndDelete(ctx, r.coll(), id, c)
	if err != nil || !found {
		return nil, err
	}
	return c, nil
}
