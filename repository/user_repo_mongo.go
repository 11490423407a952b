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

type MongoUserRepo struct {
	DB   *mongo.Client
	Name string
}

func NewMongoUserRepo(db *mongo.Client, name string) *MongoUserRepo {
	return &MongoUserRepo{DB: db, Name: name}
}

func (r *MongoUserRepo) coll() *mongo.Collection {
	return r.DB.Database(r.Name).Collection(userCollection)
}

func (r *MongoUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = models.RoleNormal
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := r.coll().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *MongoUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	found, err := findOne(ctx, r.coll(), bson.M{"email": email}, user)
	if err != nil || !found {
		return nil, err
	}
	return user, nil
}

func (r *MongoUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	found, err := findOne(ctx, r.coll(), bson.M{"_id": id}, user)
	if err != nil || !found {
		return nil, err
	}
	return user, nil
}

func (r *MongoUserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	return findAll[models.User](ctx, r.coll(), bson.M{}, options.Find().SetProjection(bson.M{"password": 0}))
}

func (r *MongoUserRepo) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	found, err := findOneAndDelete(ctx, r.coll(), id, user)
	if err != nil || !found {
		return nil, err
	}
	return user, nil
}
