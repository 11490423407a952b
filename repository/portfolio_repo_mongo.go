package repository

import (
	"context"
	"time"

	"portfolio-backend/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoPortfolioRepo struct {
	DB   *mongo.Client
	Name string
}

func NewMongoPortfolioRepo(db *mongo.Client, name string) *MongoPortfolioRepo {
	return &MongoPortfolioRepo{DB: db, Name: name}
}

func (r *MongoPortfolioRepo) coll() *mongo.Collection {
	return r.DB.Database(r.Name).Collection(portfolioCollection)
}

func (r *MongoPortfolioRepo) CreatePortfolio(ctx context.Context, p *models.Portfolio) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	if p.Links == nil {
		p.Links = []string{}
	}

	_, err := r.coll().InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSlug
	}
	return err
}

func (r *MongoPortfolioRepo) ListPortfolios(ctx context.Context) ([]*models.Portfolio, error) {
	return findAll[models.Portfolio](ctx, r.coll(), bson.M{})
}

func (r *MongoPortfolioRepo) GetPortfolioBySlug(ctx context.Context, slug string) (*models.Portfolio, error) {
	p := &models.Portfolio{}
	found, err := findOne(ctx, r.coll(), bson.M{"slug": slug}, p)
	if err != nil || !found {
		return nil, err
	}
	return p, nil
}

func (r *MongoPortfolioRepo) GetPortfolioByID(ctx context.Context, id string) (*models.Portfolio, error) {
	p := &models.Portfolio{}
	found, err := findOne(ctx, r.coll(), bson.M{"_id": id}, p)
	if err != nil || !found {
		return nil, err
	}
	return p, nil
}

// UpdatePortfolio applies a $set of the non-empty patch fields and returns the
// document as it is after the update.
func (r *MongoPortfolioRepo) UpdatePortfolio(ctx context.Context, id string, patch models.PortfolioPatch) (*models.Portfolio, error) {
	set := patchSet(patch.Fields())
	if len(set) == 0 {
		return r.GetPortfolioByID(ctx, id)
	}

	p := &models.Portfolio{}
	found, err := findOneAndUpdate(ctx, r.coll(), id, set, p)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateSlug
	}
	if err != nil || !found {
		return nil, err
	}
	return p, nil
}

func (r *MongoPortfolioRepo) DeletePortfolio(ctx context.Context, id string) (*models.Portfolio, error) {
	p := &models.Portfolio{}
	found, err := findOneAndDelete(ctx, r.coll(), id, p)
	if err != nil || !found {
		return nil, err
	}
	return p, nil
}
