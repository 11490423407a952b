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

type MongoCertificateRepo struct {
	DB   *mongo.Client
	Name string
}

func NewMongoCertificateRepo(db *mongo.Client, name string) *MongoCertificateRepo {
	return &MongoCertificateRepo{DB: db, Name: name}
}

func (r *MongoCertificateRepo) coll() *mongo.Collection {
	return r.DB.Database(r.Name).Collection(certificateCollection)
}

func (r *MongoCertificateRepo) CreateCertificate(ctx context.Context, c *models.Certificate) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll().InsertOne(ctx, c)
	return err
}

func (r *MongoCertificateRepo) ListCertificates(ctx context.Context) ([]*models.Certificate, error) {
	return findAll[models.Certificate](ctx, r.coll(), bson.M{})
}

func (r *MongoCertificateRepo) ListCertificatesPage(ctx context.Context, skip, limit int64) ([]*models.Certificate, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "year", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)
	return findAll[models.Certificate](ctx, r.coll(), bson.M{}, opts)
}

func (r *MongoCertificateRepo) CountCertificates(ctx context.Context) (int64, error) {
	return r.coll().CountDocuments(ctx, bson.M{})
}

func (r *MongoCertificateRepo) DistinctFields(ctx context.Context) ([]string, error) {
	values, err := r.coll().Distinct(ctx, "field", bson.M{})
	if err != nil {
		return nil, err
	}
	fields := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			fields = append(fields, s)
		}
	}
	return fields, nil
}

func (r *MongoCertificateRepo) ListCertificatesByField(ctx context.Context, field string) ([]*models.Certificate, error) {
	return findAll[models.Certificate](ctx, r.coll(), bson.M{"field": field})
}

func (r *MongoCertificateRepo) GetCertificateByID(ctx context.Context, id string) (*models.Certificate, error) {
	c := &models.Certificate{}
	found, err := findOne(ctx, r.coll(), bson.M{"_id": id}, c)
	if err != nil || !found {
		return nil, err
	}
	return c, nil
}

func (r *MongoCertificateRepo) UpdateCertificate(ctx context.Context, id string, patch models.CertificatePatch) (*models.Certificate, error) {
	set := patchSet(patch.Fields())
	if len(set) == 0 {
		return r.GetCertificateByID(ctx, id)
	}

	c := &models.Certificate{}
	found, err := findOneAndUpdate(ctx, r.coll(), id, set, c)
	if err != nil || !found {
		return nil, err
	}
	return c, nil
}

func (r *MongoCertificateRepo) DeleteCertificate(ctx context.Context, id string) (*models.Certificate, error) {
	c := &models.Certificate{}
	found, err := findOneAndDelete(ctx, r.coll(), id, c)
	if err != nil || !found {
		return nil, err
	}
	return c, nil
}
