package repository

import (
	"context"
	"errors"

	"portfolio-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	userCollection        = "users"
	portfolioCollection   = "portfolios"
	certificateCollection = "certificates"
	contactCollection     = "contacts"
)

// EnsureMongoIndexes creates the unique indexes the repositories rely on.
// The slug index is sparse so portfolios without a slug do not collide.
func EnsureMongoIndexes(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)

	_, err := db.Collection(userCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(portfolioCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_slug"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(certificateCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "year", Value: -1}},
	})
	return err
}

// findOne decodes a single document into out, reporting false when nothing matched.
func findOne(ctx context.Context, coll *mongo.Collection, filter any, out any) (bool, error) {
	err := coll.FindOne(ctx, filter).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// findAll runs a query and decodes every document, returning an empty slice
// rather than nil so handlers encode [] instead of null.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]*T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*T{}
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	return out, cur.Err()
}

// findOneAndDelete removes the matching document and returns what was stored.
func findOneAndDelete(ctx context.Context, coll *mongo.Collection, id string, out any) (bool, error) {
	err := coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// findOneAndUpdate applies $set to the document with the given id and decodes
// the post-update document into out.
func findOneAndUpdate(ctx context.Context, coll *mongo.Collection, id string, set bson.M, out any) (bool, error) {
	err := coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// patchSet turns sparse patch fields into a $set document.
func patchSet(fields []models.PatchField) bson.M {
	set := bson.M{}
	for _, f := range fields {
		set[f.Name] = f.Value
	}
	return set
}
