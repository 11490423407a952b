package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

type MongoDB struct {
	Client *mongo.Client
	Ctx    context.Context
	Cancel context.CancelFunc
	URL    string
	Name   string
}

func NewMongoDB(url, name string) *MongoDB {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	return &MongoDB{
		Ctx:    ctx,
		Cancel: cancel,
		URL:    url,
		Name:   name,
	}
}

func (m *MongoDB) Connect() error {
	client, err := mongo.Connect(m.Ctx, options.Client().ApplyURI(m.URL))
	if err != nil {
		return err
	}
	m.Client = client
	return m.Client.Ping(m.Ctx, nil)
}

// Disconnect uses a fresh deadline because the connect context has usually
// expired by the time the server shuts down.
func (m *MongoDB) Disconnect() error {
	m.Cancel()
	if m.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

func (m *MongoDB) GetContext() context.Context {
	return m.Ctx
}
