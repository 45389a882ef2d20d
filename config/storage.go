package config

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func NewPostgresDB(cfg Store) (*sql.DB, error) {
	if cfg.PostgresDSN == "" {
		return nil, errors.New("postgresql_host is required for the postgres store")
	}
	return sql.Open("postgres", cfg.PostgresDSN)
}

func NewMongoClient(ctx context.Context, cfg Store) (*mongo.Client, error) {
	if cfg.MongoURI == "" {
		return nil, errors.New("mongo.uri is required for the mongo store")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		if err := client.Disconnect(context.Background()); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to disconnect MongoDB client")
		}
	}()

	return client, nil
}

// NewMinIOClient returns nil when no MinIO endpoint is configured.
func NewMinIOClient(cfg MinIO) (*minio.Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	return minio.New(cfg.URL, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessID, cfg.SecretAccessKey, ""),
		Secure: cfg.Secure,
	})
}
