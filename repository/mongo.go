package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"speech-translate/entities"
)

const historyCollection = "histories"

type historyDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         string             `bson:"userId"`
	Transcript     string             `bson:"transcript"`
	TranslatedText string             `bson:"transcriptHindi"`
	TargetLang     string             `bson:"targetLang"`
	AudioKey       string             `bson:"audioKey,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

type mongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo stores records in the histories collection of db.
func NewMongoRepo(db *mongo.Database) HistoryRepository {
	return &mongoRepo{coll: db.Collection(historyCollection)}
}

func (r *mongoRepo) Migrate(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("userId_createdAt"),
	})
	return err
}

func (r *mongoRepo) Insert(ctx context.Context, record *entities.TranscriptionRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	doc := toDocument(record)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.New("unexpected inserted id type")
	}
	record.ID = id.Hex()
	return nil
}

func (r *mongoRepo) FindByOwner(ctx context.Context, ownerID string) ([]entities.TranscriptionRecord, error) {
	cursor, err := r.coll.Find(ctx, historyFilter(ownerID), historyOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []historyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]entities.TranscriptionRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.toRecord())
	}
	return records, nil
}

func historyFilter(ownerID string) bson.D {
	return bson.D{{Key: "userId", Value: ownerID}}
}

func historyOptions() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
}

func toDocument(record *entities.TranscriptionRecord) historyDocument {
	doc := historyDocument{
		UserID:         record.OwnerID,
		Transcript:     record.SourceText,
		TranslatedText: record.TranslatedText,
		TargetLang:     record.TargetLanguage,
		AudioKey:       record.AudioKey,
		CreatedAt:      record.CreatedAt,
	}
	if id, err := primitive.ObjectIDFromHex(record.ID); err == nil {
		doc.ID = id
	}
	return doc
}

func (d historyDocument) toRecord() entities.TranscriptionRecord {
	return entities.TranscriptionRecord{
		ID:             d.ID.Hex(),
		OwnerID:        d.UserID,
		SourceText:     d.Transcript,
		TranslatedText: d.TranslatedText,
		TargetLanguage: d.TargetLang,
		AudioKey:       d.AudioKey,
		CreatedAt:      d.CreatedAt.UTC(),
	}
}
