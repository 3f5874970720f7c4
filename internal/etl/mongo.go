package etl

import (
	"context"

	"github.com/BartekS5/csvmap/pkg/logger"
	"github.com/BartekS5/csvmap/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLoader writes records into a collection. With a KeyField set, records
// are upserted on that field; otherwise they are inserted.
type MongoLoader struct {
	Collection *mongo.Collection
	KeyField   string
}

func NewMongoLoader(client *mongo.Client, database, collection, keyField string) *MongoLoader {
	return &MongoLoader{
		Collection: client.Database(database).Collection(collection),
		KeyField:   keyField,
	}
}

func (m *MongoLoader) Load(ctx context.Context, records []models.Record) error {
	writes := m.buildWrites(records)
	if len(writes) == 0 {
		return nil
	}

	res, err := m.Collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return err
	}
	logger.Infof("Mongo BulkWrite: Insert %d, Match %d, Mod %d, Upsert %d",
		res.InsertedCount, res.MatchedCount, res.ModifiedCount, res.UpsertedCount)
	return nil
}

func (m *MongoLoader) buildWrites(records []models.Record) []mongo.WriteModel {
	writes := make([]mongo.WriteModel, 0, len(records))

	for i, rec := range records {
		doc := ToBSON(rec)

		if m.KeyField == "" {
			writes = append(writes, mongo.NewInsertOneModel().SetDocument(doc))
			continue
		}

		idVal, ok := rec.Get(m.KeyField)
		if !ok || idVal == nil {
			logger.Errorf("Skipping record %d: missing key field %s", i, m.KeyField)
			continue
		}

		filter := bson.D{{Key: m.KeyField, Value: idVal}}
		update := bson.D{{Key: "$set", Value: doc}}
		writes = append(writes, mongo.NewUpdateOneModel().SetFilter(filter).SetUpdate(update).SetUpsert(true))
	}
	return writes
}

// ToBSON converts a record into an ordered BSON document.
func ToBSON(rec models.Record) bson.D {
	doc := make(bson.D, 0, len(rec))
	for _, f := range rec {
		doc = append(doc, bson.E{Key: f.Name, Value: f.Value})
	}
	return doc
}
