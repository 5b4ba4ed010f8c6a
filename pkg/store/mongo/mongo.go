// Package mongo reads person records from a MongoDB collection.
//
// Documents use snake_case field names (first_name, father_id, ...). A
// document without an "id" field is identified by its _id.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/kintree/pkg/person"
)

// Defaults used when Open is given empty names.
const (
	DefaultDatabase   = "kintree"
	DefaultCollection = "people"
)

const connectTimeout = 10 * time.Second

// Store reads and writes one collection.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open connects to uri and pings the server.
func Open(ctx context.Context, uri, database, collection string) (*Store, error) {
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{client: client, coll: client.Database(database).Collection(collection)}, nil
}

// document is the stored shape of a record.
type document struct {
	OID           any `bson:"_id,omitempty"`
	person.Record `bson:",inline"`
}

// toRecord returns the record of d, falling back to _id for the person id.
func toRecord(d document) person.Record {
	r := d.Record
	if r.ID != "" {
		return r
	}
	switch oid := d.OID.(type) {
	case primitive.ObjectID:
		r.ID = oid.Hex()
	case string:
		r.ID = oid
	case nil:
	default:
		r.ID = fmt.Sprint(oid)
	}
	return r
}

// People returns every document in natural order.
func (s *Store) People(ctx context.Context) ([]person.Record, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	records := make([]person.Record, len(docs))
	for i, d := range docs {
		records[i] = toRecord(d)
	}
	return records, nil
}

// Put upserts records keyed by id.
func (s *Store) Put(ctx context.Context, records []person.Record) error {
	if len(records) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, len(records))
	for i, r := range records {
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "id", Value: r.ID}}).
			SetReplacement(document{Record: r}).
			SetUpsert(true)
	}
	if _, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("bulk write: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}
