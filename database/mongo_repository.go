package database

import (
	"context"
	"errors"

	"github.com/xompass/vsaas-mongo/http_errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"
)

const (
	ID             = "_id"
	SET            = "$set"
	AND            = "$and"
	CREATED        = "created"
	MODIFIED       = "modified"
	DELETED        = "deleted"
	CURRENT_DATE   = "$currentDate"
	SET_ON_INSERT  = "$setOnInsert"
	TYPE           = "$type"
	COMMAND_PREFIX = "$"
	NO_DOCUMENTS   = "no documents founds"
	MIXED_UPDATE   = "the update has a mix between fields and commands"
)

// Error codes for mongo_repository
const (
	MONGO_CONNECTOR_NIL          = "MONGO_CONNECTOR_NIL"
	MONGO_CLIENT_NOT_INITIALIZED = "MONGO_CLIENT_NOT_INITIALIZED"
	MONGO_ID_CANNOT_BE_NIL       = "MONGO_ID_CANNOT_BE_NIL"
	MONGO_UPDATE_CANNOT_BE_NIL   = "MONGO_UPDATE_CANNOT_BE_NIL"
	MONGO_INVALID_UPDATE         = "MONGO_INVALID_UPDATE"
	MONGO_INVALID_COLLATION      = "MONGO_INVALID_COLLATION"
	MONGO_NO_DOCUMENTS_FOUND     = "MONGO_NO_DOCUMENTS_FOUND"
	MONGO_DUPLICATE_KEY          = "MONGO_DUPLICATE_KEY"
	MONGO_OPERATION_FAILED       = "MONGO_OPERATION_FAILED"
	MONGO_CONNECTION_ERROR       = "MONGO_CONNECTION_ERROR"
	MONGO_VALIDATION_ERROR       = "MONGO_VALIDATION_ERROR"
)

// mapMongoError maps MongoDB errors to standardized http_errors
func mapMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Handle specific MongoDB errors
	if errors.Is(err, mongo.ErrNoDocuments) {
		return http_errors.NotFoundErrorWithCode(MONGO_NO_DOCUMENTS_FOUND, "document not found")
	}

	// Handle MongoDB write errors (duplicates, validation, etc.)
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, writeError := range writeErr.WriteErrors {
			switch writeError.Code {
			case 11000, 11001: // Duplicate key errors
				return http_errors.ConflictErrorWithCode(MONGO_DUPLICATE_KEY, "duplicate key error: "+writeError.Message)
			case 121: // Document validation failure
				return http_errors.BadRequestErrorWithCode(MONGO_VALIDATION_ERROR, "validation error: "+writeError.Message)
			default:
				return http_errors.BadRequestErrorWithCode(MONGO_OPERATION_FAILED, "write operation failed: "+writeError.Message)
			}
		}
	}

	// Handle command errors
	var commandErr mongo.CommandError
	if errors.As(err, &commandErr) {
		switch commandErr.Code {
		case 11000, 11001: // Duplicate key
			return http_errors.ConflictErrorWithCode(MONGO_DUPLICATE_KEY, "duplicate key error: "+commandErr.Message)
		case 121: // Document validation failure
			return http_errors.BadRequestErrorWithCode(MONGO_VALIDATION_ERROR, "validation error: "+commandErr.Message)
		default:
			return http_errors.BadRequestErrorWithCode(MONGO_OPERATION_FAILED, "command failed: "+commandErr.Message)
		}
	}

	// Handle network/connection errors
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return http_errors.InternalServerErrorWithCode(MONGO_CONNECTION_ERROR, "database connection error")
	}

	// Default case: return as internal server error
	return http_errors.InternalServerErrorWithCode(MONGO_OPERATION_FAILED, "database operation failed: "+err.Error())
}

// collection is the part of *mongo.Collection the repository uses.
type collection interface {
	UpdateOne(ctx context.Context, filter any, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
	UpdateMany(ctx context.Context, filter any, update any, opts ...options.Lister[options.UpdateManyOptions]) (*mongo.UpdateResult, error)
	FindOneAndUpdate(ctx context.Context, filter any, update any, opts ...options.Lister[options.FindOneAndUpdateOptions]) *mongo.SingleResult
	WithWriteConcern(wc *writeconcern.WriteConcern) collection
}

type driverCollection struct {
	*mongo.Collection
}

func (receiver driverCollection) WithWriteConcern(wc *writeconcern.WriteConcern) collection {
	return driverCollection{receiver.Clone(options.Collection().SetWriteConcern(wc))}
}

type MongoRepository[T IModel] struct {
	Options    RepositoryOptions
	collection collection
	connector  *MongoConnector
}

func NewMongoRepository[T IModel](connector *MongoConnector, opts RepositoryOptions) (Repository[T], error) {
	if connector == nil {
		return nil, http_errors.InternalServerErrorWithCode(MONGO_CONNECTOR_NIL, "connector is nil")
	}

	var instance T
	coll, err := connector.GetCollection(instance.GetTableName())
	if err != nil {
		return nil, http_errors.InternalServerErrorWithCode(MONGO_CLIENT_NOT_INITIALIZED, err.Error())
	}

	repository := &MongoRepository[T]{
		Options:    opts,
		collection: driverCollection{coll},
		connector:  connector,
	}

	return repository, nil
}

func (repository *MongoRepository[T]) GetConnector() Connector {
	return repository.connector
}

// collectionFor applies the write concern of the options, falling back to the
// repository default.
func (repository *MongoRepository[T]) collectionFor(opts *UpdateOptions) collection {
	wc := opts.WriteConcern()
	if wc == nil && repository.Options.DefaultWriteOption != nil {
		wc = repository.Options.DefaultWriteOption.WriteConcern()
	}

	if wc == nil {
		return repository.collection
	}

	return repository.collection.WithWriteConcern(wc)
}

// prepare validates the options and builds the filter and update documents.
func (repository *MongoRepository[T]) prepare(filter any, update any, opts *UpdateOptions) (bson.M, bson.M, error) {
	if update == nil {
		return nil, nil, http_errors.BadRequestErrorWithCode(MONGO_UPDATE_CANNOT_BE_NIL, "update cannot be nil")
	}

	if collation := opts.Collation(); collation != nil {
		if err := collation.Validate(); err != nil {
			return nil, nil, http_errors.BadRequestErrorWithCode(MONGO_INVALID_COLLATION, err.Error())
		}
	}

	query, err := toBsonMap(filter)
	if err != nil {
		return nil, nil, http_errors.BadRequestErrorWithCode(MONGO_OPERATION_FAILED, "invalid filter: "+err.Error())
	}

	fixedUpdate, err := repository.prepareUpdateDocument(update, opts.IsUpsert())
	if err != nil {
		return nil, nil, http_errors.BadRequestErrorWithCode(MONGO_INVALID_UPDATE, err.Error())
	}

	return repository.fixQuery(query), fixedUpdate, nil
}

func (repository *MongoRepository[T]) Update(ctx context.Context, filter any, update any, opts *UpdateOptions) (*UpdateResult, error) {
	if opts == nil {
		opts = NewUpdateOptions()
	}

	query, fixedUpdate, err := repository.prepare(filter, update, opts)
	if err != nil {
		return nil, err
	}

	Logger().Debugf("update %v with %s", query, opts)

	coll := repository.collectionFor(opts)

	var result *mongo.UpdateResult
	if opts.IsMulti() {
		result, err = coll.UpdateMany(ctx, query, fixedUpdate, opts.UpdateManyOptions())
	} else {
		result, err = coll.UpdateOne(ctx, query, fixedUpdate, opts.UpdateOneOptions())
	}

	if err != nil {
		return nil, mapMongoError(err)
	}

	return &UpdateResult{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		UpsertedCount: result.UpsertedCount,
		UpsertedID:    result.UpsertedID,
	}, nil
}

func (repository *MongoRepository[T]) FindOneAndUpdate(ctx context.Context, filter any, update any, opts *UpdateOptions) (*T, error) {
	if opts == nil {
		opts = NewUpdateOptions()
	}

	query, fixedUpdate, err := repository.prepare(filter, update, opts)
	if err != nil {
		return nil, err
	}

	if opts.IsMulti() {
		Logger().Warnf("multi is ignored by find and update: %s", opts)
	}

	Logger().Debugf("find and update %v with %s", query, opts)

	result := repository.collectionFor(opts).FindOneAndUpdate(ctx, query, fixedUpdate, opts.FindOneAndUpdateOptions())

	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, mapMongoError(err)
	}

	receiver := new(T)
	if err := result.Decode(receiver); err != nil {
		return nil, mapMongoError(err)
	}

	return receiver, nil
}

func (repository *MongoRepository[T]) Upsert(ctx context.Context, filter any, update any) error {
	_, err := repository.Update(ctx, filter, update, NewUpsertUpdateOptions(true))
	return err
}

func (repository *MongoRepository[T]) UpdateById(ctx context.Context, id any, update any, opts *UpdateOptions) error {
	if id == nil {
		return http_errors.BadRequestErrorWithCode(MONGO_ID_CANNOT_BE_NIL, "id cannot be nil")
	}

	if opts != nil && opts.IsMulti() {
		opts = opts.Clone().SetMulti(false)
	}

	result, err := repository.Update(ctx, bson.M{ID: id}, update, opts)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return http_errors.NotFoundErrorWithCode(MONGO_NO_DOCUMENTS_FOUND, NO_DOCUMENTS)
	}

	return nil
}

func (repository *MongoRepository[T]) UpdateMany(ctx context.Context, filter any, update any) (int64, error) {
	result, err := repository.Update(ctx, filter, update, NewUpsertMultiUpdateOptions(false, true))
	if err != nil {
		return 0, err
	}

	return result.ModifiedCount, nil
}
