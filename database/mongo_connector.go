package database

import (
	"context"

	"github.com/go-errors/errors"
	"github.com/xompass/vsaas-mongo/helpers"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"
)

// Connector es una interfaz genérica para cualquier tipo de conector de base de datos
type Connector interface {
	Ping() error
	Disconnect() error
	GetName() string
	GetDatabaseName() string
	GetDriver() any
}

type MongoConnectorOpts struct {
	options.ClientOptions
	Name     string
	Database string

	// WriteOption is applied to the collections handed out by the connector.
	WriteOption *WriteOption
}

type MongoConnector struct {
	ctx     context.Context
	client  *mongo.Client
	options *MongoConnectorOpts
}

/**
 * NewMongoConnector creates a new MongoDB connector.
 * It initializes the MongoDB client with the provided options and checks the connection.
 */
func NewMongoConnector(opts *MongoConnectorOpts) (*MongoConnector, error) {
	ctx := context.Background()
	connector := &MongoConnector{
		ctx:     ctx,
		options: opts,
	}

	err := connector.connect()
	if err != nil {
		return nil, err
	}

	if err := connector.Ping(); err != nil {
		return nil, err
	}

	Logger().Infof("connected to mongodb database %s (connector %s)", opts.Database, opts.Name)
	return connector, nil
}

func NewDefaultMongoConnector() (*MongoConnector, error) {
	opts, err := MongoConnectorOptsFromEnv()
	if err != nil {
		return nil, err
	}

	return NewMongoConnector(opts)
}

/**
 * MongoConnectorOptsFromEnv reads MONGO_URI, MONGO_DATABASE, MONGO_WRITE_OPTION
 * and MONGO_RETRY_WRITES. The database defaults to the one in the URI, then to
 * "test". Retryable writes follow the URI unless MONGO_RETRY_WRITES is set.
 */
func MongoConnectorOptsFromEnv() (*MongoConnectorOpts, error) {
	uri := helpers.GetEnv("MONGO_URI", "mongodb://localhost:27017")

	clientOptions := options.Client().ApplyURI(uri)

	conn, err := connstring.Parse(uri)
	if err != nil {
		return nil, err
	}

	dbName := conn.Database
	if dbName == "" {
		dbName = "test"
	}

	retryWrites := !conn.RetryWritesSet || conn.RetryWrites
	clientOptions.SetRetryWrites(helpers.GetEnvBool("MONGO_RETRY_WRITES", retryWrites))

	opts := MongoConnectorOpts{
		ClientOptions: *clientOptions,
		Name:          "mongodb",
		Database:      helpers.GetEnv("MONGO_DATABASE", dbName),
	}

	if name := helpers.GetEnv("MONGO_WRITE_OPTION", ""); name != "" {
		writeOption, err := ParseWriteOption(name)
		if err != nil {
			return nil, errors.Errorf("invalid MONGO_WRITE_OPTION: %v", err)
		}
		opts.WriteOption = &writeOption
	}

	return &opts, nil
}

/**
 * connect initializes the MongoDB client with the provided options.
 */
func (receiver *MongoConnector) connect() error {
	opts := receiver.options.ClientOptions

	client, err := mongo.Connect(&opts)

	if err != nil {
		return err
	}

	receiver.client = client
	return nil
}

/**
 * Ping checks the connection to the MongoDB server.
 */
func (receiver *MongoConnector) Ping() error {
	if receiver.client == nil {
		return errors.New("mongo connector client not initialized")
	}
	return receiver.client.Ping(receiver.ctx, nil)
}

/**
 * Disconnect closes the connection to the MongoDB server.
 */
func (receiver *MongoConnector) Disconnect() error {
	if receiver.client == nil {
		return errors.New("mongo connector client not initialized")
	}
	return receiver.client.Disconnect(receiver.ctx)
}

/**
 * GetDriver returns the underlying MongoDB client.
 */
func (receiver *MongoConnector) GetDriver() any {
	return receiver.client
}

func (receiver *MongoConnector) GetName() string {
	return receiver.options.Name
}

func (receiver *MongoConnector) GetDatabaseName() string {
	return receiver.options.Database
}

/**
 * GetOptions returns the options used to create the MongoDB connector.
 */
func (receiver *MongoConnector) GetOptions() MongoConnectorOpts {
	return *receiver.options
}

/**
 * GetCollection returns a collection of the connector database, with the
 * connector write option applied when one is configured.
 */
func (receiver *MongoConnector) GetCollection(name string) (*mongo.Collection, error) {
	if receiver.client == nil {
		return nil, errors.New("mongo connector client not initialized")
	}

	if receiver.options.Database == "" {
		return nil, errors.New("database name is required")
	}

	collection := receiver.client.Database(receiver.options.Database).Collection(name)
	if receiver.options.WriteOption != nil {
		collection = collection.Clone(options.Collection().SetWriteConcern(receiver.options.WriteOption.WriteConcern()))
	}

	return collection, nil
}
