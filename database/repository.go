package database

import (
	"context"
)

type Repository[T IModel] interface {
	// GetConnector returns the connector used by this repository.
	GetConnector() Connector

	// Update applies the update to the documents matching the filter.
	// The options select between a single and a multi-document update,
	// upsert behaviour, array filters, collation and write concern.
	// Nil options behave like NewUpdateOptions().
	Update(ctx context.Context, filter any, update any, opts *UpdateOptions) (*UpdateResult, error)

	// FindOneAndUpdate updates a single document matching the filter and returns it.
	// The document is returned as it was before the update unless the options ask
	// for the new document. If no document matches, it returns nil.
	FindOneAndUpdate(ctx context.Context, filter any, update any, opts *UpdateOptions) (*T, error)

	// Upsert updates a document matching the filter or inserts a new one if it does not exist.
	Upsert(ctx context.Context, filter any, update any) error

	// UpdateById updates a single document by its ID.
	UpdateById(ctx context.Context, id any, update any, opts *UpdateOptions) error

	// UpdateMany updates all documents matching the filter and returns the modified count.
	UpdateMany(ctx context.Context, filter any, update any) (int64, error)
}
