package database

import (
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"
)

// UpdateOneOptions translates the options for Collection.UpdateOne.
func (receiver *UpdateOptions) UpdateOneOptions() *options.UpdateOneOptionsBuilder {
	opts := options.UpdateOne().SetUpsert(receiver.upsert)
	if len(receiver.arrayFilters) > 0 {
		opts.SetArrayFilters(receiver.driverArrayFilters())
	}
	if receiver.collation != nil {
		opts.SetCollation(receiver.collation.DriverCollation())
	}
	return opts
}

// UpdateManyOptions translates the options for Collection.UpdateMany.
func (receiver *UpdateOptions) UpdateManyOptions() *options.UpdateManyOptionsBuilder {
	opts := options.UpdateMany().SetUpsert(receiver.upsert)
	if len(receiver.arrayFilters) > 0 {
		opts.SetArrayFilters(receiver.driverArrayFilters())
	}
	if receiver.collation != nil {
		opts.SetCollation(receiver.collation.DriverCollation())
	}
	return opts
}

// FindOneAndUpdateOptions translates the options for Collection.FindOneAndUpdate.
// The multi flag has no meaning there and is ignored.
func (receiver *UpdateOptions) FindOneAndUpdateOptions() *options.FindOneAndUpdateOptionsBuilder {
	returnDocument := options.Before
	if receiver.returnNewDocument {
		returnDocument = options.After
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(receiver.upsert).
		SetReturnDocument(returnDocument)
	if len(receiver.arrayFilters) > 0 {
		opts.SetArrayFilters(receiver.driverArrayFilters())
	}
	if receiver.collation != nil {
		opts.SetCollation(receiver.collation.DriverCollation())
	}
	return opts
}

// WriteConcern returns the driver write concern for the configured write
// option, or nil to keep the collection default.
func (receiver *UpdateOptions) WriteConcern() *writeconcern.WriteConcern {
	if receiver.writeOption == nil {
		return nil
	}
	return receiver.writeOption.WriteConcern()
}

// driverArrayFilters hands the filters to the driver as plain maps and slices,
// which the bson encoder handles without registering the named types.
func (receiver *UpdateOptions) driverArrayFilters() []any {
	filters := make([]any, len(receiver.arrayFilters))
	for i, filter := range receiver.arrayFilters {
		filters[i] = plainValue(filter)
	}
	return filters
}

func plainValue(value any) any {
	if object, ok := asObject(value); ok {
		out := make(map[string]any, len(object))
		for key, item := range object {
			out[key] = plainValue(item)
		}
		return out
	}
	if array, ok := asArray(value); ok {
		out := make([]any, len(array))
		for i, item := range array {
			out[i] = plainValue(item)
		}
		return out
	}
	return value
}
