package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func applyUpdateOne(t *testing.T, builder *options.UpdateOneOptionsBuilder) *options.UpdateOneOptions {
	args := &options.UpdateOneOptions{}
	for _, set := range builder.Opts {
		require.NoError(t, set(args))
	}
	return args
}

func applyUpdateMany(t *testing.T, builder *options.UpdateManyOptionsBuilder) *options.UpdateManyOptions {
	args := &options.UpdateManyOptions{}
	for _, set := range builder.Opts {
		require.NoError(t, set(args))
	}
	return args
}

func applyFindOneAndUpdate(t *testing.T, builder *options.FindOneAndUpdateOptionsBuilder) *options.FindOneAndUpdateOptions {
	args := &options.FindOneAndUpdateOptions{}
	for _, set := range builder.Opts {
		require.NoError(t, set(args))
	}
	return args
}

func TestUpdateOneOptions(t *testing.T) {
	args := applyUpdateOne(t, NewUpdateOptions().UpdateOneOptions())
	require.NotNil(t, args.Upsert)
	assert.False(t, *args.Upsert)
	assert.Nil(t, args.ArrayFilters)
	assert.Nil(t, args.Collation)

	opts := NewUpsertUpdateOptions(true).
		SetArrayFilters(JsonArray{JsonObject{"elem.grade": JsonObject{"$gte": 85}}}).
		SetCollation(NewCollationOptions().SetLocale("fr").SetStrength(StrengthPrimary))

	args = applyUpdateOne(t, opts.UpdateOneOptions())
	require.NotNil(t, args.Upsert)
	assert.True(t, *args.Upsert)
	assert.Equal(t, []any{map[string]any{"elem.grade": map[string]any{"$gte": 85}}}, args.ArrayFilters)
	assert.Equal(t, &options.Collation{Locale: "fr", Strength: 1}, args.Collation)
}

func TestUpdateManyOptions(t *testing.T) {
	opts := NewUpsertMultiUpdateOptions(true, true).
		SetArrayFilters(JsonArray{JsonObject{"x.a": 1}}).
		SetCollation(NewCollationOptions())

	args := applyUpdateMany(t, opts.UpdateManyOptions())
	require.NotNil(t, args.Upsert)
	assert.True(t, *args.Upsert)
	assert.Equal(t, []any{map[string]any{"x.a": 1}}, args.ArrayFilters)
	assert.Equal(t, &options.Collation{Locale: "simple"}, args.Collation)
}

func TestFindOneAndUpdateOptions(t *testing.T) {
	args := applyFindOneAndUpdate(t, NewUpdateOptions().FindOneAndUpdateOptions())
	require.NotNil(t, args.ReturnDocument)
	assert.Equal(t, options.Before, *args.ReturnDocument)
	require.NotNil(t, args.Upsert)
	assert.False(t, *args.Upsert)

	opts := NewUpsertMultiUpdateOptions(true, true).
		SetReturningNewDocument(true).
		SetArrayFilters(JsonArray{JsonObject{"x.a": 1}})

	args = applyFindOneAndUpdate(t, opts.FindOneAndUpdateOptions())
	assert.Equal(t, options.After, *args.ReturnDocument)
	assert.True(t, *args.Upsert)
	assert.Len(t, args.ArrayFilters, 1)
}

func TestUpdateOptionsWriteConcern(t *testing.T) {
	assert.Nil(t, NewUpdateOptions().WriteConcern())
	assert.Equal(t, Majority.WriteConcern(), NewUpdateOptions().SetWriteOption(Majority).WriteConcern())
}
