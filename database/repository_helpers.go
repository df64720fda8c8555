package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-errors/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func (repository *MongoRepository[T]) fixQuery(query bson.M) bson.M {
	if repository.Options.Deleted {
		query = getSoftDeleteQuery(query)
	}

	return query
}

/**
 * prepareUpdateDocument turns a plain document into a $set update and adds the
 * timestamps managed by the repository. Plain fields and operators cannot be
 * mixed. When upsert is set the created date is written only on insert.
 * Updates implementing BeforeUpdateHook are given a chance to change or reject
 * themselves first.
 */
func (repository *MongoRepository[T]) prepareUpdateDocument(update any, upsert bool) (bson.M, error) {
	if hook, ok := update.(BeforeUpdateHook); ok {
		if err := hook.BeforeUpdate(); err != nil {
			return nil, err
		}
	}

	document, err := toBsonMap(update)
	if err != nil {
		return nil, err
	}

	hasFields := false
	hasCommands := false
	for key := range document {
		if strings.HasPrefix(key, COMMAND_PREFIX) {
			hasCommands = true
		} else {
			hasFields = true
		}
	}

	if hasFields && hasCommands {
		return nil, errors.New(MIXED_UPDATE)
	}

	// Work on copies, the caller may reuse its update document
	newUpdate := bson.M{}
	bsonSet := bson.M{}

	if hasCommands {
		for key, value := range document {
			newUpdate[key] = value
		}

		set, err := toSetDocument(document[SET])
		if err != nil {
			return nil, err
		}
		for key, value := range set {
			bsonSet[key] = value
		}
	} else {
		for key, value := range document {
			bsonSet[key] = value
		}
	}

	// created, modified and deleted are managed by the repository
	if repository.Options.Created {
		delete(bsonSet, CREATED)
	}

	if repository.Options.Modified {
		delete(bsonSet, MODIFIED)
	}

	if repository.Options.Deleted {
		delete(bsonSet, DELETED)
	}

	if len(bsonSet) > 0 {
		newUpdate[SET] = bsonSet
	} else {
		delete(newUpdate, SET)
	}

	if repository.Options.Modified {
		currentDate, err := subDocument(newUpdate, CURRENT_DATE)
		if err != nil {
			return nil, err
		}
		currentDate[MODIFIED] = true
		newUpdate[CURRENT_DATE] = currentDate
	}

	if upsert && (repository.Options.Created || repository.Options.Deleted) {
		setOnInsert, err := subDocument(newUpdate, SET_ON_INSERT)
		if err != nil {
			return nil, err
		}

		if repository.Options.Created {
			setOnInsert[CREATED] = time.Now()
		}

		if repository.Options.Deleted {
			setOnInsert[DELETED] = nil
		}

		newUpdate[SET_ON_INSERT] = setOnInsert
	}

	if len(newUpdate) == 0 {
		return nil, errors.New("the update document is empty")
	}

	return newUpdate, nil
}

func toSetDocument(set any) (bson.M, error) {
	switch set := set.(type) {
	case nil:
		return bson.M{}, nil
	case bson.M:
		return set, nil
	case map[string]any:
		return set, nil
	case JsonObject:
		return bson.M(set), nil
	case bson.D:
		// Transform to bson.M
		bsonSet := bson.M{}
		for _, elem := range set {
			bsonSet[elem.Key] = elem.Value
		}
		return bsonSet, nil
	default:
		var bsonSet bson.M
		_json, err := sonic.Marshal(set)
		if err != nil {
			return nil, errors.New(fmt.Sprintf("invalid $set value: %T", set))
		}

		err = sonic.Unmarshal(_json, &bsonSet)
		if err != nil {
			return nil, errors.New(fmt.Sprintf("invalid $set value: %T", set))
		}
		return bsonSet, nil
	}
}

// subDocument returns a copy of the operator document stored under key, or an
// empty one.
func subDocument(update bson.M, key string) (bson.M, error) {
	value, ok := update[key]
	if !ok {
		return bson.M{}, nil
	}

	document := bson.M{}
	switch value := value.(type) {
	case bson.M:
		for k, v := range value {
			document[k] = v
		}
	case map[string]any:
		for k, v := range value {
			document[k] = v
		}
	case bson.D:
		for _, elem := range value {
			document[elem.Key] = elem.Value
		}
	default:
		return nil, errors.Errorf("invalid %s value", key)
	}

	return document, nil
}

func getSoftDeleteQuery(query bson.M) bson.M {
	return bson.M{
		AND: []any{
			query,
			bson.M{DELETED: bson.M{TYPE: 10}},
		},
	}
}

func toBsonMap(v any) (doc bson.M, err error) {
	if v == nil {
		return bson.M{}, nil
	}

	switch v := v.(type) {
	case bson.M:
		return v, nil
	case map[string]any:
		return v, nil
	case JsonObject:
		return bson.M(plainValue(v).(map[string]any)), nil
	}

	data, err := bson.Marshal(v)
	if err != nil {
		return
	}

	err = bson.Unmarshal(data, &doc)
	return doc, err
}
