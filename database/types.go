package database

type IModel interface {
	GetTableName() string
	GetModelName() string
}

// BeforeUpdateHook is called on the update value before it is converted.
type BeforeUpdateHook interface {
	BeforeUpdate() error
}

// MongoUpdate is a typed update document. Nil operators are omitted.
type MongoUpdate struct {
	CurrentDate any `bson:"$currentDate,omitempty"`
	Inc         any `bson:"$inc,omitempty"`
	Min         any `bson:"$min,omitempty"`
	Max         any `bson:"$max,omitempty"`
	Mul         any `bson:"$mul,omitempty"`
	Rename      any `bson:"$rename,omitempty"`
	Set         any `bson:"$set,omitempty"`
	SetOnInsert any `bson:"$setOnInsert,omitempty"`
	Unset       any `bson:"$unset,omitempty"`
	AddToSet    any `bson:"$addToSet,omitempty"`
	Pop         any `bson:"$pop,omitempty"`
	Pull        any `bson:"$pull,omitempty"`
	PullAll     any `bson:"$pullAll,omitempty"`
	Push        any `bson:"$push,omitempty"`
}

// UpdateResult summarizes the outcome of an update.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedCount int64
	UpsertedID    any
}
