package database

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
)

const (
	DEFAULT_UPSERT              = false
	DEFAULT_MULTI               = false
	DEFAULT_RETURN_NEW_DOCUMENT = false
)

// Keys of the structured representation. return_new_document keeps its
// underscored spelling for compatibility with existing documents.
const (
	WRITE_OPTION_KEY        = "writeOption"
	UPSERT_KEY              = "upsert"
	MULTI_KEY               = "multi"
	RETURN_NEW_DOCUMENT_KEY = "return_new_document"
	ARRAY_FILTERS_KEY       = "arrayFilters"
	COLLATION_KEY           = "collation"
)

// UpdateOptions configures a single update operation.
//
// ReturningNewDocument only applies to find-and-update operations and is
// ignored by plain updates. No combination of fields is rejected.
type UpdateOptions struct {
	writeOption       *WriteOption
	upsert            bool
	multi             bool
	returnNewDocument bool
	arrayFilters      JsonArray
	collation         *CollationOptions
}

func NewUpdateOptions() *UpdateOptions {
	return &UpdateOptions{
		upsert:            DEFAULT_UPSERT,
		multi:             DEFAULT_MULTI,
		returnNewDocument: DEFAULT_RETURN_NEW_DOCUMENT,
	}
}

func NewUpsertUpdateOptions(upsert bool) *UpdateOptions {
	return NewUpdateOptions().SetUpsert(upsert)
}

func NewUpsertMultiUpdateOptions(upsert bool, multi bool) *UpdateOptions {
	return NewUpdateOptions().SetUpsert(upsert).SetMulti(multi)
}

/**
 * UpdateOptionsFromJSON builds the options from their structured representation.
 * Missing or null booleans fall back to their defaults and a missing arrayFilters
 * stays nil. The only failure is a writeOption naming no known option.
 */
func UpdateOptionsFromJSON(json JsonObject) (*UpdateOptions, error) {
	opts := NewUpdateOptions()

	if name, ok := json.GetString(WRITE_OPTION_KEY); ok {
		writeOption, err := ParseWriteOption(name)
		if err != nil {
			return nil, err
		}
		opts.writeOption = &writeOption
	}

	opts.upsert = json.GetBoolean(UPSERT_KEY, DEFAULT_UPSERT)
	opts.multi = json.GetBoolean(MULTI_KEY, DEFAULT_MULTI)
	opts.returnNewDocument = json.GetBoolean(RETURN_NEW_DOCUMENT_KEY, DEFAULT_RETURN_NEW_DOCUMENT)
	opts.arrayFilters = json.GetJsonArray(ARRAY_FILTERS_KEY, nil)

	if collationJSON := json.GetJsonObject(COLLATION_KEY); collationJSON != nil {
		collation, err := CollationOptionsFromJSON(collationJSON)
		if err != nil {
			return nil, err
		}
		opts.collation = collation
	}

	return opts, nil
}

// ParseUpdateOptions builds the options from raw JSON text.
func ParseUpdateOptions(data []byte) (*UpdateOptions, error) {
	json, err := ParseJsonObject(data)
	if err != nil {
		return nil, err
	}
	return UpdateOptionsFromJSON(json)
}

// Clone returns an independent copy; array filters and collation are deep copied.
func (receiver *UpdateOptions) Clone() *UpdateOptions {
	clone := &UpdateOptions{
		upsert:            receiver.upsert,
		multi:             receiver.multi,
		returnNewDocument: receiver.returnNewDocument,
		arrayFilters:      receiver.arrayFilters.Copy(),
		collation:         receiver.collation.Clone(),
	}
	if receiver.writeOption != nil {
		writeOption := *receiver.writeOption
		clone.writeOption = &writeOption
	}
	return clone
}

// WriteOption reports the configured write option, if any.
func (receiver *UpdateOptions) WriteOption() (WriteOption, bool) {
	if receiver.writeOption == nil {
		return 0, false
	}
	return *receiver.writeOption, true
}

func (receiver *UpdateOptions) SetWriteOption(writeOption WriteOption) *UpdateOptions {
	receiver.writeOption = &writeOption
	return receiver
}

func (receiver *UpdateOptions) ClearWriteOption() *UpdateOptions {
	receiver.writeOption = nil
	return receiver
}

func (receiver *UpdateOptions) IsUpsert() bool {
	return receiver.upsert
}

func (receiver *UpdateOptions) SetUpsert(upsert bool) *UpdateOptions {
	receiver.upsert = upsert
	return receiver
}

// IsMulti reports whether the update may modify more than one document.
func (receiver *UpdateOptions) IsMulti() bool {
	return receiver.multi
}

func (receiver *UpdateOptions) SetMulti(multi bool) *UpdateOptions {
	receiver.multi = multi
	return receiver
}

func (receiver *UpdateOptions) IsReturningNewDocument() bool {
	return receiver.returnNewDocument
}

func (receiver *UpdateOptions) SetReturningNewDocument(returnNewDocument bool) *UpdateOptions {
	receiver.returnNewDocument = returnNewDocument
	return receiver
}

func (receiver *UpdateOptions) ArrayFilters() JsonArray {
	return receiver.arrayFilters
}

func (receiver *UpdateOptions) SetArrayFilters(arrayFilters JsonArray) *UpdateOptions {
	receiver.arrayFilters = arrayFilters
	return receiver
}

func (receiver *UpdateOptions) Collation() *CollationOptions {
	return receiver.collation
}

func (receiver *UpdateOptions) SetCollation(collation *CollationOptions) *UpdateOptions {
	receiver.collation = collation
	return receiver
}

// ToJSON returns the sparse representation: false flags, empty array filters
// and unset values are omitted.
func (receiver *UpdateOptions) ToJSON() JsonObject {
	json := JsonObject{}
	if receiver.writeOption != nil {
		json[WRITE_OPTION_KEY] = receiver.writeOption.String()
	}
	if receiver.upsert {
		json[UPSERT_KEY] = true
	}
	if receiver.multi {
		json[MULTI_KEY] = true
	}
	if receiver.returnNewDocument {
		json[RETURN_NEW_DOCUMENT_KEY] = true
	}
	if len(receiver.arrayFilters) > 0 {
		json[ARRAY_FILTERS_KEY] = receiver.arrayFilters
	}
	if receiver.collation != nil {
		json[COLLATION_KEY] = receiver.collation.ToJSON()
	}
	return json
}

func (receiver *UpdateOptions) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(map[string]any(receiver.ToJSON()))
}

func (receiver *UpdateOptions) UnmarshalJSON(data []byte) error {
	parsed, err := ParseUpdateOptions(data)
	if err != nil {
		return err
	}
	*receiver = *parsed
	return nil
}

// Equal compares all fields by value. A nil and an empty arrayFilters are
// equal since neither is serialized.
func (receiver *UpdateOptions) Equal(other *UpdateOptions) bool {
	if receiver == nil || other == nil {
		return receiver == other
	}

	wa, okA := receiver.WriteOption()
	wb, okB := other.WriteOption()
	if okA != okB || wa != wb {
		return false
	}

	if receiver.upsert != other.upsert || receiver.multi != other.multi || receiver.returnNewDocument != other.returnNewDocument {
		return false
	}

	if len(receiver.arrayFilters) != 0 || len(other.arrayFilters) != 0 {
		if !receiver.arrayFilters.Equal(other.arrayFilters) {
			return false
		}
	}

	return receiver.collation.Equal(other.collation)
}

// Hash is derived from the canonical encoding of ToJSON, so equal options hash
// alike. Options that cannot be encoded, such as array filters holding values
// that are not JSON, all hash to 0.
func (receiver *UpdateOptions) Hash() uint64 {
	data, err := receiver.ToJSON().Encode()
	if err != nil {
		Logger().Errorf("cannot hash update options: %v", err)
		return 0
	}
	return xxhash.Sum64(data)
}

func (receiver *UpdateOptions) String() string {
	writeOption := "null"
	if receiver.writeOption != nil {
		writeOption = receiver.writeOption.String()
	}

	arrayFilters := "null"
	if receiver.arrayFilters != nil {
		data, err := sonic.Marshal([]any(receiver.arrayFilters))
		if err == nil {
			arrayFilters = string(data)
		}
	}

	return fmt.Sprintf("UpdateOptions{writeOption=%s, upsert=%t, multi=%t, returnNewDocument=%t, arrayFilters=%s, collation=%s}",
		writeOption, receiver.upsert, receiver.multi, receiver.returnNewDocument, arrayFilters, receiver.collation)
}
