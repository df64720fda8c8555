package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func TestCollationOptionsDefaults(t *testing.T) {
	collation := NewCollationOptions()

	assert.Equal(t, SimpleLocale, collation.Locale())
	assert.True(t, JsonObject{"locale": "simple"}.Equal(collation.ToJSON()))
	assert.NoError(t, collation.Validate())
}

func TestCollationOptionsJSON(t *testing.T) {
	collation := NewCollationOptions().
		SetLocale("en_US").
		SetCaseLevel(true).
		SetCaseFirst(CaseFirstUpper).
		SetStrength(StrengthTertiary).
		SetNumericOrdering(true).
		SetAlternate(AlternateShifted).
		SetMaxVariable(MaxVariableSpace).
		SetNormalization(true).
		SetBackwards(true)

	expected := JsonObject{
		"locale":          "en_US",
		"caseLevel":       true,
		"caseFirst":       "UPPER",
		"strength":        "TERTIARY",
		"numericOrdering": true,
		"alternate":       "SHIFTED",
		"maxVariable":     "SPACE",
		"normalization":   true,
		"backwards":       true,
	}
	assert.True(t, expected.Equal(collation.ToJSON()), "got %v", collation.ToJSON())

	parsed, err := CollationOptionsFromJSON(collation.ToJSON())
	require.NoError(t, err)
	assert.True(t, collation.Equal(parsed))
	assert.Equal(t, collation.Hash(), parsed.Hash())
}

func TestCollationOptionsFromJSONSpellings(t *testing.T) {
	tests := []struct {
		name     string
		json     JsonObject
		expected *CollationOptions
	}{
		{
			name:     "missing locale",
			json:     JsonObject{},
			expected: NewCollationOptions(),
		},
		{
			name:     "lower case names",
			json:     JsonObject{"locale": "fr", "caseFirst": "lower", "alternate": "non_ignorable", "maxVariable": "punct"},
			expected: NewCollationOptions().SetLocale("fr").SetCaseFirst(CaseFirstLower).SetAlternate(AlternateNonIgnorable).SetMaxVariable(MaxVariablePunct),
		},
		{
			name:     "server spelling",
			json:     JsonObject{"locale": "fr", "alternate": "non-ignorable"},
			expected: NewCollationOptions().SetLocale("fr").SetAlternate(AlternateNonIgnorable),
		},
		{
			name:     "numeric strength",
			json:     JsonObject{"locale": "fr", "strength": int64(2)},
			expected: NewCollationOptions().SetLocale("fr").SetStrength(StrengthSecondary),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := CollationOptionsFromJSON(tt.json)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(parsed), "expected %s, got %s", tt.expected, parsed)
		})
	}
}

func TestCollationOptionsFromJSONInvalid(t *testing.T) {
	for _, json := range []JsonObject{
		{"caseFirst": "sideways"},
		{"strength": "strongest"},
		{"strength": 9},
		{"strength": 257},
		{"strength": -255},
		{"strength": int64(1<<32 + 2)},
		{"strength": 2.5},
		{"strength": 1e300},
		{"alternate": "ignorable"},
		{"maxVariable": "tab"},
	} {
		_, err := CollationOptionsFromJSON(json)
		assert.ErrorIs(t, err, ErrUnknownEnumValue, "%v", json)
	}
}

func TestCollationOptionsValidate(t *testing.T) {
	tests := []struct {
		name      string
		collation *CollationOptions
		wantErr   bool
	}{
		{"simple", NewCollationOptions(), false},
		{"language", NewCollationOptions().SetLocale("de"), false},
		{"region with underscore", NewCollationOptions().SetLocale("en_US"), false},
		{"icu variant", NewCollationOptions().SetLocale("zh@collation=pinyin"), false},
		{"empty locale", NewCollationOptions().SetLocale(""), true},
		{"malformed locale", NewCollationOptions().SetLocale("not a locale!"), true},
		{"strength out of range", NewCollationOptions().SetStrength(CollationStrength(6)), true},
		{"caseFirst out of range", NewCollationOptions().SetCaseFirst(CaseFirst(4)), true},
		{"alternate out of range", NewCollationOptions().SetAlternate(CollationAlternate(3)), true},
		{"maxVariable out of range", NewCollationOptions().SetMaxVariable(CollationMaxVariable(3)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.collation.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCollationOptionsDriverCollation(t *testing.T) {
	collation := NewCollationOptions().
		SetLocale("en").
		SetCaseFirst(CaseFirstOff).
		SetStrength(StrengthQuaternary).
		SetAlternate(AlternateNonIgnorable).
		SetMaxVariable(MaxVariablePunct).
		SetBackwards(true)

	assert.Equal(t, &options.Collation{
		Locale:      "en",
		CaseFirst:   "off",
		Strength:    4,
		Alternate:   "non-ignorable",
		MaxVariable: "punct",
		Backwards:   true,
	}, collation.DriverCollation())

	assert.Equal(t, &options.Collation{Locale: "simple"}, NewCollationOptions().DriverCollation())

	var none *CollationOptions
	assert.Nil(t, none.DriverCollation())
}

func TestCollationOptionsCloneAndEqual(t *testing.T) {
	original := NewCollationOptions().SetLocale("es").SetNumericOrdering(true)
	clone := original.Clone()

	assert.True(t, original.Equal(clone))
	clone.SetNumericOrdering(false)
	assert.True(t, original.IsNumericOrdering())
	assert.False(t, original.Equal(clone))

	var none *CollationOptions
	assert.Nil(t, none.Clone())
	assert.True(t, none.Equal(nil))
	assert.False(t, original.Equal(nil))
	assert.Equal(t, "null", none.String())
}

func TestCollationOptionsString(t *testing.T) {
	assert.Equal(t,
		"CollationOptions{locale=simple, caseLevel=false, caseFirst=null, strength=null, numericOrdering=false, alternate=null, maxVariable=null, normalization=false, backwards=false}",
		NewCollationOptions().String())
	assert.Contains(t, NewCollationOptions().SetStrength(StrengthIdentical).String(), "strength=IDENTICAL")
}
