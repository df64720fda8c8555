package database

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/go-errors/errors"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SimpleLocale selects binary string comparison.
const SimpleLocale = "simple"

type CaseFirst uint8

const (
	CaseFirstUpper CaseFirst = iota + 1
	CaseFirstLower
	CaseFirstOff
)

type CollationStrength uint8

// Strength values match the ICU comparison levels 1..5.
const (
	StrengthPrimary CollationStrength = iota + 1
	StrengthSecondary
	StrengthTertiary
	StrengthQuaternary
	StrengthIdentical
)

type CollationAlternate uint8

const (
	AlternateNonIgnorable CollationAlternate = iota + 1
	AlternateShifted
)

type CollationMaxVariable uint8

const (
	MaxVariablePunct CollationMaxVariable = iota + 1
	MaxVariableSpace
)

var caseFirstNames = map[CaseFirst]string{
	CaseFirstUpper: "UPPER",
	CaseFirstLower: "LOWER",
	CaseFirstOff:   "OFF",
}

var strengthNames = map[CollationStrength]string{
	StrengthPrimary:    "PRIMARY",
	StrengthSecondary:  "SECONDARY",
	StrengthTertiary:   "TERTIARY",
	StrengthQuaternary: "QUATERNARY",
	StrengthIdentical:  "IDENTICAL",
}

var alternateNames = map[CollationAlternate]string{
	AlternateNonIgnorable: "NON_IGNORABLE",
	AlternateShifted:      "SHIFTED",
}

var maxVariableNames = map[CollationMaxVariable]string{
	MaxVariablePunct: "PUNCT",
	MaxVariableSpace: "SPACE",
}

func (c CaseFirst) String() string            { return enumName(caseFirstNames, c) }
func (s CollationStrength) String() string    { return enumName(strengthNames, s) }
func (a CollationAlternate) String() string   { return enumName(alternateNames, a) }
func (m CollationMaxVariable) String() string { return enumName(maxVariableNames, m) }

func enumName[E ~uint8](names map[E]string, value E) string {
	if name, ok := names[value]; ok {
		return name
	}
	return fmt.Sprintf("%d", uint8(value))
}

// parseEnum matches value against names ignoring case. Dashes are accepted in
// place of underscores so the server spelling ("non-ignorable") also parses.
func parseEnum[E ~uint8](enum string, names map[E]string, value string) (E, error) {
	normalized := strings.ReplaceAll(cases.Upper(language.Und).String(value), "-", "_")
	for option, name := range names {
		if name == normalized {
			return option, nil
		}
	}
	return 0, &EnumValueError{Enum: enum, Value: value}
}

// CollationOptions holds the locale-aware comparison rules of an operation.
// Unset enums are zero and booleans default to false; neither is serialized.
type CollationOptions struct {
	locale          string
	caseLevel       bool
	caseFirst       CaseFirst
	strength        CollationStrength
	numericOrdering bool
	alternate       CollationAlternate
	maxVariable     CollationMaxVariable
	normalization   bool
	backwards       bool
}

func NewCollationOptions() *CollationOptions {
	return &CollationOptions{locale: SimpleLocale}
}

// CollationOptionsFromJSON builds collation options from their structured
// representation. Strength accepts either a level name or its number.
func CollationOptionsFromJSON(json JsonObject) (*CollationOptions, error) {
	collation := NewCollationOptions()
	if locale, ok := json.GetString("locale"); ok {
		collation.locale = locale
	}

	collation.caseLevel = json.GetBoolean("caseLevel", false)
	collation.numericOrdering = json.GetBoolean("numericOrdering", false)
	collation.normalization = json.GetBoolean("normalization", false)
	collation.backwards = json.GetBoolean("backwards", false)

	var err error
	if name, ok := json.GetString("caseFirst"); ok {
		if collation.caseFirst, err = parseEnum("CaseFirst", caseFirstNames, name); err != nil {
			return nil, err
		}
	}

	if name, ok := json.GetString("strength"); ok {
		if collation.strength, err = parseEnum("CollationStrength", strengthNames, name); err != nil {
			return nil, err
		}
	} else if value, ok := toFloat64(json["strength"]); ok && value != 0 {
		// checked as int so out of range levels cannot wrap into a valid one
		level := json.GetInteger("strength", 0)
		if level < int(StrengthPrimary) || level > int(StrengthIdentical) {
			return nil, &EnumValueError{Enum: "CollationStrength", Value: fmt.Sprint(value)}
		}
		collation.strength = CollationStrength(level)
	}

	if name, ok := json.GetString("alternate"); ok {
		if collation.alternate, err = parseEnum("CollationAlternate", alternateNames, name); err != nil {
			return nil, err
		}
	}

	if name, ok := json.GetString("maxVariable"); ok {
		if collation.maxVariable, err = parseEnum("CollationMaxVariable", maxVariableNames, name); err != nil {
			return nil, err
		}
	}

	return collation, nil
}

func (receiver *CollationOptions) Locale() string { return receiver.locale }

func (receiver *CollationOptions) SetLocale(locale string) *CollationOptions {
	receiver.locale = locale
	return receiver
}

func (receiver *CollationOptions) IsCaseLevel() bool { return receiver.caseLevel }

func (receiver *CollationOptions) SetCaseLevel(caseLevel bool) *CollationOptions {
	receiver.caseLevel = caseLevel
	return receiver
}

func (receiver *CollationOptions) CaseFirst() CaseFirst { return receiver.caseFirst }

func (receiver *CollationOptions) SetCaseFirst(caseFirst CaseFirst) *CollationOptions {
	receiver.caseFirst = caseFirst
	return receiver
}

func (receiver *CollationOptions) Strength() CollationStrength { return receiver.strength }

func (receiver *CollationOptions) SetStrength(strength CollationStrength) *CollationOptions {
	receiver.strength = strength
	return receiver
}

func (receiver *CollationOptions) IsNumericOrdering() bool { return receiver.numericOrdering }

func (receiver *CollationOptions) SetNumericOrdering(numericOrdering bool) *CollationOptions {
	receiver.numericOrdering = numericOrdering
	return receiver
}

func (receiver *CollationOptions) Alternate() CollationAlternate { return receiver.alternate }

func (receiver *CollationOptions) SetAlternate(alternate CollationAlternate) *CollationOptions {
	receiver.alternate = alternate
	return receiver
}

func (receiver *CollationOptions) MaxVariable() CollationMaxVariable { return receiver.maxVariable }

func (receiver *CollationOptions) SetMaxVariable(maxVariable CollationMaxVariable) *CollationOptions {
	receiver.maxVariable = maxVariable
	return receiver
}

func (receiver *CollationOptions) IsNormalization() bool { return receiver.normalization }

func (receiver *CollationOptions) SetNormalization(normalization bool) *CollationOptions {
	receiver.normalization = normalization
	return receiver
}

func (receiver *CollationOptions) IsBackwards() bool { return receiver.backwards }

func (receiver *CollationOptions) SetBackwards(backwards bool) *CollationOptions {
	receiver.backwards = backwards
	return receiver
}

// ToJSON returns the sparse structured representation. The locale is always
// present.
func (receiver *CollationOptions) ToJSON() JsonObject {
	json := JsonObject{"locale": receiver.locale}
	if receiver.caseLevel {
		json["caseLevel"] = true
	}
	if receiver.caseFirst != 0 {
		json["caseFirst"] = receiver.caseFirst.String()
	}
	if receiver.strength != 0 {
		json["strength"] = receiver.strength.String()
	}
	if receiver.numericOrdering {
		json["numericOrdering"] = true
	}
	if receiver.alternate != 0 {
		json["alternate"] = receiver.alternate.String()
	}
	if receiver.maxVariable != 0 {
		json["maxVariable"] = receiver.maxVariable.String()
	}
	if receiver.normalization {
		json["normalization"] = true
	}
	if receiver.backwards {
		json["backwards"] = true
	}
	return json
}

func (receiver *CollationOptions) Clone() *CollationOptions {
	if receiver == nil {
		return nil
	}
	clone := *receiver
	return &clone
}

func (receiver *CollationOptions) Equal(other *CollationOptions) bool {
	if receiver == nil || other == nil {
		return receiver == other
	}
	return *receiver == *other
}

func (receiver *CollationOptions) Hash() uint64 {
	if receiver == nil {
		return 0
	}
	data, _ := receiver.ToJSON().Encode()
	return xxhash.Sum64(data)
}

func (receiver *CollationOptions) String() string {
	if receiver == nil {
		return "null"
	}
	return fmt.Sprintf("CollationOptions{locale=%s, caseLevel=%t, caseFirst=%s, strength=%s, numericOrdering=%t, alternate=%s, maxVariable=%s, normalization=%t, backwards=%t}",
		receiver.locale, receiver.caseLevel, optionalName(receiver.caseFirst), optionalName(receiver.strength),
		receiver.numericOrdering, optionalName(receiver.alternate), optionalName(receiver.maxVariable),
		receiver.normalization, receiver.backwards)
}

func optionalName[E interface {
	~uint8
	fmt.Stringer
}](value E) string {
	if value == 0 {
		return "null"
	}
	return value.String()
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the locale tag and the enum ranges before the options are
// sent to the server.
func (receiver *CollationOptions) Validate() error {
	v := getValidator()
	if err := v.Var(receiver.locale, "required"); err != nil {
		return errors.Errorf("collation locale is required")
	}
	if receiver.locale != SimpleLocale {
		// ICU variants such as "zh@collation=pinyin" are not BCP 47.
		tag, _, _ := strings.Cut(receiver.locale, "@")
		if _, err := language.Parse(tag); err != nil {
			return errors.Errorf("invalid collation locale %q: %v", receiver.locale, err)
		}
	}
	if err := v.Var(uint8(receiver.strength), "omitempty,min=1,max=5"); err != nil {
		return errors.Errorf("invalid collation strength %d", uint8(receiver.strength))
	}
	if err := v.Var(uint8(receiver.caseFirst), "omitempty,min=1,max=3"); err != nil {
		return errors.Errorf("invalid collation caseFirst %d", uint8(receiver.caseFirst))
	}
	if err := v.Var(uint8(receiver.alternate), "omitempty,min=1,max=2"); err != nil {
		return errors.Errorf("invalid collation alternate %d", uint8(receiver.alternate))
	}
	if err := v.Var(uint8(receiver.maxVariable), "omitempty,min=1,max=2"); err != nil {
		return errors.Errorf("invalid collation maxVariable %d", uint8(receiver.maxVariable))
	}
	return nil
}

// DriverCollation converts the options into the driver's collation document.
func (receiver *CollationOptions) DriverCollation() *options.Collation {
	if receiver == nil {
		return nil
	}
	return &options.Collation{
		Locale:          receiver.locale,
		CaseLevel:       receiver.caseLevel,
		CaseFirst:       serverName(receiver.caseFirst),
		Strength:        int(receiver.strength),
		NumericOrdering: receiver.numericOrdering,
		Alternate:       serverName(receiver.alternate),
		MaxVariable:     serverName(receiver.maxVariable),
		Normalization:   receiver.normalization,
		Backwards:       receiver.backwards,
	}
}

// serverName spells an enum the way the server expects it: lower case with
// dashes.
func serverName[E interface {
	~uint8
	fmt.Stringer
}](value E) string {
	if value == 0 {
		return ""
	}
	return strings.ReplaceAll(cases.Lower(language.Und).String(value.String()), "_", "-")
}
