package database

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WriteOption selects the acknowledgement level requested for a write.
type WriteOption uint8

const (
	Acknowledged WriteOption = iota + 1
	Unacknowledged
	Fsynced
	Journaled
	ReplicaAcknowledged
	Majority
)

var writeOptionNames = map[WriteOption]string{
	Acknowledged:        "ACKNOWLEDGED",
	Unacknowledged:      "UNACKNOWLEDGED",
	Fsynced:             "FSYNCED",
	Journaled:           "JOURNALED",
	ReplicaAcknowledged: "REPLICA_ACKNOWLEDGED",
	Majority:            "MAJORITY",
}

var writeOptionByName = func() map[string]WriteOption {
	byName := make(map[string]WriteOption, len(writeOptionNames))
	for option, name := range writeOptionNames {
		byName[name] = option
	}
	return byName
}()

// WriteOptions lists every write option in declaration order.
func WriteOptions() []WriteOption {
	return []WriteOption{Acknowledged, Unacknowledged, Fsynced, Journaled, ReplicaAcknowledged, Majority}
}

// ParseWriteOption resolves a write option by name, ignoring case.
func ParseWriteOption(name string) (WriteOption, error) {
	option, ok := writeOptionByName[cases.Upper(language.Und).String(name)]
	if !ok {
		return 0, &EnumValueError{Enum: "WriteOption", Value: name}
	}
	return option, nil
}

func (w WriteOption) String() string {
	if name, ok := writeOptionNames[w]; ok {
		return name
	}
	return fmt.Sprintf("WriteOption(%d)", uint8(w))
}

func (w WriteOption) IsValid() bool {
	_, ok := writeOptionNames[w]
	return ok
}

// WriteConcern translates the option into the driver's write concern. Fsynced
// is served by the journal, which is what the server does with fsync writes.
func (w WriteOption) WriteConcern() *writeconcern.WriteConcern {
	journal := true
	switch w {
	case Acknowledged:
		return writeconcern.W1()
	case Unacknowledged:
		return writeconcern.Unacknowledged()
	case Fsynced, Journaled:
		return &writeconcern.WriteConcern{W: 1, Journal: &journal}
	case ReplicaAcknowledged:
		return &writeconcern.WriteConcern{W: 2}
	case Majority:
		return writeconcern.Majority()
	}
	return nil
}
