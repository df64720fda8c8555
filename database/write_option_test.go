package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"
)

func TestParseWriteOption(t *testing.T) {
	for _, option := range WriteOptions() {
		t.Run(option.String(), func(t *testing.T) {
			name := option.String()
			for _, name := range []string{name, strings.ToLower(name), strings.ToUpper(name[:1]) + strings.ToLower(name[1:])} {
				parsed, err := ParseWriteOption(name)
				require.NoError(t, err)
				assert.Equal(t, option, parsed)
			}
			assert.True(t, option.IsValid())
		})
	}
}

func TestParseWriteOptionUnknown(t *testing.T) {
	for _, name := range []string{"", "not_a_real_option", "ACK", "replica-acknowledged"} {
		_, err := ParseWriteOption(name)
		assert.ErrorIs(t, err, ErrUnknownEnumValue, name)
	}
}

func TestWriteOptionString(t *testing.T) {
	assert.Equal(t, "REPLICA_ACKNOWLEDGED", ReplicaAcknowledged.String())
	assert.Equal(t, "WriteOption(0)", WriteOption(0).String())
	assert.False(t, WriteOption(0).IsValid())
}

func TestWriteOptionWriteConcern(t *testing.T) {
	journal := true
	tests := []struct {
		option   WriteOption
		expected *writeconcern.WriteConcern
	}{
		{Acknowledged, &writeconcern.WriteConcern{W: 1}},
		{Unacknowledged, &writeconcern.WriteConcern{W: 0}},
		{Fsynced, &writeconcern.WriteConcern{W: 1, Journal: &journal}},
		{Journaled, &writeconcern.WriteConcern{W: 1, Journal: &journal}},
		{ReplicaAcknowledged, &writeconcern.WriteConcern{W: 2}},
		{Majority, &writeconcern.WriteConcern{W: "majority"}},
	}

	for _, tt := range tests {
		t.Run(tt.option.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.option.WriteConcern())
		})
	}

	assert.Nil(t, WriteOption(0).WriteConcern())
	assert.False(t, Unacknowledged.WriteConcern().Acknowledged())
	assert.True(t, Majority.WriteConcern().Acknowledged())
}
