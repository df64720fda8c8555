package database

import (
	"os"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoConnectorOptsFromEnv(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		database    string
		writeOption *WriteOption
		retryWrites bool
		wantErr     bool
	}{
		{
			name:        "defaults",
			env:         map[string]string{},
			database:    "test",
			retryWrites: true,
		},
		{
			name:        "database from uri",
			env:         map[string]string{"MONGO_URI": "mongodb://db.example.com:27017/devices"},
			database:    "devices",
			retryWrites: true,
		},
		{
			name:        "database variable wins",
			env:         map[string]string{"MONGO_URI": "mongodb://db.example.com:27017/devices", "MONGO_DATABASE": "cameras"},
			database:    "cameras",
			retryWrites: true,
		},
		{
			name:        "write option",
			env:         map[string]string{"MONGO_WRITE_OPTION": "journaled"},
			database:    "test",
			writeOption: func() *WriteOption { w := Journaled; return &w }(),
			retryWrites: true,
		},
		{
			name:     "retry writes from uri",
			env:      map[string]string{"MONGO_URI": "mongodb://localhost:27017/?retryWrites=false"},
			database: "test",
		},
		{
			name:     "retry writes variable wins",
			env:      map[string]string{"MONGO_URI": "mongodb://localhost:27017/?retryWrites=true", "MONGO_RETRY_WRITES": "false"},
			database: "test",
		},
		{
			name:        "invalid retry writes falls back to uri",
			env:         map[string]string{"MONGO_RETRY_WRITES": "sometimes"},
			database:    "test",
			retryWrites: true,
		},
		{
			name:    "unknown write option",
			env:     map[string]string{"MONGO_WRITE_OPTION": "sometimes"},
			wantErr: true,
		},
		{
			name:    "invalid uri",
			env:     map[string]string{"MONGO_URI": "http://localhost"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"MONGO_URI", "MONGO_DATABASE", "MONGO_WRITE_OPTION", "MONGO_RETRY_WRITES"} {
				// Setenv restores the original value when the test ends
				t.Setenv(key, "")
				if value, ok := tt.env[key]; ok {
					t.Setenv(key, value)
				} else {
					require.NoError(t, os.Unsetenv(key))
				}
			}

			opts, err := MongoConnectorOptsFromEnv()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "mongodb", opts.Name)
			assert.Equal(t, tt.database, opts.Database)
			assert.Equal(t, tt.writeOption, opts.WriteOption)
			require.NotNil(t, opts.RetryWrites)
			assert.Equal(t, tt.retryWrites, *opts.RetryWrites)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, log.DEBUG, ParseLogLevel("debug"))
	assert.Equal(t, log.WARN, ParseLogLevel(" WARN "))
	assert.Equal(t, log.OFF, ParseLogLevel("off"))
	assert.Equal(t, log.INFO, ParseLogLevel("verbose"))
	assert.NotNil(t, Logger())
}
