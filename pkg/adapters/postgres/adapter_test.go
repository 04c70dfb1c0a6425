package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/leapstack-labs/leapquery/pkg/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   adapter.Config
		params   *Params
		expected string
	}{
		{
			name: "basic connection",
			config: adapter.Config{
				Host:     "localhost",
				Port:     5432,
				Database: "testdb",
				Username: "user",
				Password: "pass",
			},
			expected: "host=localhost port=5432 dbname=testdb sslmode=disable user=user password=pass",
		},
		{
			name: "with custom sslmode",
			config: adapter.Config{
				Host:     "prod.example.com",
				Port:     5432,
				Database: "proddb",
				Username: "admin",
				Options:  map[string]string{"sslmode": "require"},
			},
			expected: "host=prod.example.com port=5432 dbname=proddb sslmode=require user=admin",
		},
		{
			name: "defaults",
			config: adapter.Config{
				Database: "mydb",
			},
			expected: "host=localhost port=5432 dbname=mydb sslmode=disable",
		},
		{
			name: "with schema",
			config: adapter.Config{
				Database: "mydb",
				Schema:   "reporting",
			},
			expected: "host=localhost port=5432 dbname=mydb sslmode=disable search_path=reporting",
		},
		{
			name: "custom port",
			config: adapter.Config{
				Host:     "db.example.com",
				Port:     5433,
				Database: "analytics",
				Username: "analyst",
			},
			expected: "host=db.example.com port=5433 dbname=analytics sslmode=disable user=analyst",
		},
		{
			name: "quoted password",
			config: adapter.Config{
				Database: "mydb",
				Password: `it's a secret`,
			},
			expected: `host=localhost port=5432 dbname=mydb sslmode=disable password='it\'s a secret'`,
		},
		{
			name:     "params override options",
			config:   adapter.Config{Database: "mydb", Options: map[string]string{"sslmode": "require"}},
			params:   &Params{SSLMode: "verify-full", ConnectTimeout: 1500 * time.Millisecond},
			expected: "host=localhost port=5432 dbname=mydb sslmode=verify-full connect_timeout=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := buildPostgresDSN(tt.config, tt.params)
			assert.Equal(t, tt.expected, dsn)
		})
	}
}

func TestNew(t *testing.T) {
	adp := New(nil)

	assert.NotNil(t, adp, "New() should return non-nil adapter")
	assert.Nil(t, adp.DB, "DB should be nil before Connect")
	assert.False(t, adp.IsConnected(), "should not be connected initially")
	assert.Equal(t, "postgres", adp.Dialect().Name, "dialect name should be postgres")
	assert.Equal(t, "$2", adp.Dialect().FormatPlaceholder(2))

	// Verify interface compliance
	var _ adapter.Adapter = (*Adapter)(nil)
	var _ adapter.Adapter = adp
}

func TestAdapter_NotConnected(t *testing.T) {
	tests := []struct {
		name      string
		operation func(ctx context.Context, adp *Adapter) error
		errMsg    string
	}{
		{
			name: "exec without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				_, err := adp.Exec(ctx, "SELECT 1")
				return err
			},
			errMsg: "not established",
		},
		{
			name: "query without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				_, err := adp.Query(ctx, "SELECT 1")
				return err
			},
			errMsg: "not established",
		},
		{
			name: "begin without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				_, err := adp.Begin(ctx)
				return err
			},
			errMsg: "not established",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			adp := New(nil)

			err := tt.operation(ctx, adp)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestAdapter_Registry(t *testing.T) {
	assert.True(t, adapter.IsRegistered("postgres"), "postgres adapter should be registered")

	factory, ok := adapter.Get("postgres")
	require.True(t, ok, "should be able to get postgres factory")

	adp := factory(nil)
	assert.NotNil(t, adp)

	pg, ok := adp.(*Adapter)
	assert.True(t, ok, "factory should return *Adapter")
	assert.NotNil(t, pg)
	assert.Equal(t, "postgres", pg.Dialect().Name)
}

func TestAdapter_Close(t *testing.T) {
	// Close should not error even without connection
	adp := New(nil)
	assert.NoError(t, adp.Close())
}

func TestAdapter_ConnectInvalidDSN(t *testing.T) {
	adp := New(nil)
	err := adp.Connect(context.Background(), adapter.Config{
		Database: "mydb",
		Options:  map[string]string{"sslmode": "bogus"},
	})

	require.Error(t, err)
	assert.False(t, adp.IsConnected())
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		want    *Params
		runtime map[string]string
		wantErr string
	}{
		{
			name:    "nil",
			want:    &Params{},
			runtime: map[string]string{},
		},
		{
			name: "all settings",
			raw: map[string]any{
				"application_name":  "leapquery",
				"connect_timeout":   "5s",
				"statement_timeout": "1m",
				"sslmode":           "require",
			},
			want: &Params{
				SSLMode:          "require",
				ApplicationName:  "leapquery",
				ConnectTimeout:   5 * time.Second,
				StatementTimeout: time.Minute,
			},
			runtime: map[string]string{"application_name": "leapquery", "statement_timeout": "60000"},
		},
		{
			name:    "unknown key",
			raw:     map[string]any{"pool_size": 4},
			wantErr: "invalid postgres params",
		},
		{
			name:    "bad duration",
			raw:     map[string]any{"connect_timeout": "soon"},
			wantErr: "invalid postgres params",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParams(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.runtime, got.runtimeParams())
		})
	}
}

func TestAdapter_ConnectInvalidParams(t *testing.T) {
	adp := New(nil)
	err := adp.Connect(context.Background(), adapter.Config{
		Database: "mydb",
		Params:   map[string]any{"nope": true},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid postgres params")
	assert.False(t, adp.IsConnected())
}
