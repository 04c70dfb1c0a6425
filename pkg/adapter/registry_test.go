package adapter

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

// stubAdapter records the config it was connected with.
type stubAdapter struct {
	connected  *Config
	connectErr error
}

func (s *stubAdapter) Connect(_ context.Context, cfg Config) error {
	if s.connectErr != nil {
		return s.connectErr
	}
	s.connected = &cfg
	return nil
}

func (s *stubAdapter) Close() error { return nil }
func (s *stubAdapter) Exec(context.Context, string, ...any) (int64, error) {
	return 0, nil
}
func (s *stubAdapter) Query(context.Context, string, ...any) (*Rows, error) {
	return nil, nil
}
func (s *stubAdapter) Begin(context.Context) (Tx, error) {
	return nil, nil
}
func (s *stubAdapter) Dialect() *dialect.Dialect {
	return dialect.Default()
}

func TestUnknownAdapterError_Error(t *testing.T) {
	err := &UnknownAdapterError{
		Type:      "fake_db",
		Available: []string{"duckdb", "postgres"},
	}

	msg := err.Error()
	assert.Contains(t, msg, "fake_db", "error should mention the unknown type")
	assert.Contains(t, msg, "[duckdb postgres]", "error should list the available adapters")
	assert.Contains(t, msg, "leapquery.yaml", "error should mention config file")
}

func TestRegister(t *testing.T) {
	Register("Test_Adapter_Internal", func(_ *slog.Logger) Adapter { return &stubAdapter{} })

	assert.True(t, IsRegistered("test_adapter_internal"), "names are case-insensitive")
	assert.Contains(t, ListAdapters(), "test_adapter_internal")

	factory, ok := Get("TEST_ADAPTER_INTERNAL")
	require.True(t, ok)
	assert.NotNil(t, factory(nil))
}

func TestNewAdapter_EmptyType(t *testing.T) {
	_, err := NewAdapter(Config{}, nil)
	require.ErrorIs(t, err, ErrTypeRequired)
	assert.Equal(t, "adapter type not specified", err.Error())
}

func TestOpen(t *testing.T) {
	connectErr := errors.New("refused")
	var last *stubAdapter
	Register("test_open_ok", func(*slog.Logger) Adapter {
		last = &stubAdapter{}
		return last
	})
	Register("test_open_fail", func(*slog.Logger) Adapter { return &stubAdapter{connectErr: connectErr} })

	t.Run("connects with the config", func(t *testing.T) {
		a, err := Open(context.Background(), Config{Type: "test_open_ok", Path: "x.db"}, nil)
		require.NoError(t, err)
		assert.Same(t, last, a)
		require.NotNil(t, last.connected)
		assert.Equal(t, "x.db", last.connected.Path)
	})

	t.Run("wraps connect failures", func(t *testing.T) {
		_, err := Open(context.Background(), Config{Type: "test_open_fail"}, nil)
		require.ErrorIs(t, err, connectErr)
		assert.Contains(t, err.Error(), "failed to connect to test_open_fail")
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := Open(context.Background(), Config{Type: "nope"}, nil)
		var unknown *UnknownAdapterError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "nope", unknown.Type)
	})
}
