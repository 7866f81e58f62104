package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// t.Setenv registers the restore; unset so defaults apply.
	for _, key := range []string{"QABRISTAN_STORE", "QABRISTAN_DATA_DIR", "QABRISTAN_MODEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StoreLocal, cfg.Store)
	require.NotEmpty(t, cfg.DataDir)
	require.Equal(t, "gemini-3-flash-preview", cfg.GeminiModel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("QABRISTAN_STORE", "postgres")
	t.Setenv("QABRISTAN_DSN", "postgres://qabristan@localhost:5432/qabristan")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StorePostgres, cfg.Store)
	require.Equal(t, "test-key", cfg.GeminiKey)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	require.Error(t, (&Config{Store: "redis"}).Validate())
	require.Error(t, (&Config{Store: StorePostgres}).Validate()) // DSN required
	require.Error(t, (&Config{Store: StoreLocal}).Validate())    // data dir required
	require.NoError(t, (&Config{Store: StoreLocal, DataDir: "/tmp/x"}).Validate())
}
