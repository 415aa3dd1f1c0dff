package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("SIDR_DB_HOST", "db.internal:3306")
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, AuthProviderFirebase, cfg.Auth.Provider)
	assert.Equal(t, StorageProviderNone, cfg.Storage.Provider)
	assert.Equal(t, "db.internal:3306", cfg.DB.Host)
}

func TestLoadRejectsJWTWithoutSecret(t *testing.T) {
	t.Setenv("SIDR_AUTH_PROVIDER", "jwt")
	_, err := Load(viper.New())
	assert.ErrorContains(t, err, "auth.jwt_secret")
}

func TestLoadRejectsBucketlessStorage(t *testing.T) {
	t.Setenv("SIDR_STORAGE_PROVIDER", "s3")
	_, err := Load(viper.New())
	assert.ErrorContains(t, err, "storage.bucket")
}

func TestOriginsSkipsBlanks(t *testing.T) {
	sc := ServerConfig{FEOrigins: "https://a.example; ;https://b.example;"}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, sc.Origins())
}

func TestDSN(t *testing.T) {
	dc := DBConfig{User: "u", Pass: "p", Host: "h:3306", Name: "sidr", TLS: true}
	assert.Equal(t, "u:p@tcp(h:3306)/sidr?tls=true&parseTime=true&clientFoundRows=true&charset=utf8mb4", dc.DSN())
}
