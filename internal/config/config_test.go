package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

const minimal = `
[database]
host = "db"
dbname = "seats"
password = "from-file"

[payment_gateway]
url = "http://gateway:8090"
callback_url = "http://app/api/v1/payments/callback"

[pricing]
paynow_fixed_fee = 0.5

[[pricing.rates]]
member_type = "student"
bucket = "short"
hourly_rate = 4.0
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, domain.DefaultWindowRules(), cfg.WindowRules())
	assert.Equal(t, 60, cfg.Pricing.ReloadIntervalSeconds)
	assert.Equal(t, "host=db port=5432 user= password=from-file dbname=seats sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []domain.RateCardEntry{
		{MemberType: domain.MemberTypeStudent, Bucket: domain.BucketShort, HourlyRate: 4},
	}, cfg.FallbackRates())
	assert.Equal(t, domain.FeeSettings{PayNowFixedFee: 0.5}, cfg.FallbackFees())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SEATBOOKING_DATABASE_PASSWORD", "from-env")
	t.Setenv("SEATBOOKING_SERVER_HTTP_PORT", "9090")
	t.Setenv("SEATBOOKING_PAYMENT_GATEWAY_API_KEY", "secret")

	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "secret", cfg.PaymentGateway.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorIs(t, err, ErrLoad)
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("SEATBOOKING_SERVER_HTTP_PORT", "eighty")
		_, err := Load(writeConfig(t, minimal))
		assert.ErrorIs(t, err, ErrEnv)
	})

	tests := []struct {
		name  string
		extra string
	}{
		{"unknown rate bucket", "\n[[pricing.rates]]\nmember_type = \"member\"\nbucket = \"weekly\"\nhourly_rate = 1.0\n"},
		{"unknown member type", "\n[[pricing.rates]]\nmember_type = \"vip\"\nbucket = \"short\"\nhourly_rate = 1.0\n"},
		{"events without redis", "\n[events]\nenabled = true\n"},
		{"cutoff hour", "\n[booking]\nnext_day_cutoff_hour = 30\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, minimal+tt.extra))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestRepositoryConfigFileLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config.toml"))
	require.NoError(t, err)

	assert.Len(t, cfg.FallbackRates(), 6)
	assert.True(t, cfg.Redis.Enabled)
}
