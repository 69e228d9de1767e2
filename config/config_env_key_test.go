package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"dbName":  "showreel",
		},
		"secretKey": map[string]any{
			"jwt": "",
		},
		"auth": map[string]any{
			"lockout": map[string]any{
				"maxAttempts": 5,
			},
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_DBNAME", want: "postgres.dbName"},
		{envKey: "SECRETKEY_JWT", want: "secretKey.jwt"},
		{envKey: "AUTH_LOCKOUT_MAXATTEMPTS", want: "auth.lockout.maxAttempts"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_FillsPolicyConstants(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Auth.BcryptCost != defaultBcryptCost {
		t.Fatalf("BcryptCost = %d, want %d", cfg.Auth.BcryptCost, defaultBcryptCost)
	}
	if cfg.Auth.TokenTTL != defaultTokenTTL {
		t.Fatalf("TokenTTL = %s, want %s", cfg.Auth.TokenTTL, defaultTokenTTL)
	}
	if cfg.Auth.Lockout.MaxAttempts != defaultLockoutMaxAttempts {
		t.Fatalf("MaxAttempts = %d, want %d", cfg.Auth.Lockout.MaxAttempts, defaultLockoutMaxAttempts)
	}
	if cfg.Auth.Lockout.BlockDuration != defaultLockoutBlockDuration {
		t.Fatalf("BlockDuration = %s, want %s", cfg.Auth.Lockout.BlockDuration, defaultLockoutBlockDuration)
	}
}
