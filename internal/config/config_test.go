package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ENV", "STORAGE_BACKEND", "AI_TIMEOUT", "JOURNAL_TIMEZONE", "OPENAI_MODEL", "OPENAI_API_KEY", "REDIS_URI", "ALLOWED_ORIGINS", "FRONTEND_URL", "TRUST_PROXY"} {
		t.Setenv(k, "")
	}

	c := Load()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if c.StorageBackend != BackendPostgres {
		t.Errorf("StorageBackend = %q", c.StorageBackend)
	}
	if c.AITimeout != 30*time.Second || c.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("AI settings = %s %s", c.AITimeout, c.OpenAIModel)
	}
	if c.Location() != time.UTC {
		t.Errorf("Location() = %v, want UTC", c.Location())
	}
	if c.AI().Configured() {
		t.Error("AI should not be configured without a key")
	}
	if c.RedisURI != "" || c.AllowedHost != "" || c.TrustProxy {
		t.Errorf("unexpected values: %+v", c)
	}
	if len(c.AllowedOrigins) != 1 || c.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("AllowedOrigins = %v", c.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("HOST", "https://api.jurnal.app:443/")
	t.Setenv("STORAGE_BACKEND", "Mongo")
	t.Setenv("AI_TIMEOUT", "45s")
	t.Setenv("JOURNAL_TIMEZONE", "Asia/Jakarta")
	t.Setenv("OPENAI_API_KEY", " sk-test ")
	t.Setenv("ALLOWED_ORIGINS", "https://jurnal.app, https://www.jurnal.app")
	t.Setenv("TRUST_PROXY", "true")

	c := Load()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if c.AllowedHost != "api.jurnal.app" || !c.IsProduction() {
		t.Errorf("AllowedHost = %q", c.AllowedHost)
	}
	if c.StorageBackend != BackendMongo || c.AITimeout != 45*time.Second || !c.TrustProxy {
		t.Errorf("config = %+v", c)
	}
	if c.Location().String() != "Asia/Jakarta" {
		t.Errorf("Location() = %v", c.Location())
	}
	if !c.AI().Configured() || c.AI().APIKey != "sk-test" {
		t.Errorf("AI() = %+v", c.AI())
	}
	if len(c.AllowedOrigins) != 2 || c.AllowedOrigins[1] != "https://www.jurnal.app" {
		t.Errorf("AllowedOrigins = %v", c.AllowedOrigins)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"STORAGE_BACKEND", "sqlite", "STORAGE_BACKEND"},
		{"AI_TIMEOUT", "soon", "AI_TIMEOUT"},
		{"AI_TIMEOUT", "-1s", "AI_TIMEOUT"},
		{"JOURNAL_TIMEZONE", "Mars/Olympus", "JOURNAL_TIMEZONE"},
		{"TRUST_PROXY", "maybe", "TRUST_PROXY"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			err := Load().Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}
