package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "sqlite uses the path",
			cfg:  DatabaseConfig{Driver: "sqlite", Path: "salesdocs.db"},
			want: "salesdocs.db",
		},
		{
			name: "postgres",
			cfg: DatabaseConfig{Driver: "postgres", Host: "db", User: "u", Password: "p",
				Name: "sales", Port: "5432", SSLMode: "disable", Timezone: "Asia/Dubai"},
			want: "host=db user=u password=p dbname=sales port=5432 sslmode=disable TimeZone=Asia/Dubai",
		},
		{
			name: "mysql",
			cfg:  DatabaseConfig{Driver: "mysql", Host: "db", User: "u", Password: "p", Name: "sales", Port: "3306"},
			want: "u:p@tcp(db:3306)/sales?charset=utf8mb4&parseTime=True&loc=Local",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DOCUMENT_DEFAULT_VAT", "7.5")
	t.Setenv("DB_DRIVER", "postgres")

	cfg := Load()

	assert.Equal(t, "salesdocs-api", cfg.App.Name)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 7.5, cfg.Document.DefaultVAT)
	assert.Equal(t, 15, cfg.Document.QuotationValidDays)
	assert.Equal(t, 5, cfg.Document.KeyAttempts)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
}
