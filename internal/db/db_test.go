package db

import (
	"testing"

	"github.com/shinyyama/pickup-kiosk/internal/config"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		want   string
	}{
		{
			name: "mysql tcp host",
			mutate: func(c *config.Config) {
				c.DBUser, c.DBPassword, c.DBHost, c.DBName = "kiosk", "secret", "db.local", "pickup"
			},
			want: "kiosk:secret@tcp(db.local:3306)/pickup?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "mysql wrapped host",
			mutate: func(c *config.Config) {
				c.DBUser, c.DBPassword, c.DBHost, c.DBName = "kiosk", "secret", "tcp(10.0.0.1:3307)", "pickup"
			},
			want: "kiosk:secret@tcp(10.0.0.1:3307)/pickup?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "mysql socket path",
			mutate: func(c *config.Config) {
				c.DBUser, c.DBPassword, c.DBHost, c.DBName = "kiosk", "secret", "/var/run/mysqld.sock", "pickup"
			},
			want: "kiosk:secret@unix(/var/run/mysqld.sock)/pickup?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "mysql cloud sql",
			mutate: func(c *config.Config) {
				c.DBUser, c.DBPassword, c.DBName = "kiosk", "secret", "pickup"
				c.InstanceConnectionName = "proj:region:inst"
			},
			want: "kiosk:secret@unix(/cloudsql/proj:region:inst)/pickup?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "postgres",
			mutate: func(c *config.Config) {
				c.DBDriver = config.DriverPostgres
				c.DBUser, c.DBPassword, c.DBHost, c.DBName = "kiosk", "secret", "pg.local", "pickup"
			},
			want: "host=pg.local user=kiosk password=secret dbname=pickup port=5432 sslmode=disable TimeZone=UTC",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			if got := BuildDSN(cfg); got != tt.want {
				t.Fatalf("got=%q want=%q", got, tt.want)
			}
		})
	}
}
