package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseURL(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://app:pw@db:5432/inventory", "pgx5://app:pw@db:5432/inventory"},
		{"postgresql://db/inventory?sslmode=disable", "pgx5://db/inventory?sslmode=disable"},
		{"pgx5://db/inventory", "pgx5://db/inventory"},
		{"app:pw@db/inventory", "pgx5://app:pw@db/inventory"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, databaseURL(tt.dsn))
	}
}
