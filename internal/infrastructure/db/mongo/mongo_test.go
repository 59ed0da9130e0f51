package mongo

import (
	"context"
	"testing"

	"github.com/dinebook/reservation-system/internal/infrastructure/config"
)

func TestConnect_MalformedURI(t *testing.T) {
	cfg := config.MongoConfig{URI: "not-a-mongo-uri", Database: "reservations"}
	if _, _, err := Connect(context.Background(), cfg); err == nil {
		t.Fatal("expected error for malformed URI")
	}
}

func TestConnect_UnreachableServer(t *testing.T) {
	// Port 1 refuses immediately; the short selection timeout keeps the
	// failing ping from waiting out the full dial budget.
	cfg := config.MongoConfig{
		URI:      "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200",
		Database: "reservations",
	}
	if _, _, err := Connect(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}
