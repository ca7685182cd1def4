package main

import (
	"context"
	"testing"

	"github.com/JonathanThomaz/catalogo-produtos/internal/repository"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
)

func testConfig() config {
	return config{
		BindAddress:    "127.0.0.1:0",
		DatabaseDriver: repository.DriverSQLite,
		DatabaseURL:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		CORSOrigins:    []string{"*"},
	}
}

func cancelled() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestRun(t *testing.T) {
	logger := hclog.NewNullLogger()

	t.Run("stops cleanly when the context ends", func(t *testing.T) {
		assert.NoError(t, run(cancelled(), testConfig(), logger))
	})

	t.Run("unsupported driver", func(t *testing.T) {
		cfg := testConfig()
		cfg.DatabaseDriver = "mysql"

		assert.ErrorContains(t, run(cancelled(), cfg, logger), "open database")
	})

	t.Run("seed failure is returned", func(t *testing.T) {
		cfg := testConfig()
		cfg.Seed = true

		// the seed transaction cannot begin on a cancelled context
		assert.ErrorContains(t, run(cancelled(), cfg, logger), "seed database")
	})
}
