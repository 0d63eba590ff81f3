package test_utils

import (
	"context"
	"fmt"

	"github.com/klokku/schedulekeeper/internal/config"
	"github.com/klokku/schedulekeeper/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	testDbName     = "schedulekeeper"
	testDbUser     = "test_schedulekeeper"
	testDbPassword = "test_schedulekeeper"
)

// StartPostgres runs a Postgres container and applies all migrations to it. The returned
// function terminates the container. An error usually means Docker is not available.
func StartPostgres(ctx context.Context) (config.Database, func(), error) {
	container, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithDatabase(testDbName),
		postgres.WithUsername(testDbUser),
		postgres.WithPassword(testDbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return config.Database{}, func() {}, fmt.Errorf("failed to start postgres container: %w", err)
	}
	terminate := func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			log.Errorf("failed to terminate postgres container: %v", err)
		}
	}

	host, err := container.Host(ctx)
	if err != nil {
		terminate()
		return config.Database{}, func() {}, err
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		terminate()
		return config.Database{}, func() {}, err
	}
	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Host:   host,
		Port:   port.Int(),
		User:   testDbUser,
		Pass:   testDbPassword,
		Name:   testDbName,
		Schema: "public",
	}

	if err := database.Migrate(cfg); err != nil {
		terminate()
		return config.Database{}, func() {}, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return cfg, terminate, nil
}
