//go:build e2e

package containers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront-sync/internal/infra/db"
	"storefront-sync/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	testUser     = "test"
	testPassword = "testpass"
)

var (
	postgresOnce sync.Once
	postgresC    testcontainers.Container
	mongoOnce    sync.Once
	mongoC       testcontainers.Container
	redisOnce    sync.Once
	redisC       testcontainers.Container
)

type HostPort struct {
	Host string
	Port nat.Port
}

// ------------------------------------------------------------
// PostgreSQL: コンテナは共有、データベースはテスト毎に作成
// ------------------------------------------------------------
func NewPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	postgresOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=256m"},
			Cmd:   []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off"},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
		}
		var err error
		postgresC, err = start(req)
		require.NoError(t, err, "PostgreSQLコンテナの起動に失敗")
	})
	info := hostPort(t, postgresC, "5432/tcp")

	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", testUser, testPassword, info.Host, info.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	admin, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "管理者接続に失敗")
	defer admin.Close()
	_, err = admin.Exec(ctx, "CREATE DATABASE "+dbName)
	require.NoError(t, err, "テスト用データベースの作成に失敗")

	pool, cleanup, err := db.Connect(ctx, config.DBConfig{
		Host:        info.Host,
		Port:        info.Port.Port(),
		User:        testUser,
		Password:    testPassword,
		DBName:      dbName,
		SSLMode:     "disable",
		TimeZone:    "UTC",
		AutoMigrate: true,
	})
	require.NoError(t, err, "データベース接続に失敗")

	t.Cleanup(func() {
		cleanup()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN)
		if err != nil {
			slog.Warn("クリーンアップ用の接続に失敗しました", "database", dbName, "error", err.Error())
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+dbName); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", dbName, "error", err.Error())
		}
	})
	return pool
}

// ------------------------------------------------------------
// MongoDB: データベース名はテスト毎にユニーク
// ------------------------------------------------------------
func NewMongo(t *testing.T) *mongo.Database {
	t.Helper()
	mongoOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		}
		var err error
		mongoC, err = start(req)
		require.NoError(t, err, "MongoDBコンテナの起動に失敗")
	})
	info := hostPort(t, mongoC, "27017/tcp")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	database, cleanup, err := db.ConnectMongo(ctx, config.MongoConfig{
		URI:      fmt.Sprintf("mongodb://%s:%s", info.Host, info.Port.Port()),
		Database: "test_" + strings.ReplaceAll(uuid.New().String(), "-", ""),
	})
	require.NoError(t, err, "MongoDB接続に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = database.Drop(ctx)
		cleanup()
	})
	return database
}

// ------------------------------------------------------------
// Redis
// ------------------------------------------------------------
func NewRedis(t *testing.T) *redis.Client {
	t.Helper()
	redisOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		}
		var err error
		redisC, err = start(req)
		require.NoError(t, err, "Redisコンテナの起動に失敗")
	})
	info := hostPort(t, redisC, "6379/tcp")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, cleanup, err := db.ConnectRedis(ctx, config.RedisConfig{
		URL: fmt.Sprintf("redis://%s:%s/0", info.Host, info.Port.Port()),
	})
	require.NoError(t, err, "Redis接続に失敗")
	t.Cleanup(cleanup)
	return client
}

func start(req testcontainers.ContainerRequest) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()
	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

func hostPort(t *testing.T, c testcontainers.Container, port string) HostPort {
	t.Helper()
	ctx := context.Background()
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err, "ポートの取得に失敗")
	host, err := c.Host(ctx)
	require.NoError(t, err, "ホストの取得に失敗")
	return HostPort{Host: host, Port: mapped}
}
