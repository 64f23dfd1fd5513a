package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/congo-pay/accounts/internal/account"
	"github.com/congo-pay/accounts/internal/config"
	"github.com/congo-pay/accounts/internal/identity"
	"github.com/congo-pay/accounts/internal/ledger"
	"github.com/congo-pay/accounts/internal/lock"
	"github.com/congo-pay/accounts/internal/middleware"
	"github.com/congo-pay/accounts/internal/notification"
	"github.com/congo-pay/accounts/internal/transaction"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var (
		users        identity.Repository
		accounts     account.Repository
		transactions ledger.Store
	)
	if d.DB != nil {
		users = identity.NewPostgresRepository(d.DB)
		accounts = account.NewPostgresRepository(d.DB)
		transactions = ledger.NewPostgresStore(d.DB)
	} else {
		memUsers := identity.NewMemoryRepository()
		memAccounts := account.NewMemoryRepository()
		if err := seedDevData(context.Background(), memUsers, memAccounts); err != nil {
			return fmt.Errorf("seed dev data: %w", err)
		}
		d.Logger.Warn("running on in-memory stores with demo accounts")
		users, accounts, transactions = memUsers, memAccounts, ledger.NewInMemory()
	}

	locker, err := newLocker(d)
	if err != nil {
		return err
	}

	engine := transaction.NewEngine(users, accounts, transactions, transaction.Options{
		CancelWindowMonths: d.Cfg.CancelWindowMonths,
		Logger:             d.Logger,
	})
	notifier := notification.NewLoggerNotifier(d.Logger)
	txnHandler := transaction.NewHandler(transaction.NewService(engine, locker, notifier, d.Logger))
	accountHandler := account.NewHandler(account.NewService(users, accounts, locker))

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": middleware.RequestIDFrom(c),
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterTransactionRoutes(api, txnHandler)
	RegisterAccountRoutes(api, accountHandler)

	return nil
}

// newLocker picks the lock backend. Redis coordinates across replicas; the
// local table only serialises callers inside this process.
func newLocker(d Deps) (lock.Locker, error) {
	switch d.Cfg.LockBackend {
	case config.LockBackendRedis:
		if d.Cache == nil {
			return nil, fmt.Errorf("redis lock backend requires a redis client")
		}
		return lock.NewRedisLocker(d.Cache, lock.RedisOptions{
			Wait:          d.Cfg.LockWait,
			Lease:         d.Cfg.LockLease,
			RetryInterval: d.Cfg.LockRetryInterval,
		}, d.Logger), nil
	default:
		if !d.Cfg.IsDev() {
			d.Logger.Warn("process-local account locks in a non-dev environment")
		}
		return lock.NewLocalLocker(d.Cfg.LockWait), nil
	}
}
