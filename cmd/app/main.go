package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hawkerflow/cmd"
	amqpin "hawkerflow/internal/adapters/in/amqp"
	httpin "hawkerflow/internal/adapters/in/http"
	"hawkerflow/internal/adapters/out/notifier"
	"hawkerflow/internal/adapters/out/payment"
	"hawkerflow/internal/adapters/out/postgres"
	"hawkerflow/internal/adapters/out/rabbitmq"
	redisout "hawkerflow/internal/adapters/out/redis"
	"hawkerflow/internal/core/ports"
	"hawkerflow/internal/events"
	"hawkerflow/internal/jobs"
	"hawkerflow/internal/pkg/clock"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel})).
		With("service", configs.ServiceName)
	slog.SetDefault(logger)

	if err = run(configs, logger); err != nil {
		log.Fatalf("%s stopped: %v", configs.ServiceName, err)
	}
}

func run(configs cmd.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := openDatabase(configs)
	if err != nil {
		return err
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		defer sqlDB.Close()
	}

	broker := rabbitmq.NewManager(rabbitmq.Config{
		URL:           configs.RabbitMQURL,
		RetryAttempts: configs.BrokerRetryAttempts,
		RetryInterval: configs.BrokerRetryInterval,
	}, logger)
	if err = broker.Connect(ctx); err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}
	defer broker.Close()

	guard, closeGuard, err := deliveryGuard(configs)
	if err != nil {
		return err
	}
	defer closeGuard()

	clk := clock.NewSystem()
	app := cmd.NewCompositionRoot(configs, gormDB, cmd.Dependencies{
		Payment:   payment.NewClient(configs.PaymentServiceURL, &http.Client{}, logger),
		Publisher: rabbitmq.NewEventPublisher(broker, configs.ServiceName, clk, logger),
		Notifier:  notifier.NewLogNotifier(logger),
		Clock:     clk,
		Logger:    logger,
	})

	jobManager := jobs.NewJobManager(app.CreateSweepStallsCommandHandler(), configs.SweepSchedule, logger)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, ctx := errgroup.WithContext(ctx)

	for _, consumer := range newConsumers(&app, broker, guard, logger) {
		g.Go(func() error { return consumer.Run(ctx) })
	}

	e := newWebServer(&app, configs, logger)
	g.Go(func() error {
		logger.Info("http server listening", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return gormDB, nil
}

// deliveryGuard returns a nil guard when REDIS_ADDR is unset; consumers then
// rely on the idempotent handlers alone.
func deliveryGuard(configs cmd.Config) (ports.DeliveryGuard, func(), error) {
	if configs.RedisAddr == "" {
		return nil, func() {}, nil
	}
	client, err := redisout.NewClient(configs.RedisAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("redis client: %w", err)
	}
	guard := redisout.NewDeliveryGuard(client, configs.ServiceName, redisout.DefaultDedupTTL)
	return guard, func() { _ = client.Close() }, nil
}

func newConsumers(
	app *cmd.CompositionRoot,
	broker *rabbitmq.Manager,
	guard ports.DeliveryGuard,
	logger *slog.Logger,
) []*amqpin.Consumer {
	notify := amqpin.Notify(app.CreateNotifyCustomerCommandHandler())

	return []*amqpin.Consumer{
		amqpin.NewConsumer(events.OrderQueue, broker, guard,
			amqpin.FanOut(app.CreateFanOutOrderCommandHandler(), logger), logger),
		amqpin.NewConsumer(events.OrderNotifQueue, broker, guard, notify, logger),
		amqpin.NewConsumer(events.QueueNotifQueue, broker, guard, notify, logger),
		amqpin.NewConsumer(events.QueueLogQueue, broker, guard,
			amqpin.RecordActivity(app.CreateRecordActivityCommandHandler()), logger),
	}
}

func newWebServer(app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) *echo.Echo {
	submit := app.CreateSubmitOrderCommandHandler()
	complete := app.CreateCompleteDishCommandHandler()
	orderStatus := app.CreateGetOrderStatusQueryHandler()
	stallSummary := app.CreateGetStallSummaryQueryHandler()
	stallOrders := app.CreateGetStallOrdersQueryHandler()
	activityLogs := app.CreateGetActivityLogsQueryHandler()

	server := httpin.NewServer(submit, complete, orderStatus, stallSummary, stallOrders, activityLogs, logger)
	return httpin.NewRouter(server, httpin.RouterConfig{RateLimitRPS: configs.RateLimitRPS}, logger)
}
