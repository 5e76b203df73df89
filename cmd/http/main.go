package main

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/app/delivery/http/routers"
	"clinic-service/internal/app/drivers/database"
	"clinic-service/internal/app/drivers/logger"
	"clinic-service/internal/app/drivers/messaging"
	"clinic-service/internal/app/drivers/storage"
	"clinic-service/internal/app/services/core/auth"
	"clinic-service/internal/app/services/core/insurance"
	"clinic-service/internal/app/services/core/patients"
	"clinic-service/internal/app/services/core/payments"
	"clinic-service/internal/app/services/core/roles"
	"clinic-service/internal/app/services/core/session"
	"clinic-service/internal/app/services/core/users"
	"clinic-service/internal/app/services/shared/events"
	"clinic-service/internal/app/services/shared/ledger"
	"clinic-service/internal/app/services/shared/locker"
	"clinic-service/internal/app/services/shared/payment_gateway"
	"clinic-service/internal/app/services/shared/ratelimiter"
	"clinic-service/internal/app/services/shared/redis"
	sharedStorage "clinic-service/internal/app/services/shared/storage"
	"clinic-service/internal/app/services/shared/txmanager"
	"clinic-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig, err := config.NewDriverConfig()
	if err != nil {
		stdlog.Fatalf("Error loading driver config: %v", err)
	}
	internalConfig, err := config.NewInternalConfig()
	if err != nil {
		stdlog.Fatalf("Error loading internal config: %v", err)
	}
	utils.SetAppEnvironment(internalConfig.App.Env)

	log, err := logger.NewZapLogger(driverConfig, internalConfig)
	if err != nil {
		stdlog.Fatalf("Error building logger: %v", err)
	}

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	ctx := context.Background()

	mongoDB, err := database.NewMongoDB(ctx, log, driverConfig, internalConfig.MongoDB.DbName)
	if err != nil {
		log.Fatal("Error connecting to MongoDB", zap.Error(err))
	}
	redisClient, err := database.NewRedisClient(ctx, log, driverConfig)
	if err != nil {
		log.Fatal("Error connecting to Redis", zap.Error(err))
	}
	rabbitMQ, err := messaging.NewRabbitMQ(log, driverConfig)
	if err != nil {
		log.Warn("RabbitMQ unavailable, payment events will only be logged", zap.Error(err))
	}
	minioClient, err := storage.NewMinio(log, driverConfig)
	if err != nil {
		log.Fatal("Error connecting to MinIO", zap.Error(err))
	}

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         log,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	err = bootstrapingTheApp(ctx, bootstrap)
	if err != nil {
		log.Fatal("Error bootstrapping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              net.JoinHostPort(internalConfig.App.Address, internalConfig.App.Port),
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", zap.String("address", server.Addr), zap.String("version", internalConfig.App.Version))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Error releasing resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) error {
	log := bootstrap.Logger
	cfg := bootstrap.InternalConfig

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, log)
	phoneLimiter := ratelimiter.NewResourceLimiter(redisRepository, log)
	sessionService := session.NewSessionService(redisRepository, log)

	// Events
	var publisher contracts.PaymentEventPublisher
	if bootstrap.RabbitMQ != nil {
		amqpPublisher, err := events.NewPaymentEventPublisher(bootstrap.RabbitMQ, log, cfg.RabbitMQ.PaymentEventsQueue)
		if err != nil {
			return fmt.Errorf("declare payment events queue: %w", err)
		}
		publisher = amqpPublisher
	} else {
		publisher = events.NewNoopPaymentEventPublisher(log)
	}

	// Storage
	claimStorage := sharedStorage.NewMinioStorage(bootstrap.Minio)
	err := claimStorage.EnsureBucket(ctx, cfg.Minio.ClaimDocumentsBucket)
	if err != nil {
		return fmt.Errorf("ensure claim documents bucket: %w", err)
	}

	// Repositories
	indexes, err := database.EnsureIndexes(ctx, bootstrap.MongoDB)
	if err != nil {
		return fmt.Errorf("ensure mongo indexes: %w", err)
	}
	log.Info("Successfully ensured mongo indexes", zap.Strings("indexes", indexes))

	patientRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB)
	paymentRepository := payments.NewPaymentMongoRepository(bootstrap.MongoDB)
	userRepository := users.NewUserMongoRepository(bootstrap.MongoDB)
	transactionManager := txmanager.NewMongoTransactionManager(bootstrap.MongoDB.Client(), cfg.MongoDB.TransactionsEnabled, log)
	paymentLedger := ledger.NewPaymentLedger(paymentRepository, patientRepository, transactionManager, publisher, log)

	// Usecases
	gateway := payment_gateway.NewMpesaService(cfg, redisRepository, log)
	patientUsecase := patients.NewPatientUsecase(patientRepository, log)
	insuranceUsecase := insurance.NewInsuranceUsecase(patientRepository, paymentRepository, paymentLedger, claimStorage, cfg, log)
	paymentUsecase := payments.NewPaymentUsecase(patientRepository, paymentRepository, paymentLedger, gateway, publisher, insuranceUsecase, phoneLimiter, cfg, log)
	authUsecase := auth.NewAuthUsecase(userRepository, sessionService, cfg, log)

	// Authorization
	authorizationGate, err := roles.NewAuthorizationGate(log)
	if err != nil {
		return fmt.Errorf("build authorization gate: %w", err)
	}

	// Middlewares
	middlewares := middlewares.NewMiddlewares(log, authUsecase, authorizationGate, cfg)

	routers.SetupRoutes(bootstrap.Router, cfg, middlewares, &routers.Controllers{
		Patient:   controllers.NewPatientController(log, patientUsecase),
		Payment:   controllers.NewPaymentController(log, paymentUsecase),
		Insurance: controllers.NewInsuranceController(log, insuranceUsecase),
		Auth:      controllers.NewAuthController(log, authUsecase),
		Health:    controllers.NewHealthController(),
	})

	// Reconciler
	if cfg.Reconciler.Enabled {
		reconciler := payments.NewReconcilerWorker(log, cfg, lockerService, paymentLedger)
		reconciler.Start(ctx)
		bootstrap.ReconcilerStop = reconciler.Stop
	}
	return nil
}
