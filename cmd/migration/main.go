package main

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/drivers/database"
	"clinic-service/internal/app/drivers/logger"
	"clinic-service/internal/app/services/core/auth"
	"clinic-service/internal/app/services/core/patients"
	"clinic-service/internal/app/services/core/payments"
	"clinic-service/internal/app/services/core/session"
	"clinic-service/internal/app/services/core/users"
	"clinic-service/internal/app/services/shared/events"
	"clinic-service/internal/app/services/shared/ledger"
	"clinic-service/internal/app/services/shared/locker"
	"clinic-service/internal/app/services/shared/redis"
	"clinic-service/internal/app/services/shared/txmanager"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/utils"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

type operatorEnv struct {
	driverConfig   *config.DriverConfig
	internalConfig *config.InternalConfig
	log            *logrus.Logger
	zapLog         *zap.Logger
}

func main() {
	env := &operatorEnv{}

	rootCmd := &cobra.Command{
		Use:           "clinic-migration",
		Short:         "Operator tasks for the clinic service database",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.load()
		},
	}
	rootCmd.AddCommand(newIndexesCommand(env), newReconcileCommand(env), newCreateAdminCommand(env))

	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func (e *operatorEnv) load() error {
	driverConfig, err := config.NewDriverConfig()
	if err != nil {
		return fmt.Errorf("load driver config: %w", err)
	}
	internalConfig, err := config.NewInternalConfig()
	if err != nil {
		return fmt.Errorf("load internal config: %w", err)
	}
	utils.SetAppEnvironment(internalConfig.App.Env)

	zapLog, err := logger.NewZapLogger(driverConfig, internalConfig)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	e.driverConfig = driverConfig
	e.internalConfig = internalConfig
	e.log = logger.NewLogrusLogger(driverConfig, internalConfig)
	e.zapLog = zapLog
	return nil
}

func (e *operatorEnv) connectMongo(ctx context.Context) (*mongo.Database, error) {
	return database.NewMongoDB(ctx, e.zapLog, e.driverConfig, e.internalConfig.MongoDB.DbName)
}

func newIndexesCommand(env *operatorEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the unique and lookup indexes on every collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := env.connectMongo(ctx)
			if err != nil {
				return err
			}
			defer db.Client().Disconnect(context.Background())

			names, err := database.EnsureIndexes(ctx, db)
			if err != nil {
				return err
			}
			env.log.WithField("indexes", names).Infof("Ensured %d indexes", len(names))
			return nil
		},
	}
}

func newReconcileCommand(env *operatorEnv) *cobra.Command {
	var lookbackHours int

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Repair patient payment references left behind by interrupted writes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := env.connectMongo(ctx)
			if err != nil {
				return err
			}
			defer db.Client().Disconnect(context.Background())

			redisClient, err := database.NewRedisClient(ctx, env.zapLog, env.driverConfig)
			if err != nil {
				return err
			}
			defer redisClient.Close()

			if lookbackHours > 0 {
				env.internalConfig.Reconciler.LookbackHours = lookbackHours
			}

			redisRepository := redis.NewRedisRepository(redisClient)
			paymentLedger := ledger.NewPaymentLedger(
				payments.NewPaymentMongoRepository(db),
				patients.NewPatientMongoRepository(db),
				txmanager.NewMongoTransactionManager(db.Client(), env.internalConfig.MongoDB.TransactionsEnabled, env.zapLog),
				events.NewNoopPaymentEventPublisher(env.zapLog),
				env.zapLog,
			)
			worker := payments.NewReconcilerWorker(env.zapLog, env.internalConfig, locker.NewLockService(redisRepository, env.zapLog), paymentLedger)

			repaired := worker.RunOnce(ctx)
			env.log.WithFields(logrus.Fields{
				"lookback_hours": env.internalConfig.Reconciler.LookbackHours,
				"repaired":       repaired,
			}).Info("Reconcile pass finished")
			return nil
		},
	}
	cmd.Flags().IntVar(&lookbackHours, "lookback-hours", 0, "override the configured lookback window")
	return cmd
}

func newCreateAdminCommand(env *operatorEnv) *cobra.Command {
	request := &requests.RegisterUser{Role: constvars.RoleAdmin}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Register the first administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.ValidateStruct(request); err != nil {
				return fmt.Errorf("invalid admin account: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			db, err := env.connectMongo(ctx)
			if err != nil {
				return err
			}
			defer db.Client().Disconnect(context.Background())

			redisClient, err := database.NewRedisClient(ctx, env.zapLog, env.driverConfig)
			if err != nil {
				return err
			}
			defer redisClient.Close()

			authUsecase := auth.NewAuthUsecase(
				users.NewUserMongoRepository(db),
				session.NewSessionService(redis.NewRedisRepository(redisClient), env.zapLog),
				env.internalConfig,
				env.zapLog,
			)
			profile, err := authUsecase.Register(ctx, request)
			if err != nil {
				return err
			}
			env.log.WithFields(logrus.Fields{
				"user_id": profile.ID,
				"email":   profile.Email,
			}).Info("Administrator registered")
			return nil
		},
	}
	cmd.Flags().StringVar(&request.Name, "name", "", "administrator name")
	cmd.Flags().StringVar(&request.Email, "email", "", "administrator email")
	cmd.Flags().StringVar(&request.Password, "password", "", "administrator password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
