package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"plant_nursery/config"
	"plant_nursery/database"
	"plant_nursery/database/handler"
	"plant_nursery/database/otpstore"
	"plant_nursery/middleware"
	"plant_nursery/server"
)

const shutDownTimeOut = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a .env or yaml config file")
	flag.Parse()

	var otp *otpstore.Store
	// log level, webhook secret and payee id follow the file at runtime;
	// everything else needs a restart
	apply := func(cf *config.Config) {
		if level, err := logrus.ParseLevel(cf.LogLevel); err == nil {
			logrus.SetLevel(level)
		}
		handler.Configure(handler.Options{OTP: otp, WebhookSecret: cf.WebhookSecret, UPIPayeeID: cf.UPIPayeeID})
	}

	cf, err := config.Load(*configPath, apply)
	if err != nil {
		logrus.Fatalf("Failed to load config with error: %+v", err)
	}

	if cf.TraceStdout {
		shutdownTracing, err := setupTracing()
		if err != nil {
			logrus.Fatalf("Failed to set up tracing with error: %+v", err)
		}
		defer shutdownTracing()
	}

	dsn := cf.PostgresDSN()
	if cf.DbDriver == database.DriverSQLite {
		dsn = cf.SqlitePath
	}
	if err := database.ConnectAndMigrate(cf.DbDriver, dsn); err != nil {
		logrus.Panicf("Failed to initialize and migrate database with error: %+v", err)
	}
	logrus.Info("migration successfully!!")

	middleware.Configure(cf.JWTSecret, cf.TokenTTL)

	if cf.OTPEnabled {
		client := redis.NewClient(&redis.Options{Addr: cf.RedisAddr, Password: cf.RedisPassword})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logrus.Fatalf("Failed to connect to redis with error: %+v", err)
		}
		defer client.Close()
		otp = otpstore.New(client, cf.OTPTTL)
	}
	apply(cf)

	srv := server.SetupRoutes(cf.BasePath)
	go func() {
		if err := srv.Run(":" + cf.ServerPort); err != nil {
			logrus.Errorf("Failed to run server with error %+v", err)
		}
	}()
	logrus.Printf("Server started at :%s%s", cf.ServerPort, cf.BasePath)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done

	logrus.Info("shutting down server")
	if err := srv.Stop(shutDownTimeOut); err != nil {
		logrus.Errorf("Failed to gracefully shutdown server with error %+v", err)
	}
	database.CloseDb()
}

func setupTracing() (func(), error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutDownTimeOut)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logrus.Errorf("Failed to flush traces with error %+v", err)
		}
	}, nil
}
