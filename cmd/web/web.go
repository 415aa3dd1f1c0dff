package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sidrapp/sidr-be/config"
	"github.com/sidrapp/sidr-be/controllers"
	"github.com/sidrapp/sidr-be/db/mysqlstore"
	"github.com/sidrapp/sidr-be/middleware"
	"github.com/sidrapp/sidr-be/routes"
	"github.com/sidrapp/sidr-be/services"
	"github.com/sidrapp/sidr-be/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sidr-be",
		Short:        "Social and charity backend",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), devTokenCmd())
	return root
}

func serveCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logger, err := newLogger(&cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Sync()
			zap.ReplaceGlobals(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().String("port", "", "port to listen on (overrides server.port)")
	_ = v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	return cmd
}

// devTokenCmd mints a token for auth.provider=jwt so a local stack can be
// exercised without firebase.
func devTokenCmd() *cobra.Command {
	v := viper.New()
	var email string
	cmd := &cobra.Command{
		Use:   "dev-token <uid>",
		Short: "Sign a development token for the jwt auth provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			if cfg.Auth.Provider != config.AuthProviderJWT {
				return fmt.Errorf("dev tokens require auth.provider=%v", config.AuthProviderJWT)
			}
			token, err := services.NewJWTVerifier(cfg.Auth.JWTSecret).SignDevToken(args[0], email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	return cmd
}

func newLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	if cfg.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func serve(ctx context.Context, cfg *config.Config) error {
	shutdownTracing, err := telemetry.InitTracing(ctx, &cfg.Otel)
	if err != nil {
		return err
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(c)
	}()

	database, err := mysqlstore.GetDatabase(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer database.Close()

	var app *firebase.App
	if cfg.Auth.Provider == config.AuthProviderFirebase || cfg.Storage.Provider == config.StorageProviderGCS {
		if err := configureFirebaseCredentials(&cfg.Firebase); err != nil {
			return fmt.Errorf("configuring firebase credentials: %w", err)
		}
		if app, err = firebase.NewApp(ctx, nil); err != nil {
			return fmt.Errorf("initializing firebase: %w", err)
		}
	}

	verifier, err := newVerifier(ctx, cfg, app)
	if err != nil {
		return err
	}
	media, err := newMediaStore(ctx, cfg, app)
	if err != nil {
		return err
	}

	var events services.EventPublisher = services.NoopPublisher{}
	if brokers := splitList(cfg.Kafka.Brokers); len(brokers) > 0 {
		events = services.NewKafkaPublisher(brokers, cfg.Kafka.Topic)
	}
	defer events.Close()

	var limiter middleware.Limiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		limiter = services.NewRateLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()
	r.ContextWithFallback = true
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zap.L()))
	r.Use(middleware.NewMetrics(prometheus.DefaultRegisterer).Handler())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.Origins(),
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(middleware.RequestTimeout(cfg.Server.RequestTimeout))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.AddRoutes(&r.RouterGroup, &routes.Deps{
		DB:          database,
		Verifier:    verifier,
		Controllers: controllers.New(database, media, events),
		Limiter:     limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           otelhttp.NewHandler(r, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		zap.L().Info("listening", zap.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("running web server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newVerifier(ctx context.Context, cfg *config.Config, app *firebase.App) (services.Verifier, error) {
	if cfg.Auth.Provider == config.AuthProviderJWT {
		zap.L().Warn("using jwt auth provider, do not run this in production")
		return services.NewJWTVerifier(cfg.Auth.JWTSecret), nil
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing auth client: %w", err)
	}
	return services.NewFirebaseVerifier(authClient), nil
}

// newMediaStore returns nil for storage.provider=none; media paths are then
// stored unchecked.
func newMediaStore(ctx context.Context, cfg *config.Config, app *firebase.App) (services.MediaStore, error) {
	switch cfg.Storage.Provider {
	case config.StorageProviderGCS:
		bucket, err := services.NewStorageBucket(ctx, app, cfg.Storage.Bucket)
		if err != nil {
			return nil, fmt.Errorf("connecting to the uploads bucket: %w", err)
		}
		return bucket, nil
	case config.StorageProviderS3:
		bucket, err := services.NewS3Bucket(&cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("connecting to the uploads bucket: %w", err)
		}
		return bucket, nil
	}
	return nil, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	TargetCredentialsFile = "./google-application-credentials.json"
)

// configureFirebaseCredentials points the google client libraries at a
// credentials file, writing firebase.credentials_json out first when that is
// what was provided.
func configureFirebaseCredentials(cfg *config.FirebaseConfig) error {
	if cfg.CredentialsPath != "" {
		zap.L().Info("using firebase credentials path", zap.String("path", cfg.CredentialsPath))
		return os.Setenv(CredentialsPathEnvVar, cfg.CredentialsPath)
	}
	if _, ok := os.LookupEnv(CredentialsPathEnvVar); ok {
		return nil
	}
	if cfg.CredentialsJSON != "" {
		zap.L().Info("firebase credentials JSON detected in config")
		if err := os.WriteFile(TargetCredentialsFile, []byte(cfg.CredentialsJSON), 0400); err != nil {
			return fmt.Errorf("error writing credentials to temp file, %w", err)
		}
		if err := os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile); err != nil {
			return fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
		}
		return nil
	}
	return fmt.Errorf("must specify either firebase.credentials_path or firebase.credentials_json"+
		" (or set %v)", CredentialsPathEnvVar)
}
