package app

import (
	"fmt"

	"order-service/internal/audit"
	"order-service/internal/auth"
	"order-service/internal/config"
	apphttp "order-service/internal/http"
	"order-service/internal/notify"
	"order-service/internal/repository/postgres"
	"order-service/internal/resettoken"
	"order-service/pkg/mailer"
	"order-service/pkg/mailer/providers"
	"order-service/pkg/mailer/strategies"
)

const (
	mailStrategySingle   = "single"
	mailStrategyFailover = "failover"
)

// InitializeService wires up all dependencies and returns a configured Service
func InitializeService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	resetStore, err := resettoken.New(&cfg.Redis, cfg.Mail.PasswordResetTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	emailService, err := buildEmailService(&cfg.Mail)
	if err != nil {
		resetStore.Close()
		db.Close()
		return nil, fmt.Errorf("failed to build email service: %w", err)
	}

	notifier, err := notify.NewService(emailService, cfg.Mail.PasswordResetURL, cfg.Mail.PasswordResetTTL)
	if err != nil {
		resetStore.Close()
		db.Close()
		return nil, fmt.Errorf("failed to build notifier: %w", err)
	}

	userRepo := postgres.NewUserRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	auditLogger := audit.NewLogger(db.Pool)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryDuration)
	bearerValidator := auth.NewBearerValidator(cfg.Auth.BearerTokens, cfg.Auth.ExemptPaths)
	authMiddleware := auth.NewMiddleware(jwtService, bearerValidator, auditLogger, cfg.Auth.LogSecurityEvents)
	whitelist := auth.NewDomainWhitelist(cfg.Auth.AllowedOriginDomains)

	server := apphttp.NewServer(&apphttp.ServerDependencies{
		Config:          cfg,
		UserRepo:        userRepo,
		OrderRepo:       orderRepo,
		ResetStore:      resetStore,
		Notifier:        notifier,
		EventQuerier:    auditLogger,
		JWTService:      jwtService,
		AuthMiddleware:  authMiddleware,
		DomainWhitelist: whitelist,
	})

	return &Service{
		config:     cfg,
		db:         db,
		resetStore: resetStore,
		server:     server,
	}, nil
}

func buildEmailService(cfg *config.MailConfig) (*mailer.EmailService, error) {
	var providerList []providers.EmailProvider

	if cfg.ResendAPIKey != "" {
		providerList = append(providerList, providers.NewResendProvider(providers.ResendConfig{
			APIKey: cfg.ResendAPIKey,
		}))
	}
	if cfg.SendGridAPIKey != "" {
		providerList = append(providerList, providers.NewSendGridProvider(providers.SendGridConfig{
			APIKey: cfg.SendGridAPIKey,
		}))
	}

	var strategy strategies.EmailStrategy
	switch cfg.Strategy {
	case mailStrategySingle:
		strategy = &strategies.SingleProviderStrategy{}
	case mailStrategyFailover:
		strategy = &strategies.FailoverStrategy{}
	default:
		return nil, fmt.Errorf("unknown mail strategy %q", cfg.Strategy)
	}

	return mailer.NewEmailService(mailer.EmailServiceConfig{
		Providers:   providerList,
		Strategy:    strategy,
		DefaultFrom: cfg.From,
	})
}
