package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/him-Tech/web2-backend-sub000/internal/application/auth"
	"github.com/him-Tech/web2-backend-sub000/internal/application/funding"
	"github.com/him-Tech/web2-backend-sub000/internal/application/invite"
	"github.com/him-Tech/web2-backend-sub000/internal/application/ports"
	"github.com/him-Tech/web2-backend-sub000/internal/config"
	httprouter "github.com/him-Tech/web2-backend-sub000/internal/infrastructure/http"
	"github.com/him-Tech/web2-backend-sub000/internal/infrastructure/http/handlers"
	"github.com/him-Tech/web2-backend-sub000/internal/infrastructure/http/middleware"
	"github.com/him-Tech/web2-backend-sub000/internal/infrastructure/persistence/migrate"
	"github.com/him-Tech/web2-backend-sub000/internal/infrastructure/persistence/postgres"
	"github.com/him-Tech/web2-backend-sub000/internal/infrastructure/queue"
	"github.com/him-Tech/web2-backend-sub000/internal/infrastructure/security"
)

func main() {
	runMigrations := flag.Bool("migrate", false, "apply the database schema before serving")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	if *runMigrations {
		if err := migrate.Up(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("apply schema")
		}
		log.Info().Msg("schema up to date")
	}

	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	addressRepo := postgres.NewAddressRepository(pool)
	userCompanyRepo := postgres.NewUserCompanyRepository(pool)
	ownerRepo := postgres.NewOwnerRepository(pool)
	repositoryRepo := postgres.NewRepositoryRepository(pool)
	issueRepo := postgres.NewIssueRepository(pool)
	stripeCustomerRepo := postgres.NewStripeCustomerRepository(pool)
	stripeProductRepo := postgres.NewStripeProductRepository(pool)
	stripeInvoiceRepo := postgres.NewStripeInvoiceRepository(pool)
	managedIssueRepo := postgres.NewManagedIssueRepository(pool)
	issueFundingRepo := postgres.NewIssueFundingRepository(pool)
	manualInvoiceRepo := postgres.NewManualInvoiceRepository(pool)
	companyTokenRepo := postgres.NewCompanyUserPermissionTokenRepository(pool)
	repositoryTokenRepo := postgres.NewRepositoryUserPermissionTokenRepository(pool)
	dowRepo := postgres.NewDowRepository(pool, log)

	var taskEnqueuer ports.TaskEnqueuer = queue.NewNoopEnqueuer()
	var asynqWorker *queue.Worker
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		pingErr := redisClient.Ping(ctx).Err()
		_ = redisClient.Close()
		if pingErr != nil {
			// Keep the noop enqueuer: a dead broker must not fail invite
			// creation after the token is already stored.
			log.Warn().Err(pingErr).Msg("redis unreachable; emails will only be logged")
		} else {
			redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Addr}
			asynqEnq := queue.NewAsynqEnqueuer(redisOpt, log)
			defer asynqEnq.Close()
			taskEnqueuer = asynqEnq
			asynqWorker = queue.NewWorker(redisOpt, log)
			go func() {
				if err := asynqWorker.Run(); err != nil {
					log.Warn().Err(err).Msg("asynq worker stopped")
				}
			}()
		}
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})
	inviteIssuer := security.NewJWTInviteIssuer(cfg.Invite.Secret, cfg.Invite.TTL)

	sendVerificationUC := auth.NewSendVerification(inviteIssuer, taskEnqueuer, cfg.Server.BaseURL)
	registerUC := auth.NewRegisterUser(userRepo, hasher, sendVerificationUC)
	loginUC := auth.NewLogin(userRepo, hasher, sessionRepo, cfg.Session.TTL)
	logoutUC := auth.NewLogout(sessionRepo)
	verifyEmailUC := auth.NewVerifyEmail(userRepo, inviteIssuer)
	githubCallbackUC := auth.NewGithubCallback(userRepo, sessionRepo, cfg.Session.TTL)
	handlers.InitOAuthProviders(cfg.OAuth.GithubKey, cfg.OAuth.GithubSecret, cfg.OAuth.CallbackURL, cfg.Session.Secret)

	fundIssueUC := funding.NewFundIssue(issueFundingRepo, dowRepo)
	manageIssueUC := funding.NewManageIssue(managedIssueRepo)
	updateStateUC := funding.NewUpdateIssueState(managedIssueRepo)
	availableDowUC := funding.NewAvailableDow(dowRepo)

	companyInviteUC := invite.NewCreateCompanyInvite(companyTokenRepo, companyRepo, inviteIssuer, taskEnqueuer, cfg.Server.BaseURL)
	acceptCompanyUC := invite.NewAcceptCompanyInvite(companyTokenRepo, userCompanyRepo)
	repositoryInviteUC := invite.NewCreateRepositoryInvite(repositoryTokenRepo, repositoryRepo, inviteIssuer, taskEnqueuer, cfg.Server.BaseURL)
	acceptRepositoryUC := invite.NewAcceptRepositoryInvite(repositoryTokenRepo)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, logoutUC, verifyEmailUC, sendVerificationUC, log)
	fundingHandler := handlers.NewFundingHandler(fundIssueUC, manageIssueUC, updateStateUC, availableDowUC, issueRepo, log)
	inviteHandler := handlers.NewInviteHandler(acceptCompanyUC, acceptRepositoryUC, log)
	adminHandler := handlers.NewAdminHandler(companyRepo, addressRepo, manualInvoiceRepo, companyInviteUC, repositoryInviteUC, log)
	stripeHandler := handlers.NewStripeHandler(stripeCustomerRepo, stripeProductRepo, stripeInvoiceRepo, log)
	githubHandler := handlers.NewGithubHandler(ownerRepo, repositoryRepo, issueRepo, log)
	healthHandler := handlers.NewHealthHandler(pool)

	sessionAuth := middleware.NewSessionAuthenticator(sessionRepo, userRepo)
	requireAdmin := middleware.RequireAdminSecret(cfg.Admin.Secret)
	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.SecurityHeaders(cfg.Secure.IsDevelopment)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:    authHandler,
		HealthHandler:  healthHandler,
		FundingHandler: fundingHandler,
		InviteHandler:  inviteHandler,
		AdminHandler:   adminHandler,
		StripeHandler:  stripeHandler,
		GithubHandler:  githubHandler,
		RequireSession: sessionAuth.RequireSession,
		RequireAdmin:   requireAdmin,
		OAuthBegin:     handlers.OAuthBegin(),
		OAuthCallback:  handlers.OAuthCallback(githubCallbackUC, cfg.Server.BaseURL, log),
		Log:            log,
		Secure:         secureMiddleware,
		IPRateLimit:    ipLimit,
		Metrics:        true,
	})

	// Expired sessions are reaped in the background so the table stays small.
	cleanupCtx, cancelCleanup := context.WithCancel(ctx)
	defer cancelCleanup()
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-cleanupCtx.Done():
				return
			case <-ticker.C:
				n, err := sessionRepo.DeleteExpired(cleanupCtx)
				if err != nil {
					log.Warn().Err(err).Msg("session cleanup")
					continue
				}
				if n > 0 {
					log.Info().Int64("deleted", n).Msg("expired sessions removed")
				}
			}
		}
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
