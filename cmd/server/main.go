package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/adoptme/service-adoption/internal/application"
	"github.com/adoptme/service-adoption/internal/config"
	"github.com/adoptme/service-adoption/internal/domain/account"
	"github.com/adoptme/service-adoption/internal/domain/adoption"
	"github.com/adoptme/service-adoption/internal/domain/contact"
	"github.com/adoptme/service-adoption/internal/domain/donation"
	"github.com/adoptme/service-adoption/internal/domain/favorite"
	"github.com/adoptme/service-adoption/internal/domain/pet"
	"github.com/adoptme/service-adoption/internal/domain/shelter"
	adoptionEvents "github.com/adoptme/service-adoption/internal/events"
	"github.com/adoptme/service-adoption/internal/handler"
	"github.com/adoptme/service-adoption/internal/platform/auth"
	"github.com/adoptme/service-adoption/internal/platform/database"
	"github.com/adoptme/service-adoption/internal/platform/health"
	"github.com/adoptme/service-adoption/internal/platform/kafka"
	"github.com/adoptme/service-adoption/internal/platform/logger"
	"github.com/adoptme/service-adoption/internal/repository"
	"github.com/adoptme/service-adoption/internal/repository/memory"
)

const serviceName = "service-adoption"

type repositories struct {
	users     account.UserRepository
	pets      pet.PetRepository
	shelters  shelter.ShelterRepository
	messages  contact.MessageRepository
	info      contact.InfoRepository
	donations donation.DonationRepository
	adoptions adoption.RequestRepository
	favorites favorite.FavoriteRepository
	pinger    health.Pinger
	closeFn   func() error
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.StorageDriver),
		zap.Bool("kafka", cfg.KafkaEnabled()),
	)

	repos, err := openRepositories(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer func() { _ = repos.closeFn() }()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		15*time.Minute,
		7*24*time.Hour,
	)

	// Initialize Kafka producer; without brokers events are dropped.
	var producer kafka.Publisher = kafka.NopPublisher{}
	if cfg.KafkaEnabled() {
		kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaProducer.Close() }()
		producer = kafkaProducer
	}

	// Initialize application services
	petService := application.NewPetService(repos.pets, producer, log)
	accountService := application.NewAccountService(repos.users, jwtManager, log)
	if cfg.BootstrapAdmin.Enabled() {
		if _, err := accountService.EnsureAdmin(context.Background(), cfg.BootstrapAdmin.Email, cfg.BootstrapAdmin.Password); err != nil {
			log.Fatal("failed to ensure bootstrap admin", zap.Error(err))
		}
	}
	shelterService := application.NewShelterService(repos.shelters, petService, log)
	contactService := application.NewContactService(repos.messages, repos.info, producer, log)
	donationService := application.NewDonationService(
		repos.donations,
		repos.users,
		repos.shelters,
		producer,
		log,
		cfg.KafkaEnabled(),
	)
	adoptionService := application.NewAdoptionService(repos.adoptions, repos.pets, producer, log)
	favoriteService := application.NewFavoriteService(repos.favorites, repos.pets, log)
	adminService := application.NewAdminService(accountService, petService, contactService, donationService)

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(handler.Services{
		Accounts:  accountService,
		Pets:      petService,
		Shelters:  shelterService,
		Contact:   contactService,
		Donations: donationService,
		Adoptions: adoptionService,
		Favorites: favoriteService,
		Admin:     adminService,
	}, jwtManager, health.NewHandler(repos.pinger, serviceName), log, cfg.CORSAllowedOrigins)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if cfg.KafkaEnabled() {
		groupID := cfg.KafkaConfig.GroupPrefix + "adoption-service"
		paymentConsumer := adoptionEvents.NewDonationPaymentConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			donationService,
			log,
		)
		defer func() { _ = paymentConsumer.Close() }()

		g.Go(func() error {
			log.Info("starting payment event consumer")
			if err := paymentConsumer.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("payment consumer: %w", err)
			}
			return nil
		})
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down " + serviceName + "...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server forced shutdown", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error(serviceName+" exited with error", zap.Error(err))
	}
	log.Info(serviceName + " stopped")
}

func openRepositories(cfg *config.ServiceConfig, log *zap.Logger) (*repositories, error) {
	if cfg.StorageDriver == config.StorageMemory {
		log.Warn("using in-memory storage; data is lost on restart")
		pets := memory.NewPetRepo()
		return &repositories{
			users:     memory.NewUserRepo(),
			pets:      pets,
			shelters:  memory.NewShelterRepo(),
			messages:  memory.NewContactMessageRepo(),
			info:      memory.NewContactInfoRepo(),
			donations: memory.NewDonationRepo(),
			adoptions: memory.NewAdoptionRepo(pets),
			favorites: memory.NewFavoriteRepo(),
			closeFn:   func() error { return nil },
		}, nil
	}

	// Connect to database
	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(repository.Models()...); err != nil {
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else if err := database.RunMigrations(dbConfig.DatabaseURL(), "migrations", log); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	contactRepo := repository.NewGormContactRepository(db)
	return &repositories{
		users:     repository.NewGormUserRepository(db),
		pets:      repository.NewGormPetRepository(db),
		shelters:  repository.NewGormShelterRepository(db),
		messages:  contactRepo,
		info:      contactRepo.InfoStore(),
		donations: repository.NewGormDonationRepository(db),
		adoptions: repository.NewGormAdoptionRepository(db),
		favorites: repository.NewGormFavoriteRepository(db),
		pinger:    sqlDB,
		closeFn:   sqlDB.Close,
	}, nil
}
