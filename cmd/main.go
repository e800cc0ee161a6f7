package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	createAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_appointment"
	createPromotionHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_promotion"
	createServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_service"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getPromotionCandidatesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_promotion_candidates"
	getScheduleHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_schedule"
	listAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_appointments"
	listPromotionsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_promotions"
	listServicesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_services"
	registerSalonHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/register_salon"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_appointment_status"
	updatePromotionHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_promotion"
	updateScheduleHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_schedule"
	updateServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_service"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	"github.com/m04kA/SMC-SalonService/internal/infra/cache"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	promotionRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/promotion"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonService/internal/integrations/eventbus"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-SalonService/internal/service/catalog"
	promotionsService "github.com/m04kA/SMC-SalonService/internal/service/promotions"
	salonsService "github.com/m04kA/SMC-SalonService/internal/service/salons"
	createAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	getPromotionCandidatesUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_promotion_candidates"
	updateAppointmentStatusUC "github.com/m04kA/SMC-SalonService/internal/usecase/update_appointment_status"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// eventPublisher публикация событий о записях: NATS или noop
type eventPublisher interface {
	createAppointmentUC.EventPublisher
	updateAppointmentStatusUC.EventPublisher
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	promotionRepository := promotionRepo.NewRepository(wrappedDB)

	// Профили салонов: Postgres напрямую или через Redis кеш
	var salons cache.SalonRepository = salonRepo.NewRepository(wrappedDB)

	// Кеш профилей салонов (если включен)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, cache reads will fall back to database: %v", cfg.Redis.Addr, err)
		}
		salons = cache.NewSalonCache(salons, redisClient, time.Duration(cfg.Redis.TTL)*time.Second, metricsCollector, log)
		log.Info("Salon cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Публикация событий (если включена)
	var (
		natsConn  *nats.Conn
		publisher eventPublisher = eventbus.Noop{}
	)
	if cfg.NATS.Enabled {
		natsConn, err = eventbus.Connect(cfg.NATS.URL, cfg.Metrics.ServiceName, log)
		if err != nil {
			log.Fatal("Failed to connect to NATS: %v", err)
		}
		publisher = eventbus.NewPublisher(natsConn, cfg.NATS.SubjectPrefix, metricsCollector, log)
		log.Info("Event publishing enabled (url=%s, prefix=%s)", cfg.NATS.URL, cfg.NATS.SubjectPrefix)
	}

	// Инициализируем сервисы
	salonSvc := salonsService.NewService(salons, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	promotionSvc := promotionsService.NewService(promotionRepository, catalogRepository, log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, txMgr, location, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		salons,
		appointmentRepository,
		metricsCollector,
		location,
		log,
	)

	getPromotionCandidatesUseCase := getPromotionCandidatesUC.NewUseCase(
		catalogRepository,
		promotionRepository,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		salons,
		catalogRepository,
		promotionRepository,
		publisher,
		txMgr,
		metricsCollector,
		location,
		log,
	)

	updateAppointmentStatusUseCase := updateAppointmentStatusUC.NewUseCase(
		appointmentRepository,
		publisher,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	registerSalon := registerSalonHandler.NewHandler(salonSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getPromotionCandidates := getPromotionCandidatesHandler.NewHandler(getPromotionCandidatesUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)

	getSchedule := getScheduleHandler.NewHandler(salonSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(salonSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	listPromotions := listPromotionsHandler.NewHandler(promotionSvc, log)
	createPromotion := createPromotionHandler.NewHandler(promotionSvc, log)
	updatePromotion := updatePromotionHandler.NewHandler(promotionSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(updateAppointmentStatusUseCase, log)

	bookingLimiter := middleware.NewRateLimiter(
		cfg.Booking.RateLimitPerMinute,
		cfg.Booking.RateLimitBurst,
		metricsCollector,
		log,
	)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", healthHandler(wrappedDB)).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (страница записи клиента)
	// ============================================================

	// Регистрация салона
	api.HandleFunc("/salons", registerSalon.Handle).Methods(http.MethodPost)

	// Свободные слоты на дату
	api.HandleFunc("/salons/{salonId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Активные услуги салона
	api.HandleFunc("/salons/{salonId}/services", listServices.Handle).Methods(http.MethodGet)

	// Акции для выбранной услуги и даты
	api.HandleFunc("/salons/{salonId}/promotion-candidates", getPromotionCandidates.Handle).Methods(http.MethodGet)

	// Создание записи (ограничение частоты по IP)
	api.Handle("/salons/{salonId}/appointments",
		bookingLimiter.Middleware(http.HandlerFunc(createAppointment.Handle))).Methods(http.MethodPost)

	// ============================================================
	// OWNER ROUTES (требуют X-Salon-ID header)
	// ============================================================

	owner := api.PathPrefix("/salons/{salonId}").Subrouter()
	owner.Use(middleware.OwnerAuth)

	// --- Расписание ---
	owner.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// --- Каталог услуг ---
	owner.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	owner.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)

	// --- Акции ---
	owner.HandleFunc("/promotions", listPromotions.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/promotions", createPromotion.Handle).Methods(http.MethodPost)
	owner.HandleFunc("/promotions/{promotionId}", updatePromotion.Handle).Methods(http.MethodPut)

	// --- Записи и сводка ---
	owner.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if natsConn != nil {
		if err := natsConn.Drain(); err != nil {
			log.Error("Failed to drain NATS connection: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}

// healthHandler проверяет доступность базы данных
func healthHandler(db *dbmetrics.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
