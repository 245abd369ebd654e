package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	applyPromoCodeHandler "github.com/m04kA/SMC-SeatBooking/internal/api/handlers/apply_promo_code"
	confirmPaymentHandler "github.com/m04kA/SMC-SeatBooking/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/SMC-SeatBooking/internal/api/handlers/create_booking"
	getAvailableSeatsHandler "github.com/m04kA/SMC-SeatBooking/internal/api/handlers/get_available_seats"
	getBookingHandler "github.com/m04kA/SMC-SeatBooking/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-SeatBooking/internal/api/handlers/get_user_bookings"
	listEntitlementsHandler "github.com/m04kA/SMC-SeatBooking/internal/api/handlers/list_entitlements"
	quotePriceHandler "github.com/m04kA/SMC-SeatBooking/internal/api/handlers/quote_price"
	rescheduleBookingHandler "github.com/m04kA/SMC-SeatBooking/internal/api/handlers/reschedule_booking"
	retryPaymentHandler "github.com/m04kA/SMC-SeatBooking/internal/api/handlers/retry_payment"
	"github.com/m04kA/SMC-SeatBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SeatBooking/internal/config"
	paymentStateCache "github.com/m04kA/SMC-SeatBooking/internal/infra/cache/paymentstate"
	"github.com/m04kA/SMC-SeatBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-SeatBooking/internal/infra/storage/booking"
	entitlementRepo "github.com/m04kA/SMC-SeatBooking/internal/infra/storage/entitlement"
	locationRepo "github.com/m04kA/SMC-SeatBooking/internal/infra/storage/location"
	rateCardRepo "github.com/m04kA/SMC-SeatBooking/internal/infra/storage/ratecard"
	"github.com/m04kA/SMC-SeatBooking/internal/infra/storage/schema"
	"github.com/m04kA/SMC-SeatBooking/internal/integrations/paymentgateway"
	userServiceClient "github.com/m04kA/SMC-SeatBooking/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-SeatBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SeatBooking/internal/service/checkout"
	"github.com/m04kA/SMC-SeatBooking/internal/service/discount"
	"github.com/m04kA/SMC-SeatBooking/internal/service/entitlements"
	"github.com/m04kA/SMC-SeatBooking/internal/service/paymentstate"
	"github.com/m04kA/SMC-SeatBooking/internal/service/pricing"
	"github.com/m04kA/SMC-SeatBooking/internal/service/ratecard"
	"github.com/m04kA/SMC-SeatBooking/internal/service/seats"
	applyPromoCodeUC "github.com/m04kA/SMC-SeatBooking/internal/usecase/apply_promo_code"
	confirmPaymentUC "github.com/m04kA/SMC-SeatBooking/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/SMC-SeatBooking/internal/usecase/create_booking"
	getAvailableSeatsUC "github.com/m04kA/SMC-SeatBooking/internal/usecase/get_available_seats"
	listEntitlementsUC "github.com/m04kA/SMC-SeatBooking/internal/usecase/list_entitlements"
	quotePriceUC "github.com/m04kA/SMC-SeatBooking/internal/usecase/quote_price"
	rescheduleBookingUC "github.com/m04kA/SMC-SeatBooking/internal/usecase/reschedule_booking"
	retryPaymentUC "github.com/m04kA/SMC-SeatBooking/internal/usecase/retry_payment"
	"github.com/m04kA/SMC-SeatBooking/pkg/logger"
	"github.com/m04kA/SMC-SeatBooking/pkg/metrics"
	"github.com/m04kA/SMC-SeatBooking/pkg/txmanager"
)

// bookingEvents события, которые публикуют checkout и use cases
type bookingEvents interface {
	checkout.EventPublisher
	confirmPaymentUC.EventPublisher
	rescheduleBookingUC.EventPublisher
}

func main() {
	configPath := os.Getenv("SEATBOOKING_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
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

	log.Info("Starting SMC-SeatBooking...")
	log.Info("Configuration loaded from %s", configPath)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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
	db.SetConnMaxLifetime(config.Seconds(cfg.Database.ConnMaxLifetime))

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.ApplySchema {
		if err := schema.Apply(ctx, db); err != nil {
			log.Fatal("Failed to apply schema: %v", err)
		}
		log.Info("Database schema applied")
	}

	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(db)
	entitlementRepository := entitlementRepo.NewRepository(db)
	locationRepository := locationRepo.NewRepository(db)
	rateCardRepository := rateCardRepo.NewRepository(db)

	// Тарифы: источник в БД, резерв из config.toml
	rateCardSvc := ratecard.NewService(
		rateCardRepository,
		ratecard.Snapshot{Table: ratecard.NewTable(cfg.FallbackRates()), Fees: cfg.FallbackFees()},
		config.Seconds(cfg.Pricing.ReloadIntervalSeconds),
		log,
	)
	if err := rateCardSvc.Reload(ctx); err != nil {
		log.Warn("Initial rate card load failed, using config fallback: %v", err)
	}
	go rateCardSvc.Run(ctx)

	// Состояние платежей: redis или память процесса
	var (
		stateStore  paymentstate.Store
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		stateStore = paymentStateCache.NewStore(redisClient)
		log.Info("Payment state stored in redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	} else {
		memoryStore := paymentstate.NewMemoryStore()
		go memoryStore.RunCleanup(ctx, config.Seconds(cfg.Booking.CleanupIntervalSeconds), log)
		stateStore = memoryStore
		log.Warn("Redis disabled: payment state kept in process memory")
	}
	tracker := paymentstate.NewTracker(
		stateStore,
		config.Seconds(cfg.Booking.MarkerTTLSeconds),
		config.Seconds(cfg.Booking.CarryOverTTLSeconds),
		log,
	)

	// События бронирования
	var publisher bookingEvents = events.NopPublisher{}
	if cfg.Events.Enabled {
		streamPublisher, err := events.NewRedisPublisher(redisClient, log.Watermill())
		if err != nil {
			log.Fatal("Failed to create event publisher: %v", err)
		}
		defer streamPublisher.Close()

		eventBus, err := events.NewEventBus(streamPublisher, log.Watermill())
		if err != nil {
			log.Fatal("Failed to create event bus: %v", err)
		}
		publisher = events.NewPublisher(eventBus)
		log.Info("Booking events published to redis streams with prefix %s", events.TopicPrefix)
	}

	// Инициализируем интеграционных клиентов
	gatewayClient := paymentgateway.NewClient(
		cfg.PaymentGateway.URL,
		cfg.PaymentGateway.APIKey,
		cfg.PaymentGateway.Currency,
		cfg.PaymentGateway.CallbackURL,
		config.Seconds(cfg.PaymentGateway.Timeout),
		log,
	)
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		config.Seconds(cfg.UserService.Timeout),
		log,
	)
	log.Info("Integration clients initialized (PaymentGateway=%s timeout=%ds, UserService=%s timeout=%ds)",
		cfg.PaymentGateway.URL, cfg.PaymentGateway.Timeout, cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем сервисы
	rules := cfg.WindowRules()
	discountEngine := discount.NewEngine()
	quoter := pricing.NewCalculator(rateCardSvc, discountEngine, metricsCollector)
	seatResolver := seats.NewResolver(bookingRepository, locationRepository, log)
	entitlementSvc := entitlements.NewService(entitlementRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	checkoutSvc := checkout.NewService(
		bookingRepository,
		entitlementSvc,
		gatewayClient,
		tracker,
		publisher,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		seatResolver,
		entitlementSvc,
		userClient,
		quoter,
		checkoutSvc,
		txMgr,
		rules,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		checkoutSvc,
		entitlementSvc,
		tracker,
		publisher,
		txMgr,
		metricsCollector,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		seatResolver,
		rateCardSvc,
		entitlementSvc,
		discountEngine,
		gatewayClient,
		tracker,
		publisher,
		txMgr,
		metricsCollector,
		rules,
		log,
	)
	retryPaymentUseCase := retryPaymentUC.NewUseCase(
		bookingRepository,
		seatResolver,
		entitlementSvc,
		quoter,
		checkoutSvc,
		txMgr,
		rules,
		log,
	)
	getAvailableSeatsUseCase := getAvailableSeatsUC.NewUseCase(seatResolver, bookingRepository, rules, log)
	quotePriceUseCase := quotePriceUC.NewUseCase(entitlementSvc, quoter, rules, log)
	listEntitlementsUseCase := listEntitlementsUC.NewUseCase(entitlementRepository, log)
	applyPromoCodeUseCase := applyPromoCodeUC.NewUseCase(entitlementSvc, quoter, rules, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	retryPayment := retryPaymentHandler.NewHandler(retryPaymentUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	getAvailableSeats := getAvailableSeatsHandler.NewHandler(getAvailableSeatsUseCase, log)
	listEntitlements := listEntitlementsHandler.NewHandler(listEntitlementsUseCase, log)
	applyPromoCode := applyPromoCodeHandler.NewHandler(applyPromoCodeUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Callback платежного шлюза
	api.HandleFunc("/payments/callback", confirmPayment.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/pay", retryPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Места и цены ---
	protected.HandleFunc("/locations/{locationId}/seats", getAvailableSeats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/quotes", quotePrice.Handle).Methods(http.MethodPost)

	// --- Пакеты, промокоды, кредиты ---
	protected.HandleFunc("/users/{userId}/entitlements", listEntitlements.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/promo-codes/apply", applyPromoCode.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  config.Seconds(cfg.Server.ReadTimeout),
		WriteTimeout: config.Seconds(cfg.Server.WriteTimeout),
		IdleTimeout:  config.Seconds(cfg.Server.IdleTimeout),
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи (перезагрузка тарифов, очистка маркеров)
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Seconds(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
