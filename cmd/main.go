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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_appointment"
	checkoutOrderHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/checkout_order"
	clearBookingSessionHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/clear_booking_session"
	createAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_appointment"
	exportCalendarHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/export_calendar"
	getAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getBookingSessionHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_booking_session"
	getCartHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_cart"
	getProductsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_products"
	getServicesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_services"
	getStylistsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_stylists"
	getUserAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_user_appointments"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_appointment_status"
	updateBookingSessionHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_booking_session"
	updateCartHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_cart"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	shopRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shop"
	identityServiceClient "github.com/m04kA/SMC-SalonService/internal/integrations/identityservice"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingflow"
	calendarService "github.com/m04kA/SMC-SalonService/internal/service/calendar"
	catalogService "github.com/m04kA/SMC-SalonService/internal/service/catalog"
	shopService "github.com/m04kA/SMC-SalonService/internal/service/shop"
	createAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (IdentityService=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		catalogRepository     *catalogRepo.Repository
		shopRepository        *shopRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		shopRepository = shopRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		shopRepository = shopRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем booking-сессии с TTL-очисткой заброшенных
	sessionTTL := time.Duration(cfg.Booking.SessionTTLMinutes) * time.Minute
	sessions := bookingflow.NewManager(sessionTTL, log)

	stopSweeperCh := make(chan struct{})
	go sessions.RunSweeper(sessionTTL, stopSweeperCh)
	log.Info("Booking session sweeper started (ttl=%s)", sessionTTL)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(catalogRepository, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, identityClient, log)
	calendarSvc := calendarService.NewService(appointmentRepository, catalogRepository, identityClient, log)
	shopSvc := shopService.NewService(shopRepository, shopRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		sessions,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		sessions,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	getStylists := getStylistsHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBookingSession := getBookingSessionHandler.NewHandler(sessions, log)
	updateBookingSession := updateBookingSessionHandler.NewHandler(sessions, catalogSvc, log)
	clearBookingSession := clearBookingSessionHandler.NewHandler(sessions, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	exportCalendar := exportCalendarHandler.NewHandler(calendarSvc, log)
	getProducts := getProductsHandler.NewHandler(shopSvc, log)
	getCart := getCartHandler.NewHandler(shopSvc, log)
	updateCart := updateCartHandler.NewHandler(shopSvc, log)
	checkoutOrder := checkoutOrderHandler.NewHandler(shopSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог услуг и мастеров
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/stylists", getStylists.Handle).Methods(http.MethodGet)

	// Доступные слоты мастера на день
	api.HandleFunc("/stylists/{stylistId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог товаров магазина
	api.HandleFunc("/products", getProducts.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Booking-сессия ---
	protected.HandleFunc("/booking-session", getBookingSession.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/booking-session", updateBookingSession.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/booking-session", clearBookingSession.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	// Создание записи из booking-сессии
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel",
		cancelAppointment.Handle).Methods(http.MethodPatch)

	// Смена статуса (только администратор)
	protected.HandleFunc("/appointments/{appointmentId}/status",
		updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Экспорт записи в календарь (.ics)
	protected.HandleFunc("/appointments/{appointmentId}/calendar",
		exportCalendar.Handle).Methods(http.MethodGet)

	// История записей пользователя
	protected.HandleFunc("/users/{userId}/appointments",
		getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Магазин ---
	protected.HandleFunc("/cart", getCart.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/cart", updateCart.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/orders", checkoutOrder.Handle).Methods(http.MethodPost)

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

	// Останавливаем фоновые задачи
	close(stopSweeperCh)
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
