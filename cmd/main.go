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

	cancelAppointmentHandler "github.com/vkurop/MTA-SchedulingService/internal/api/handlers/cancel_appointment"
	checkConflictHandler "github.com/vkurop/MTA-SchedulingService/internal/api/handlers/check_conflict"
	checkQuotaHandler "github.com/vkurop/MTA-SchedulingService/internal/api/handlers/check_quota"
	confirmAppointmentHandler "github.com/vkurop/MTA-SchedulingService/internal/api/handlers/confirm_appointment"
	createBookingHandler "github.com/vkurop/MTA-SchedulingService/internal/api/handlers/create_booking"
	getAppointmentHandler "github.com/vkurop/MTA-SchedulingService/internal/api/handlers/get_appointment"
	joinGroupHandler "github.com/vkurop/MTA-SchedulingService/internal/api/handlers/join_group"
	removeParticipantHandler "github.com/vkurop/MTA-SchedulingService/internal/api/handlers/remove_participant"
	"github.com/vkurop/MTA-SchedulingService/internal/api/middleware"
	"github.com/vkurop/MTA-SchedulingService/internal/config"
	appointmentRepo "github.com/vkurop/MTA-SchedulingService/internal/infra/storage/appointment"
	catalogRepo "github.com/vkurop/MTA-SchedulingService/internal/infra/storage/catalog"
	participantRepo "github.com/vkurop/MTA-SchedulingService/internal/infra/storage/participant"
	planRepo "github.com/vkurop/MTA-SchedulingService/internal/infra/storage/plan"
	calendarServiceClient "github.com/vkurop/MTA-SchedulingService/internal/integrations/calendarservice"
	customerServiceClient "github.com/vkurop/MTA-SchedulingService/internal/integrations/customerservice"
	notifyServiceClient "github.com/vkurop/MTA-SchedulingService/internal/integrations/notifyservice"
	appointmentsService "github.com/vkurop/MTA-SchedulingService/internal/service/appointments"
	conflictsService "github.com/vkurop/MTA-SchedulingService/internal/service/conflicts"
	groupsService "github.com/vkurop/MTA-SchedulingService/internal/service/groups"
	quotaService "github.com/vkurop/MTA-SchedulingService/internal/service/quota"
	createBookingUC "github.com/vkurop/MTA-SchedulingService/internal/usecase/create_booking"
	joinGroupUC "github.com/vkurop/MTA-SchedulingService/internal/usecase/join_group"
	"github.com/vkurop/MTA-SchedulingService/pkg/dbmetrics"
	"github.com/vkurop/MTA-SchedulingService/pkg/logger"
	"github.com/vkurop/MTA-SchedulingService/pkg/metrics"
	"github.com/vkurop/MTA-SchedulingService/pkg/simpletxmanager"
	"github.com/vkurop/MTA-SchedulingService/pkg/txmanager"
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

	log.Info("Starting MTA-SchedulingService...")
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
	customerClient := customerServiceClient.NewClient(
		cfg.CustomerService.URL,
		time.Duration(cfg.CustomerService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	calendarClient := calendarServiceClient.NewClient(
		cfg.CalendarService.URL,
		time.Duration(cfg.CalendarService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CustomerService=%s, NotifyService=%s, CalendarService=%s)",
		cfg.CustomerService.URL, cfg.NotifyService.URL, cfg.CalendarService.URL)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		participantRepository *participantRepo.Repository
		catalogRepository     *catalogRepo.Repository
		planRepository        *planRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		participantRepository = participantRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		planRepository = planRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		participantRepository = participantRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		planRepository = planRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	quotaSvc := quotaService.NewService(
		planRepository,
		appointmentRepository,
		catalogRepository,
		log,
	)
	groupsSvc := groupsService.NewService(
		appointmentRepository,
		participantRepository,
		catalogRepository,
		txMgr,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		participantRepository,
		[]appointmentsService.ConfirmationHook{
			appointmentsService.NewReminderHook(notifyClient),
			appointmentsService.NewCalendarHook(calendarClient),
		},
		log,
	)
	conflictsSvc := conflictsService.NewService(
		appointmentRepository,
		catalogRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		participantRepository,
		catalogRepository,
		quotaSvc,
		groupsSvc,
		customerClient,
		appointmentsSvc,
		txMgr,
		log,
	)
	joinGroupUseCase := joinGroupUC.NewUseCase(
		groupsSvc,
		customerClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	joinGroup := joinGroupHandler.NewHandler(joinGroupUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentsSvc, log)
	checkConflict := checkConflictHandler.NewHandler(conflictsSvc, log)
	checkQuota := checkQuotaHandler.NewHandler(quotaSvc, log)
	removeParticipant := removeParticipantHandler.NewHandler(groupsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

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

	// API prefix; все маршруты требуют заголовки X-Tenant-ID и X-User-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования (одиночного или группового)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// --- Записи ---
	// Получение записи с участниками
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Подтверждение записи
	api.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)

	// Отмена записи
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Групповые сессии ---
	// Вступление в групповую сессию
	api.HandleFunc("/appointments/{appointmentId}/participants", joinGroup.Handle).Methods(http.MethodPost)

	// Выход участника из групповой сессии
	api.HandleFunc("/appointments/{appointmentId}/participants/{customerId}",
		removeParticipant.Handle).Methods(http.MethodDelete)

	// --- Расписание и квоты ---
	// Проверка интервала работника на конфликты
	api.HandleFunc("/tenants/{tenantId}/workers/{workerId}/conflicts",
		checkConflict.Handle).Methods(http.MethodGet)

	// Проверка квоты тарифного плана
	api.HandleFunc("/tenants/{tenantId}/quota/{limitName}", checkQuota.Handle).Methods(http.MethodGet)

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
