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

	cancelAppointmentHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/create_appointment"
	createEmployeeHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/create_employee"
	createServiceHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/create_service"
	deleteEmployeeHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/delete_employee"
	deleteServiceHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/delete_service"
	getAppointmentHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/get_available_slots"
	getBusinessAppointmentsHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/get_business_appointments"
	getDashboardStatsHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/get_dashboard_stats"
	getEmployeesHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/get_employees"
	getServicesHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/get_services"
	setEmployeeScheduleHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/set_employee_schedule"
	setEmployeeServicesHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/set_employee_services"
	updateAppointmentStatusHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/update_appointment_status"
	updateEmployeeHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/update_employee"
	updateServiceHandler "github.com/avkorn/ABS-AppointmentService/internal/api/handlers/update_service"
	"github.com/avkorn/ABS-AppointmentService/internal/api/middleware"
	"github.com/avkorn/ABS-AppointmentService/internal/config"
	appointmentRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/catalog"
	customerRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/customer"
	staffRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/staff"
	identityClient "github.com/avkorn/ABS-AppointmentService/internal/integrations/identity"
	appointmentsService "github.com/avkorn/ABS-AppointmentService/internal/service/appointments"
	catalogService "github.com/avkorn/ABS-AppointmentService/internal/service/catalog"
	staffService "github.com/avkorn/ABS-AppointmentService/internal/service/staff"
	createAppointmentUC "github.com/avkorn/ABS-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/avkorn/ABS-AppointmentService/internal/usecase/get_available_slots"
	"github.com/avkorn/ABS-AppointmentService/pkg/dbmetrics"
	"github.com/avkorn/ABS-AppointmentService/pkg/logger"
	"github.com/avkorn/ABS-AppointmentService/pkg/metrics"
	"github.com/avkorn/ABS-AppointmentService/pkg/simpletxmanager"
	"github.com/avkorn/ABS-AppointmentService/pkg/txmanager"
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

	log.Info("Starting ABS-AppointmentService...")
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

	// Инициализируем клиент IdentityService
	identity := identityClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Identity client initialized (url=%s, timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		catalogRepository     *catalogRepo.Repository
		staffRepository       *staffRepo.Repository
		appointmentRepository *appointmentRepo.Repository
		customerRepository    *customerRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		catalogRepository = catalogRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(catalogRepository, log)
	staffSvc := staffService.NewService(staffRepository, catalogRepository, txMgr, log)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		customerRepository,
		catalogRepository,
		staffRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		staffRepository,
		appointmentRepository,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		catalogRepository,
		staffRepository,
		appointmentRepository,
		customerRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getBusinessAppointments := getBusinessAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getDashboardStats := getDashboardStatsHandler.NewHandler(appointmentsSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	createEmployee := createEmployeeHandler.NewHandler(staffSvc, log)
	getEmployees := getEmployeesHandler.NewHandler(staffSvc, log)
	updateEmployee := updateEmployeeHandler.NewHandler(staffSvc, log)
	deleteEmployee := deleteEmployeeHandler.NewHandler(staffSvc, log)
	setEmployeeSchedule := setEmployeeScheduleHandler.NewHandler(staffSvc, log)
	setEmployeeServices := setEmployeeServicesHandler.NewHandler(staffSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты для записи
	api.HandleFunc("/businesses/{businessId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Список услуг бизнеса
	api.HandleFunc("/businesses/{businessId}/services",
		getServices.Handle).Methods(http.MethodGet)

	// Подтверждение брони
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(identity, log))

	// --- Записи ---
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/businesses/{businessId}/appointments", getBusinessAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/dashboard", getDashboardStats.Handle).Methods(http.MethodGet)

	// --- Каталог услуг ---
	protected.HandleFunc("/businesses/{businessId}/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Сотрудники ---
	protected.HandleFunc("/businesses/{businessId}/employees", createEmployee.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/employees", getEmployees.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/employees/{employeeId}", updateEmployee.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/employees/{employeeId}", deleteEmployee.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/businesses/{businessId}/employees/{employeeId}/schedule", setEmployeeSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/employees/{employeeId}/services", setEmployeeServices.Handle).Methods(http.MethodPut)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
