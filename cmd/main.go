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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/piste-boss/piste-reserve/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/piste-boss/piste-reserve/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/piste-boss/piste-reserve/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/piste-boss/piste-reserve/internal/api/handlers/get_reservation"
	linkLineAccountHandler "github.com/piste-boss/piste-reserve/internal/api/handlers/link_line_account"
	listHolidaysHandler "github.com/piste-boss/piste-reserve/internal/api/handlers/list_holidays"
	listMenusHandler "github.com/piste-boss/piste-reserve/internal/api/handlers/list_menus"
	listReservationsHandler "github.com/piste-boss/piste-reserve/internal/api/handlers/list_reservations"
	removeHolidayHandler "github.com/piste-boss/piste-reserve/internal/api/handlers/remove_holiday"
	setHolidayHandler "github.com/piste-boss/piste-reserve/internal/api/handlers/set_holiday"
	updateMenuHandler "github.com/piste-boss/piste-reserve/internal/api/handlers/update_menu"
	"github.com/piste-boss/piste-reserve/internal/api/middleware"
	"github.com/piste-boss/piste-reserve/internal/config"
	"github.com/piste-boss/piste-reserve/internal/infra/cache/slotcache"
	"github.com/piste-boss/piste-reserve/internal/infra/queue"
	holidayRepo "github.com/piste-boss/piste-reserve/internal/infra/storage/holiday"
	menuRepo "github.com/piste-boss/piste-reserve/internal/infra/storage/menu"
	reservationRepo "github.com/piste-boss/piste-reserve/internal/infra/storage/reservation"
	"github.com/piste-boss/piste-reserve/internal/integrations/calendarsync"
	"github.com/piste-boss/piste-reserve/internal/integrations/emailsender"
	"github.com/piste-boss/piste-reserve/internal/integrations/linemessaging"
	"github.com/piste-boss/piste-reserve/internal/notifier"
	holidaysService "github.com/piste-boss/piste-reserve/internal/service/holidays"
	menusService "github.com/piste-boss/piste-reserve/internal/service/menus"
	reservationsService "github.com/piste-boss/piste-reserve/internal/service/reservations"
	createReservationUC "github.com/piste-boss/piste-reserve/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/piste-boss/piste-reserve/internal/usecase/get_available_slots"
	sendRemindersUC "github.com/piste-boss/piste-reserve/internal/usecase/send_reminders"
	"github.com/piste-boss/piste-reserve/pkg/dbmetrics"
	"github.com/piste-boss/piste-reserve/pkg/logger"
	"github.com/piste-boss/piste-reserve/pkg/metrics"
	"github.com/piste-boss/piste-reserve/pkg/simpletxmanager"
	"github.com/piste-boss/piste-reserve/pkg/txmanager"
)

func main() {
	// .env загружается до конфига: TOML подставляет секреты из окружения
	_ = godotenv.Load()

	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting piste-reserve...")
	log.Info("Configuration loaded from config.toml")

	hours, err := cfg.BusinessHours()
	if err != nil {
		log.Fatal("Invalid business hours config: %v", err)
	}

	// Метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// База данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозитории и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		menuRepository        *menuRepo.Repository
		holidayRepository     *holidayRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		menuRepository = menuRepo.NewRepository(wrappedDB)
		holidayRepository = holidayRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		menuRepository = menuRepo.NewRepository(db)
		holidayRepository = holidayRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кэш занятых интервалов (если включен)
	var slotCache *slotcache.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		slotCache = slotcache.New(redisClient, time.Duration(cfg.Redis.SlotsTTLSeconds)*time.Second)
		log.Info("Slot cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SlotsTTLSeconds)
	}

	// Каналы уведомлений
	var lineClient *linemessaging.Client
	sinks := make([]notifier.Sink, 0, 4)

	if cfg.Line.Enabled {
		lineClient = linemessaging.NewClient(
			cfg.Line.APIURL,
			cfg.Line.ChannelToken,
			time.Duration(cfg.Line.Timeout)*time.Second,
			log,
		)
		sinks = append(sinks, notifier.NewLineSink(lineClient))
		log.Info("LINE messaging sink enabled")
	}

	if cfg.Email.Enabled {
		emailClient := emailsender.NewClient(cfg.Email.APIKey, cfg.Email.From, log)
		sinks = append(sinks, notifier.NewEmailSink(emailClient, cfg.Email.AdminTo))
		log.Info("Email sink enabled (admin=%s)", cfg.Email.AdminTo)
	}

	if cfg.CalendarSync.Enabled {
		calendarClient := calendarsync.NewClient(
			cfg.CalendarSync.WebhookURL,
			time.Duration(cfg.CalendarSync.Timeout)*time.Second,
			log,
		)
		sinks = append(sinks, notifier.NewCalendarSink(calendarClient))
		log.Info("Calendar sync sink enabled")
	}

	if cfg.AMQP.Enabled {
		publisher := queue.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, log)
		sinks = append(sinks, notifier.NewQueueSink(publisher))
		log.Info("Queue sink enabled (exchange=%s)", cfg.AMQP.Exchange)
	}

	var dispatcher *notifier.Dispatcher
	if len(sinks) > 0 {
		var counter notifier.Counter
		if metricsCollector != nil {
			counter = metricsCollector
		}
		dispatcher = notifier.NewDispatcher(sinks, log, counter)
		log.Info("Notification dispatcher initialized with %d sinks", len(sinks))
	}

	// Интерфейсные переменные: nil-указатель в неготовом интерфейсе не nil,
	// поэтому опциональные зависимости передаются через явно нулевые значения
	var (
		cacheReader      getAvailableSlotsUC.SlotCache
		cacheInvalidator createReservationUC.SlotCacheInvalidator
		svcInvalidator   reservationsService.SlotCacheInvalidator
		holInvalidator   holidaysService.SlotCacheInvalidator
		createDispatch   createReservationUC.EventDispatcher
		cancelDispatch   reservationsService.EventDispatcher
	)
	if slotCache != nil {
		cacheReader = slotCache
		cacheInvalidator = slotCache
		svcInvalidator = slotCache
		holInvalidator = slotCache
	}
	if dispatcher != nil {
		createDispatch = dispatcher
		cancelDispatch = dispatcher
	}

	// Сервисы
	reservationSvc := reservationsService.NewService(reservationRepository, cancelDispatch, svcInvalidator, log)
	menuSvc := menusService.NewService(menuRepository, log)
	holidaySvc := holidaysService.NewService(holidayRepository, holInvalidator, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		menuRepository,
		holidayRepository,
		hours,
		cacheReader,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		menuRepository,
		holidayRepository,
		hours,
		txMgr,
		createDispatch,
		cacheInvalidator,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	linkLineAccount := linkLineAccountHandler.NewHandler(reservationSvc, log)
	listMenus := listMenusHandler.NewHandler(menuSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	updateMenu := updateMenuHandler.NewHandler(menuSvc, log)
	listHolidays := listHolidaysHandler.NewHandler(holidaySvc, log)
	setHoliday := setHolidayHandler.NewHandler(holidaySvc, log)
	removeHoliday := removeHolidayHandler.NewHandler(holidaySvc, log)

	// Роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (клиентская запись)
	// ============================================================

	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}/line-link", linkLineAccount.Handle).Methods(http.MethodPost)
	api.HandleFunc("/menus", listMenus.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (админский токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AdminAuth(cfg.Auth.AdminToken))

	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/menus/{menuId}", updateMenu.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/holidays", listHolidays.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/holidays/{date}", setHoliday.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/holidays/{date}", removeHoliday.Handle).Methods(http.MethodDelete)

	// Фоновый воркер напоминаний
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	if cfg.Reminders.Enabled {
		if lineClient == nil {
			log.Warn("Reminders enabled but LINE messaging is not, reminder worker not started")
		} else {
			remindersUseCase := sendRemindersUC.NewUseCase(
				reservationRepository,
				lineClient,
				cfg.Reminders.LeadMinutes,
				cfg.Reminders.WindowMinutes,
				log,
			)
			go remindersUseCase.Run(workerCtx, time.Duration(cfg.Reminders.IntervalSeconds)*time.Second)
		}
	}

	// HTTP сервер
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

	stopWorker()

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

	// Дожидаемся уведомлений в полете
	if dispatcher != nil {
		dispatcher.Wait()
	}

	log.Info("Server stopped gracefully")
}
