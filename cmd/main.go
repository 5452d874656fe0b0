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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/rs/cors"

	authHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/auth"
	contactHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/contact"
	createBookingHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/create_booking"
	dashboardHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/dashboard"
	deleteBookingHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/delete_booking"
	eventsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/events"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/list_bookings"
	newsletterHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/newsletter"
	productsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/products"
	redirectsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/redirects"
	salesHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/sales"
	scheduleHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/schedule"
	servicesHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/services"
	testimonialsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/testimonials"
	updateBookingHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/update_booking"
	uploadsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/uploads"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/config"
	"github.com/m04kA/SMC-ClinicService/internal/infra/cache"
	"github.com/m04kA/SMC-ClinicService/internal/infra/documents"
	adminRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/admin"
	bookingRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/catalog"
	dashboardRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/dashboard"
	eventRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/event"
	newsletterRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/newsletter"
	productRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/product"
	redirectRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/redirect"
	saleRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/sale"
	scheduleRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/schedule"
	testimonialRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/testimonial"
	"github.com/m04kA/SMC-ClinicService/internal/infra/upload"
	"github.com/m04kA/SMC-ClinicService/internal/integrations/notifier"
	authService "github.com/m04kA/SMC-ClinicService/internal/service/auth"
	bookingsService "github.com/m04kA/SMC-ClinicService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-ClinicService/internal/service/catalog"
	contactService "github.com/m04kA/SMC-ClinicService/internal/service/contact"
	dashboardService "github.com/m04kA/SMC-ClinicService/internal/service/dashboard"
	eventsService "github.com/m04kA/SMC-ClinicService/internal/service/events"
	newsletterService "github.com/m04kA/SMC-ClinicService/internal/service/newsletter"
	productsService "github.com/m04kA/SMC-ClinicService/internal/service/products"
	redirectsService "github.com/m04kA/SMC-ClinicService/internal/service/redirects"
	salesService "github.com/m04kA/SMC-ClinicService/internal/service/sales"
	scheduleService "github.com/m04kA/SMC-ClinicService/internal/service/schedule"
	testimonialsService "github.com/m04kA/SMC-ClinicService/internal/service/testimonials"
	createBookingUC "github.com/m04kA/SMC-ClinicService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ClinicService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/jwtauth"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
	"github.com/m04kA/SMC-ClinicService/pkg/metrics"
	"github.com/m04kA/SMC-ClinicService/pkg/txmanager"
)

const (
	cacheNamespace      = "clinic"
	qrCodeSize          = 512
	rateLimitCleanup    = time.Minute
	rateLimitIdleExpiry = 10 * time.Minute
)

// catalogCache общий интерфейс кэша для каталога услуг и товаров
type catalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
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

	log.Info("Starting SMC-ClinicService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := time.LoadLocation(cfg.Site.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Site.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

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

	// Обёртка над БД; без коллектора метрики не пишутся
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш публичного каталога
	var catalogCacheStore catalogCache = cache.Nop{}
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		catalogCacheStore = cache.NewRedis(redisClient, cacheNamespace, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		log.Info("Catalog cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Каналы уведомлений
	var whatsappSender notifier.WhatsAppSender
	if cfg.Twilio.Enabled {
		whatsappSender = notifier.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber, log)
		log.Info("WhatsApp notifications enabled (from=%s)", cfg.Twilio.FromNumber)
	}
	var emailSender notifier.EmailSender
	if cfg.SMTP.Enabled {
		smtpSender, err := notifier.NewSMTPSender(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
			cfg.SMTP.From,
			cfg.Site.Name,
		)
		if err != nil {
			log.Fatal("Failed to configure SMTP sender: %v", err)
		}
		emailSender = smtpSender
		log.Info("Email notifications enabled (host=%s:%d)", cfg.SMTP.Host, cfg.SMTP.Port)
	}
	notify := notifier.New(
		notifier.Config{
			SiteName:   cfg.Site.Name,
			AdminEmail: cfg.SMTP.AdminTo,
			AdminPhone: cfg.Twilio.AdminPhone,
		},
		whatsappSender,
		emailSender,
		metricsCollector,
		log,
	)

	// Хранилище изображений и генераторы документов
	imageStore, err := upload.NewStore(upload.Options{
		Dir:         cfg.Uploads.Dir,
		PublicPath:  cfg.Uploads.PublicPath,
		MaxBytes:    int64(cfg.Uploads.MaxSizeMB) << 20,
		MaxWidth:    cfg.Uploads.MaxWidth,
		ThumbWidth:  cfg.Uploads.ThumbWidth,
		JPEGQuality: cfg.Uploads.JPEGQuality,
	})
	if err != nil {
		log.Fatal("Failed to initialize upload store: %v", err)
	}
	receipts := documents.NewReceiptRenderer(cfg.Site.Name, location)
	qrRenderer := documents.NewQRRenderer(qrCodeSize)

	tokens := jwtauth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	// Инициализируем репозитории
	adminRepository := adminRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	dashboardRepository := dashboardRepo.NewRepository(wrappedDB)
	eventRepository := eventRepo.NewRepository(wrappedDB)
	newsletterRepository := newsletterRepo.NewRepository(wrappedDB)
	productRepository := productRepo.NewRepository(wrappedDB)
	redirectRepository := redirectRepo.NewRepository(wrappedDB)
	saleRepository := saleRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	testimonialRepository := testimonialRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	newsletterSvc := newsletterService.NewService(newsletterRepository, location, log)
	authSvc := authService.NewService(adminRepository, tokens, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, catalogCacheStore, txMgr, log)
	productSvc := productsService.NewService(productRepository, catalogCacheStore, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, txMgr, log)
	saleSvc := salesService.NewService(
		saleRepository,
		productRepository,
		newsletterSvc,
		notify,
		receipts,
		log,
	)
	eventSvc := eventsService.NewService(eventRepository, qrRenderer, cfg.Site.BaseURL, location, log)
	testimonialSvc := testimonialsService.NewService(testimonialRepository, log)
	redirectSvc := redirectsService.NewService(redirectRepository, log)
	contactSvc := contactService.NewService(notify, newsletterSvc, log)
	dashboardSvc := dashboardService.NewService(dashboardRepository, location, log)

	// Инициализируем use cases
	clock := &createBookingUC.RealTimeProvider{Location: location}
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		scheduleRepository,
		notify,
		metricsCollector,
		txMgr,
		clock,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		scheduleRepository,
		bookingRepository,
		&getAvailableSlotsUC.RealTimeProvider{Location: location},
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	schedule := scheduleHandler.NewHandler(scheduleSvc, log)
	services := servicesHandler.NewHandler(catalogSvc, log)
	products := productsHandler.NewHandler(productSvc, log)
	sales := salesHandler.NewHandler(saleSvc, log)
	events := eventsHandler.NewHandler(eventSvc, log)
	testimonials := testimonialsHandler.NewHandler(testimonialSvc, log)
	newsletter := newsletterHandler.NewHandler(newsletterSvc, log)
	redirects := redirectsHandler.NewHandler(redirectSvc, log)
	contact := contactHandler.NewHandler(contactSvc, log)
	dashboard := dashboardHandler.NewHandler(dashboardSvc, log)
	auth := authHandler.NewHandler(authSvc, log)
	uploads := uploadsHandler.NewHandler(imageStore, int64(cfg.Uploads.MaxSizeMB)<<20, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeaders)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Загруженные изображения
	uploadsPrefix := cfg.Uploads.PublicPath + "/"
	r.PathPrefix(uploadsPrefix).
		Handler(http.StripPrefix(uploadsPrefix, http.FileServer(http.Dir(cfg.Uploads.Dir)))).
		Methods(http.MethodGet, http.MethodHead)

	// Все неизвестные пути проверяются по таблице редиректов
	r.NotFoundHandler = http.HandlerFunc(redirects.Resolve)

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (токен необязателен, администратор видит скрытое)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth(tokens))

	// --- Запись ---
	public.HandleFunc("/bookings/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Расписание и контакты ---
	public.HandleFunc("/working-hours", schedule.ListWorkingHours).Methods(http.MethodGet)
	public.HandleFunc("/contact-info", schedule.GetContactInfo).Methods(http.MethodGet)

	// --- Каталог ---
	public.HandleFunc("/services", services.List).Methods(http.MethodGet)
	public.HandleFunc("/services/{id}", services.Get).Methods(http.MethodGet)
	public.HandleFunc("/service-categories", services.ListCategories).Methods(http.MethodGet)
	public.HandleFunc("/products", products.List).Methods(http.MethodGet)
	public.HandleFunc("/products/{idOrSlug}", products.Get).Methods(http.MethodGet)
	public.HandleFunc("/product-categories", products.ListCategories).Methods(http.MethodGet)
	public.HandleFunc("/product-categories/{id:[0-9]+}", products.GetCategory).Methods(http.MethodGet)

	// --- Контент ---
	public.HandleFunc("/events", events.List).Methods(http.MethodGet)
	public.HandleFunc("/events/{idOrSlug}", events.Get).Methods(http.MethodGet)
	public.HandleFunc("/events/{idOrSlug}/qr", events.QRCode).Methods(http.MethodGet)
	public.HandleFunc("/testimonials", testimonials.List).Methods(http.MethodGet)

	// ============================================================
	// PUBLIC FORMS (ограничение частоты по IP)
	// ============================================================

	forms := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		go limiter.RunCleanup(rateLimitCleanup, rateLimitIdleExpiry, stopCh)
		forms.Use(limiter.Limit(log))
		log.Info("Rate limit enabled for public forms (%.0f req/min, burst=%d)",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	forms.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	forms.HandleFunc("/sales", sales.Create).Methods(http.MethodPost)
	forms.HandleFunc("/testimonials", testimonials.Submit).Methods(http.MethodPost)
	forms.HandleFunc("/newsletter", newsletter.Subscribe).Methods(http.MethodPost)
	forms.HandleFunc("/newsletter/unsubscribe", newsletter.Unsubscribe).Methods(http.MethodPost)
	forms.HandleFunc("/contact", contact.Handle).Methods(http.MethodPost)
	forms.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен администратора)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens, log))

	protected.HandleFunc("/auth/me", auth.Me).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/stats", dashboard.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id:[0-9]+}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Расписание ---
	protected.HandleFunc("/working-hours", schedule.UpsertWorkingHours).Methods(http.MethodPost)
	protected.HandleFunc("/blocked-dates", schedule.ListBlockedDates).Methods(http.MethodGet)
	protected.HandleFunc("/blocked-dates", schedule.CreateBlockedDate).Methods(http.MethodPost)
	protected.HandleFunc("/blocked-dates/{id:[0-9]+}", schedule.DeleteBlockedDate).Methods(http.MethodDelete)
	protected.HandleFunc("/contact-info", schedule.SaveContactInfo).Methods(http.MethodPut)

	// --- Услуги ---
	protected.HandleFunc("/services", services.Create).Methods(http.MethodPost)
	protected.HandleFunc("/services/reorder", services.Reorder).Methods(http.MethodPut)
	protected.HandleFunc("/services/{id}", services.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/services/{id}/toggle", services.Toggle).Methods(http.MethodPatch)
	protected.HandleFunc("/services/{id}", services.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/service-categories", services.CreateCategory).Methods(http.MethodPost)
	protected.HandleFunc("/service-categories/{id}", services.UpdateCategory).Methods(http.MethodPut)
	protected.HandleFunc("/service-categories/{id}", services.DeleteCategory).Methods(http.MethodDelete)

	// --- Товары ---
	protected.HandleFunc("/products", products.Create).Methods(http.MethodPost)
	protected.HandleFunc("/products/{idOrSlug}", products.Update).Methods(http.MethodPut)
	protected.HandleFunc("/products/{idOrSlug}", products.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/product-categories", products.CreateCategory).Methods(http.MethodPost)
	protected.HandleFunc("/product-categories/{id}", products.UpdateCategory).Methods(http.MethodPut)
	protected.HandleFunc("/product-categories/{id}", products.DeleteCategory).Methods(http.MethodDelete)

	// --- Продажи ---
	protected.HandleFunc("/sales", sales.List).Methods(http.MethodGet)
	protected.HandleFunc("/sales/{id}", sales.Get).Methods(http.MethodGet)
	protected.HandleFunc("/sales/{id}", sales.Update).Methods(http.MethodPut)
	protected.HandleFunc("/sales/{id}", sales.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/sales/{id}/receipt", sales.Receipt).Methods(http.MethodGet)

	// --- Мероприятия ---
	protected.HandleFunc("/events", events.Create).Methods(http.MethodPost)
	protected.HandleFunc("/events/{idOrSlug}", events.Update).Methods(http.MethodPut)
	protected.HandleFunc("/events/{idOrSlug}", events.Delete).Methods(http.MethodDelete)

	// --- Отзывы ---
	protected.HandleFunc("/testimonials/{id}", testimonials.Update).Methods(http.MethodPut)
	protected.HandleFunc("/testimonials/{id}/status", testimonials.UpdateStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/testimonials/{id}", testimonials.Delete).Methods(http.MethodDelete)

	// --- Рассылка ---
	protected.HandleFunc("/newsletter", newsletter.List).Methods(http.MethodGet)
	protected.HandleFunc("/newsletter/export", newsletter.Export).Methods(http.MethodGet)
	protected.HandleFunc("/newsletter/{id:[0-9]+}", newsletter.Delete).Methods(http.MethodDelete)

	// --- Редиректы ---
	protected.HandleFunc("/redirects", redirects.List).Methods(http.MethodGet)
	protected.HandleFunc("/redirects", redirects.Create).Methods(http.MethodPost)
	protected.HandleFunc("/redirects/{id}", redirects.Get).Methods(http.MethodGet)
	protected.HandleFunc("/redirects/{id}", redirects.Update).Methods(http.MethodPut)
	protected.HandleFunc("/redirects/{id}", redirects.Delete).Methods(http.MethodDelete)

	// --- Загрузки ---
	protected.HandleFunc("/uploads", uploads.Upload).Methods(http.MethodPost)
	protected.HandleFunc("/uploads", uploads.Delete).Methods(http.MethodDelete)

	// CORS для сайта и панели администратора
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

	// Останавливаем фоновые циклы (pool stats, очистка лимитера)
	close(stopCh)

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
