package main

import (
	"os"
	"strings"
	"time"

	"github.com/kbenedict/customer-orders/internal/auth"
	"github.com/kbenedict/customer-orders/internal/config"
	gateway "github.com/kbenedict/customer-orders/internal/gateways"
	"github.com/kbenedict/customer-orders/internal/handlers"
	"github.com/kbenedict/customer-orders/internal/repository"
	"github.com/kbenedict/customer-orders/internal/services"
	xhttp "github.com/kbenedict/customer-orders/pkg/http"
	"github.com/kbenedict/customer-orders/pkg/logger"
	"github.com/kbenedict/customer-orders/pkg/pg"
	"github.com/kbenedict/customer-orders/pkg/prom"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.CORSMiddleware(config.Get().CORSAllowOrigin))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(prom.HTTPMetricsMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	pgConf := pg.Config{
		User:     config.Get().DBUser,
		Host:     config.Get().DBHost,
		Port:     config.Get().DBPort,
		Password: config.Get().DBPassword,
		Database: config.Get().DBName,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.Connect(pgConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	if err := prom.Create("", config.Get().AppEnv, config.Get().AppName); err != nil {
		logger.Error("failed creating metrics", "error", err)
	}

	smsClient := gateway.NewAfricasTalkingClient(gateway.Config{
		APIURL:   config.Get().ATAPIURL,
		Username: config.Get().ATUsername,
		APIKey:   config.Get().ATAPIKey,
		SenderID: config.Get().ATSenderID,
		Timeout:  time.Second * 10,
	})

	authenticator := auth.New(auth.Config{
		Domain:         config.Get().Auth0Domain,
		ClientID:       config.Get().Auth0ClientID,
		ClientSecret:   config.Get().Auth0ClientSecret,
		Audience:       config.Get().Auth0APIAudience,
		CallbackURL:    config.Get().Auth0CallbackURL,
		LogoutReturnTo: config.Get().LoginPageURL,
	})

	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// services
	notificationService := services.NewNotificationService(smsClient)
	customerService := services.NewCustomerService(customerRepo)
	orderService := services.NewOrderService(orderRepo, notificationService)
	healthService := services.NewHealthService()

	// handlers
	customerHandler := handlers.NewCustomerHandler(customerService)
	orderHandler := handlers.NewOrderHandler(orderService)
	authHandler := handlers.NewAuthHandler(authenticator, config.Get().OrdersPageURL)
	healthHandler := handlers.NewHealthHandler(healthService)

	var guards []handlers.Guard
	if config.Get().AuthEnforced {
		guards = append(guards, auth.Require(authenticator))
	}

	handlers.RegisterCustomerRoutes(s.Router, customerHandler, guards...)
	handlers.RegisterOrderRoutes(s.Router, orderHandler, guards...)
	handlers.RegisterAuthRoutes(s.Router, authHandler)
	handlers.RegisterHealthRoutes(s.Router, healthHandler)

	if config.Get().AppDebugMetricsAddr != "" {
		go prom.ListenAndServer(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
	}

	s.CloseOnSignal()

	if err := s.ListenAndServe(config.Get().HttpListenAddr); err != nil {
		logger.Error("error in running http-server", "error", err)
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
