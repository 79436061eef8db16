package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Recipient mirrors the per-number result of the Africa's Talking
// messaging endpoint.
type Recipient struct {
	Number     string `json:"number"`
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Cost       string `json:"cost"`
	MessageID  string `json:"messageId"`
}

type SMSMessageData struct {
	Message    string      `json:"Message"`
	Recipients []Recipient `json:"Recipients"`
}

type sendResponse struct {
	SMSMessageData SMSMessageData `json:"SMSMessageData"`
}

// MockGateway simulates the Africa's Talking messaging API for local
// development so no real SMS credits are spent.
type MockGateway struct {
	deliveryRate float64
	minDelay     time.Duration
	maxDelay     time.Duration
	gatewayID    string
	rng          *rand.Rand
}

func NewMockGateway(deliveryRate float64, minDelay, maxDelay time.Duration) *MockGateway {
	return &MockGateway{
		deliveryRate: deliveryRate,
		minDelay:     minDelay,
		maxDelay:     maxDelay,
		gatewayID:    "MOCK_AT_" + uuid.New().String()[:8],
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *MockGateway) randomDelay() time.Duration {
	delta := m.maxDelay - m.minDelay
	if delta <= 0 {
		return m.minDelay
	}
	return m.minDelay + time.Duration(m.rng.Int63n(int64(delta)))
}

func (m *MockGateway) shouldSucceed() bool {
	return m.rng.Float64() < m.deliveryRate
}

func (m *MockGateway) recipientFor(number string) Recipient {
	r := Recipient{
		Number:    number,
		MessageID: "ATXid_" + uuid.New().String()[:12],
	}
	if m.shouldSucceed() {
		r.Status = "Success"
		r.StatusCode = 101
		r.Cost = "KES 0.8000"
	} else {
		r.Status = "UserInBlacklist"
		r.StatusCode = 406
		r.Cost = "KES 0.0000"
	}
	return r
}

type Handler struct {
	gateway *MockGateway
}

func NewHandler(gateway *MockGateway) *Handler {
	return &Handler{gateway: gateway}
}

// SendSMS accepts the form-encoded payload the real messaging endpoint
// takes and answers with the same JSON envelope.
func (h *Handler) SendSMS(c *gin.Context) {
	apiKey := c.GetHeader("apiKey")
	if apiKey == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing apiKey header"})
		return
	}

	username := c.PostForm("username")
	to := c.PostForm("to")
	message := c.PostForm("message")
	from := c.PostForm("from")

	if username == "" || to == "" || message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, to and message are required"})
		return
	}

	time.Sleep(h.gateway.randomDelay())

	var recipients []Recipient
	for _, number := range strings.Split(to, ",") {
		recipients = append(recipients, h.gateway.recipientFor(strings.TrimSpace(number)))
	}

	log.Info().
		Str("username", username).
		Str("to", to).
		Str("from", from).
		Int("recipients", len(recipients)).
		Msg("SMS send request processed")

	c.JSON(http.StatusCreated, sendResponse{
		SMSMessageData: SMSMessageData{
			Message:    fmt.Sprintf("Sent to %d/%d Total Cost: KES 0.8000", len(recipients), len(recipients)),
			Recipients: recipients,
		},
	})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"gateway_id":    h.gateway.gatewayID,
		"timestamp":     time.Now(),
		"delivery_rate": h.gateway.deliveryRate,
	})
}

// UpdateConfig changes the simulated delivery rate at runtime.
func (h *Handler) UpdateConfig(c *gin.Context) {
	var config struct {
		DeliveryRate *float64 `json:"delivery_rate"`
	}

	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if config.DeliveryRate != nil && *config.DeliveryRate >= 0 && *config.DeliveryRate <= 1.0 {
		h.gateway.deliveryRate = *config.DeliveryRate
		log.Info().Float64("rate", *config.DeliveryRate).Msg("Updated delivery rate")
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Configuration updated",
		"delivery_rate": h.gateway.deliveryRate,
	})
}

func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request processed")
	})

	router.POST("/version1/messaging", handler.SendSMS)
	router.GET("/health", handler.HealthCheck)
	router.PUT("/config", handler.UpdateConfig)

	return router
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	port := getEnv("PORT", "8081")
	deliveryRate := getEnvFloat("DELIVERY_RATE", 1)
	minDelay := getEnvDuration("MIN_DELAY", 50*time.Millisecond)
	maxDelay := getEnvDuration("MAX_DELAY", 500*time.Millisecond)

	log.Info().
		Str("port", port).
		Float64("delivery_rate", deliveryRate).
		Dur("min_delay", minDelay).
		Dur("max_delay", maxDelay).
		Msg("Starting mock SMS gateway")

	gateway := NewMockGateway(deliveryRate, minDelay, maxDelay)
	handler := NewHandler(gateway)
	router := SetupRouter(handler)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var f float64
		if _, err := fmt.Sscanf(value, "%f", &f); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
