package main

import (
	"net/http"
	"net/url"

	"cloud-kitchen-client/config"
	"cloud-kitchen-client/internal/gateway"
	"cloud-kitchen-client/internal/logging"

	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	gwConfig := gateway.Config{
		BackendURL:   origin(cfg.BaseURLFor(config.EndpointLocalFallback)),
		AIServiceURL: origin(cfg.AIServiceURL),
	}
	gw := gateway.NewGateway(gwConfig, &http.Client{Timeout: cfg.HTTPTimeout}, logger)

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.GatewayAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	logger.Infow("dev gateway starting",
		"addr", cfg.GatewayAddr,
		"backend", gwConfig.BackendURL,
		"ai_service", gwConfig.AIServiceURL,
	)
	if err := http.ListenAndServe(cfg.GatewayAddr, handler); err != nil {
		logger.Fatalw("dev gateway stopped", "error", err)
	}
}

// origin strips the path from a base URL; the gateway forwards request paths
// as they arrive.
func origin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host
}
