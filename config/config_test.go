package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("LOCAL_API_BASE_URL", "")
	t.Setenv("AI_SERVICE_URL", "")
	t.Setenv("HTTP_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, "", cfg.BaseURLFor(EndpointPrimary))
	assert.Equal(t, DefaultLocalAPIBaseURL, cfg.BaseURLFor(EndpointLocalFallback))
	assert.Equal(t, DefaultAIServiceURL, cfg.BaseURLFor(EndpointAI))
	assert.Equal(t, "15s", cfg.HTTPTimeout.String())
}

func TestLoad_PrimaryOverridesLocalFallback(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://kitchen.example.com/api/")
	t.Setenv("AI_SERVICE_URL", "https://ai.example.com")

	cfg := Load()

	assert.Equal(t, "https://kitchen.example.com/api", cfg.BaseURLFor(EndpointPrimary))
	assert.Equal(t, "https://kitchen.example.com/api", cfg.BaseURLFor(EndpointLocalFallback))
	assert.Equal(t, "https://ai.example.com", cfg.BaseURLFor(EndpointAI))
}

func TestLoad_GatewayOrigins(t *testing.T) {
	t.Setenv("GATEWAY_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg := Load()

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.GatewayAllowedOrigins)
}

func TestNewKafkaWriter_NoBroker(t *testing.T) {
	assert.Nil(t, NewKafkaWriter(Config{}))

	w := NewKafkaWriter(Config{KafkaBroker: "localhost:9092", SessionEventsTopic: "session-events"})
	assert.NotNil(t, w)
	assert.Equal(t, "session-events", w.Topic)
}

func TestNewKafkaReader(t *testing.T) {
	assert.Nil(t, NewKafkaReader(Config{}, ""))

	r := NewKafkaReader(Config{KafkaBroker: "localhost:9092", SessionEventsTopic: "session-events"}, "kitchenctl")
	defer r.Close()
	assert.Equal(t, "session-events", r.Config().Topic)
	assert.Equal(t, "kitchenctl", r.Config().GroupID)
}
