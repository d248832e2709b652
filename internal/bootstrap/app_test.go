package bootstrap_test

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-optimizer/internal/bootstrap"
	bt "job-optimizer/internal/bootstrap/bootstraptest"
	"job-optimizer/internal/shared/config"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestBuildWithoutKeyUsesPlaceholderInDev(t *testing.T) {
	cfg := bt.Config(t)
	cfg.LLMAPIKey = ""
	app, err := bootstrap.Build(context.Background(), cfg)
	require.NoError(t, err)

	resp := bt.Get(t, app.Router, "/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = bt.PostForm(t, app.Router, "/api/company/research", map[string]string{"company_name": "Acme"})
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	body := bt.DecodeError(t, resp)
	assert.Contains(t, body.Message, "Error researching company")
	assert.Contains(t, body.Message, "LLM not configured")
}

func TestBuildWithoutKeyFailsOutsideDev(t *testing.T) {
	cfg := bt.Config(t)
	cfg.Env = "staging"
	cfg.LLMAPIKey = ""
	_, err := bootstrap.Build(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_API_KEY")
}

func TestBuildEachProvider(t *testing.T) {
	for _, provider := range []string{config.ProviderGemini, config.ProviderAnthropic, config.ProviderOpenAI} {
		cfg := bt.Config(t)
		cfg.LLMProvider = provider
		cfg.LLMAPIKey = "test-key"
		cfg.LLMModel = config.DefaultModel(provider)
		cfg.LLMBaseURL = "http://127.0.0.1:0"

		app, err := bootstrap.Build(context.Background(), cfg)
		require.NoError(t, err, provider)
		assert.NotNil(t, app.LLM, provider)
	}
}

func TestBuildRejectsUnknownProvider(t *testing.T) {
	cfg := bt.Config(t)
	cfg.LLMProvider = "mistral"
	cfg.LLMAPIKey = "test-key"
	_, err := bootstrap.Build(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mistral")
}
