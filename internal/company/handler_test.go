package company_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bt "job-optimizer/internal/bootstrap/bootstraptest"
	"job-optimizer/internal/llm/llmtest"
	"job-optimizer/internal/prompts"
	"job-optimizer/resume/model"
)

func TestResearch(t *testing.T) {
	fake := llmtest.New().Respond(prompts.UseCaseResearch, bt.ResearchJSON)
	app := bt.NewApp(t, fake)

	resp := bt.PostForm(t, app.Router, "/api/company/research", map[string]string{"company_name": "Acme"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var research model.CompanyResearch
	bt.Decode(t, resp, &research)
	assert.Equal(t, "Acme builds developer tools.", research.CompanyOverview)
	assert.Equal(t, []string{"Craft", "Ownership"}, research.MissionAndValues)
	assert.Equal(t, "Remote-first", research.Culture)

	calls := fake.CallsFor(prompts.UseCaseResearch)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, `"Acme"`)
	assert.True(t, calls[0].Options.JSON)
}

func TestResearchRequiresCompanyName(t *testing.T) {
	app := bt.NewApp(t, llmtest.New())
	resp := bt.PostForm(t, app.Router, "/api/company/research", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "company_name is required", bt.DecodeError(t, resp).Message)
}

func TestResearchMissingListIsRejected(t *testing.T) {
	raw := `{"company_overview": "x", "mission_and_values": null, "recent_news": [], "key_leadership": [], "challenges": [], "opportunities": [], "industry_position": "", "culture": ""}`
	app := bt.NewApp(t, llmtest.New().Respond(prompts.UseCaseResearch, raw))
	resp := bt.PostForm(t, app.Router, "/api/company/research", map[string]string{"company_name": "Acme"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	body := bt.DecodeError(t, resp)
	assert.Contains(t, body.Message, "Error researching company: ")
}

func TestResearchUpstreamFailure(t *testing.T) {
	app := bt.NewApp(t, llmtest.New().Fail(prompts.UseCaseResearch, errors.New("deadline exceeded")))
	resp := bt.PostForm(t, app.Router, "/api/company/research", map[string]string{"company_name": "Acme"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, bt.DecodeError(t, resp).Message, "deadline exceeded")
}
