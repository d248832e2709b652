package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-optimizer/internal/shared/apperr"
)

func serve(t *testing.T, err error, prefix string) (int, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { Fail(c, err, prefix) })

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return resp.Code, body
}

func TestFailMapsKinds(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperr.Validation("op", "Only PDF files are supported"), http.StatusBadRequest},
		{apperr.Extraction("op", errors.New("bad xref"), "could not read PDF"), http.StatusBadRequest},
		{apperr.NotFound("op", "File not found"), http.StatusNotFound},
		{apperr.Upstream("op", errors.New("503"), "model call failed"), http.StatusInternalServerError},
		{apperr.Malformed("op", "raw", errors.New("x"), "bad json"), http.StatusInternalServerError},
		{apperr.Render("op", errors.New("disk"), "failed to write document"), http.StatusInternalServerError},
		{errors.New("something else"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		code, body := serve(t, tc.err, "")
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.True(t, body.Error)
		assert.Equal(t, tc.code, body.StatusCode)
		assert.NotEmpty(t, body.Message)
	}
}

func TestFailPrefixesServerErrors(t *testing.T) {
	_, body := serve(t, apperr.Upstream("llm.resume_analysis", errors.New("quota exceeded"), "model call failed"), "Error analyzing resume")
	assert.Equal(t, "Error analyzing resume: model call failed: quota exceeded", body.Message)

	_, body = serve(t, apperr.Validation("resumes.upload", "Only PDF files are supported"), "Error uploading resume")
	assert.Equal(t, "Only PDF files are supported", body.Message)
}
