package api_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"promptvault-backend-go/internal/api"
	"promptvault-backend-go/internal/core"
)

type fakeRewriteService struct {
	result string
	err    error
}

func (f *fakeRewriteService) Rewrite(_ context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", core.ErrEmptyPrompt
	}
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

func optimizeRouter(svc core.RewriteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := api.NewRewriteHandler(svc, zap.NewNop())
	router.POST("/optimize", handler.OptimizePrompt)
	return router
}

func postOptimize(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/optimize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOptimizePromptSuccess(t *testing.T) {
	router := optimizeRouter(&fakeRewriteService{result: "improved"})

	rec := postOptimize(router, `{"prompt":"make this better"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"optimizedPrompt":"improved"`)
}

func TestOptimizePromptEmptyInput(t *testing.T) {
	router := optimizeRouter(&fakeRewriteService{result: "unused"})

	rec := postOptimize(router, `{"prompt":"   "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid prompt")
}

func TestOptimizePromptUpstreamFailure(t *testing.T) {
	router := optimizeRouter(&fakeRewriteService{
		err: fmt.Errorf("%w: model unavailable", core.ErrUpstreamRewrite),
	})

	rec := postOptimize(router, `{"prompt":"make this better"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Failed to optimize prompt")
}
