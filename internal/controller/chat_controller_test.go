package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"product-guide-be/internal/constant"
	"product-guide-be/internal/dto"
	"product-guide-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatService struct{}

func (stubChatService) Intro(ctx context.Context) *dto.ChatResponse {
	return &dto.ChatResponse{SessionId: "intro-session", Reply: constant.IntroPrompt}
}

func (stubChatService) SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	return &dto.ChatResponse{
		SessionId: request.SessionId,
		Reply:     "echo: " + request.Message,
	}, nil
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatController(stubChatService{}).RegisterRoutes(app)
	return app
}

func TestChatEndpoint(t *testing.T) {
	app := newTestApp()

	body, _ := json.Marshal(dto.ChatRequest{SessionId: "s1", Message: "curly hair"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var res dto.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "s1", res.SessionId)
	assert.Equal(t, "echo: curly hair", res.Reply)
}

func TestChatEndpointRejectsMissingMessage(t *testing.T) {
	app := newTestApp()

	body := []byte(`{"session_id":"s1"}`)
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var envelope serverutils.BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, http.StatusBadRequest, envelope.Code)
}

func TestChatEndpointRejectsBadBody(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIntroEndpoint(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/chat/intro", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var res dto.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "intro-session", res.SessionId)
	assert.Equal(t, constant.IntroPrompt, res.Reply)
}
