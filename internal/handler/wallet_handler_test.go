package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-gateway/internal/handler"
	"wallet-gateway/internal/server"
	"wallet-gateway/internal/service/wallet"
	"wallet-gateway/pkg/token"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := wallet.New(wallet.Config{DefaultABI: token.MustStandardABI()})
	return server.NewHTTPRouter(handler.NewWalletHandler(svc, "http://localhost:8545"))
}

func post(t *testing.T, router *gin.Engine, path string, body any) map[string]any {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return decoded
}

func TestCreateWalletEndpoint(t *testing.T) {
	router := newTestRouter()

	body := post(t, router, "/api/v1/wallet/create", gin.H{})
	require.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["address"])
	assert.NotEmpty(t, body["privateKey"])
	assert.NotEmpty(t, body["mnemonic"])
}

func TestAddressFromKeyEndpoint(t *testing.T) {
	router := newTestRouter()

	body := post(t, router, "/api/v1/wallet/address-from-key", gin.H{
		"privateKey": "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
	})
	require.Equal(t, true, body["success"])
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", body["address"])
}

func TestAddressFromKeyEndpointBadKey(t *testing.T) {
	router := newTestRouter()

	body := post(t, router, "/api/v1/wallet/address-from-key", gin.H{
		"privateKey": "not-a-key",
	})
	require.Equal(t, false, body["success"])
	assert.Equal(t, float64(20301), body["code"])
	assert.NotEmpty(t, body["msg"])
}

func TestBindFailure(t *testing.T) {
	router := newTestRouter()

	// privateKey is required; an empty body must fail at binding.
	body := post(t, router, "/api/v1/wallet/address-from-key", gin.H{})
	require.Equal(t, false, body["success"])
	assert.Equal(t, float64(10002), body["code"])
}

func TestFromMnemonicEndpoint(t *testing.T) {
	router := newTestRouter()

	body := post(t, router, "/api/v1/wallet/from-mnemonic", gin.H{
		"mnemonic": "test test test test test test test test test test test junk",
	})
	require.Equal(t, true, body["success"])
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", body["address"])

	body = post(t, router, "/api/v1/wallet/from-mnemonic", gin.H{
		"mnemonic": "definitely not a phrase",
	})
	require.Equal(t, false, body["success"])
	assert.Equal(t, float64(20302), body["code"])
}

func TestPing(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")
}

func TestHealth(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
