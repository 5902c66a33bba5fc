package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snapseek/api/internal/config"
)

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:    "test",
		Google: config.OAuthCredentials{ClientID: "id", ClientSecret: "secret"},
	}

	r := gin.New()
	r.GET("/api/health", Handler(cfg))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Version     string          `json:"version"`
			Environment string          `json:"environment"`
			OAuth       map[string]bool `json:"oauth"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}

	if !body.Success {
		t.Error("expected success true")
	}
	if body.Data.Environment != "test" {
		t.Errorf("expected environment test, got %s", body.Data.Environment)
	}
	if !body.Data.OAuth["google"] {
		t.Error("expected google configured")
	}
	if body.Data.OAuth["facebook"] || body.Data.OAuth["github"] {
		t.Error("expected facebook and github unconfigured")
	}
}
