package app

import (
	"net/http"
	"testing"
	"time"

	"github.com/Dpak2002/go-ecommerce-api/configs"
	"github.com/stretchr/testify/assert"
)

func TestNewHTTPServerAppliesTimeouts(t *testing.T) {
	cfg := configs.Config{}
	cfg.App.HTTPAddr = ":8080"
	cfg.HTTP.ReadTimeout = 10 * time.Second
	cfg.HTTP.WriteTimeout = 15 * time.Second
	cfg.HTTP.IdleTimeout = time.Minute

	mux := http.NewServeMux()
	srv := NewHTTPServer(cfg, mux)

	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, http.Handler(mux), srv.Handler)
	assert.Equal(t, 10*time.Second, srv.ReadTimeout)
	assert.Equal(t, 15*time.Second, srv.WriteTimeout)
	assert.Equal(t, time.Minute, srv.IdleTimeout)
}
