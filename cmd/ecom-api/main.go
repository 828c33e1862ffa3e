package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/Dpak2002/go-ecommerce-api/cmd/ecom-api/app"
	"github.com/Dpak2002/go-ecommerce-api/configs"
)

func main() {
	env := os.Getenv("APP_ENV") // dev | staging | prod
	if env == "" {
		env = "dev"
	}

	cfg, err := configs.Load("configs", env)
	if err != nil {
		log.Fatal(err)
	}

	a, cleanup, err := app.InitWithConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	srv := app.NewHTTPServer(cfg, a.Router)
	log.Printf("ecom-api (%s) listening on %s", env, cfg.App.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
