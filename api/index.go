package handler

import (
	"net/http"
	"sync"

	"lodge/config"
	"lodge/di"
	"lodge/shared/logger"
	transportHTTP "lodge/transport/http"
)

var (
	server *transportHTTP.HTTP
	once   sync.Once
)

// Handler is the serverless entry point. The dependency graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
