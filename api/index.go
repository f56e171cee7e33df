package handler

import (
	"net/http"
	"os"
	"sync"

	"bayleaf/config"
	"bayleaf/di"
	"bayleaf/shared/logger"
	transport "bayleaf/transport/http"
)

var (
	once   sync.Once
	server *transport.HTTP
)

// Handler is the serverless entrypoint. The service graph is built on the first request
// and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.UseJSONOutput(cfg, os.Stdout)
		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
