package server

import (
	"net/http"

	"flowscope/internal/gateway/handler"
	"flowscope/internal/gateway/middleware"
)

func NewMux(
	navHandler *handler.NavigationHandler,
	artifactHandler *handler.ArtifactHandler,
	progressHandler *handler.ProgressHandler,
) http.Handler {
	mux := http.NewServeMux()

	// Navigation
	mux.HandleFunc("/v1/nav/open", navHandler.HandleOpen)
	mux.HandleFunc("/v1/nav/select", navHandler.HandleSelect)
	mux.HandleFunc("/v1/nav/back", navHandler.HandleBack)
	mux.HandleFunc("/v1/nav/synchronize", navHandler.HandleSynchronize)
	mux.HandleFunc("/v1/nav/state", navHandler.HandleState)

	// Artifact persistence
	mux.HandleFunc("/v1/artifact/import", artifactHandler.HandleImport)
	mux.HandleFunc("/v1/artifact/export", artifactHandler.HandleExport)

	// Analysis progress
	mux.HandleFunc("/v1/progress/watch", progressHandler.HandleWatch)

	return middleware.CORS(mux)
}
