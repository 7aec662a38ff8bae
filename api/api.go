package api

import (
	"context"
	"net/http"

	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/api/rest"
	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/api/ws"
	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/canvas"
	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/service"
	"go.uber.org/zap"
)

type CanvasAPI struct {
	restHandler *rest.Handler
	wsHandler   *ws.Handler
	shutdownCtx context.Context
}

func NewCanvasAPI(logger *zap.Logger, shutdownCtx context.Context) *CanvasAPI {
	registry := canvas.NewRegistry()

	wsHub := ws.NewHub(logger)
	go wsHub.Run()

	svc := service.NewService(registry, wsHub, logger)

	restHandler := rest.NewHandler(registry)
	wsHandler := ws.NewHandler(svc, wsHub, logger)

	return &CanvasAPI{
		restHandler: restHandler,
		wsHandler:   wsHandler,
		shutdownCtx: shutdownCtx,
	}
}

func (canvasAPI *CanvasAPI) RegisterRoutes(mux *http.ServeMux, allowedOrigin string) {
	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/rooms", canvasAPI.restHandler.HandleRooms)

	wsUpgrader := canvasAPI.wsHandler.NewWsUpgrader(allowedOrigin)
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		canvasAPI.wsHandler.ServeWS(wsUpgrader, w, r, canvasAPI.shutdownCtx)
	})
}
