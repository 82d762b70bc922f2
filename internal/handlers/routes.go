package handlers

import "net/http"

func (g *GameHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/status", Status)
	mux.HandleFunc("POST /v1/game", g.NewGame)
	mux.HandleFunc("GET /v1/game/{id}", g.Fetch)
	mux.HandleFunc("POST /v1/game/{id}/open", g.Open)
	mux.HandleFunc("POST /v1/game/{id}/flag", g.Flag)
	mux.HandleFunc("POST /v1/game/{id}/batch", g.Batch)
	mux.HandleFunc("GET /v1/game/{id}/connect", g.ConnectWS)
}
