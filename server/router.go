package server

import (
	"net/http"

	"ashfall/server/domain"
	"ashfall/server/handler"
)

func Route(pubsub domain.PubSub, roomManager domain.RoomManager) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", handler.NewAcceptHandler(pubsub, roomManager))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}
