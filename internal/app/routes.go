package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/schedly/schedly/internal/rest"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Events
	r.HandleFunc("/event/fetchAll", deps.EventHandler.FetchAll).Methods("GET")
	r.HandleFunc("/event/fetch/{eventId}", deps.EventHandler.Fetch).Methods("GET")
	r.HandleFunc("/event/create", deps.EventHandler.Create).Methods("POST")
	r.HandleFunc("/event/update/{eventId}", deps.EventHandler.Update).Methods("POST")
	r.HandleFunc("/event/delete/{eventId}", deps.EventHandler.Delete).Methods("DELETE")

	// Liveness
	r.HandleFunc("/check", func(w http.ResponseWriter, req *http.Request) {
		rest.JSON(w, http.StatusOK, rest.Response{Message: "Server Running"})
	}).Methods("GET")
}
