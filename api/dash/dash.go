package dash

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

func StartDashService(pool *pgxpool.Pool) {
	r := mux.NewRouter()
	r.HandleFunc("/dash/rekap", GetRekap(pool)).Methods("GET", "POST")
	log.Println("Dash Service started on :4143")
	if err := http.ListenAndServe(":4143", r); err != nil {
		log.Fatalf("Dash Service failed: %v", err)
	}
}
