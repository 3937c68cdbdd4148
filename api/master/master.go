package master

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

func StartMasterService(pool *pgxpool.Pool) {
	r := mux.NewRouter()
	r.HandleFunc("/master/opd/all", GetAllOPD(pool)).Methods("GET", "POST")
	log.Println("Master Service started on :5143")
	if err := http.ListenAndServe(":5143", r); err != nil {
		log.Fatalf("Master Service failed: %v", err)
	}
}
