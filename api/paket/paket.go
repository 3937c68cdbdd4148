package paket

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

func StartPaketService(pool *pgxpool.Pool) {
	r := mux.NewRouter()
	r.HandleFunc("/paket/import", ImportExcel(pool)).Methods("POST")
	r.HandleFunc("/paket/by-tahun", GetPaketByTahun(pool)).Methods("POST")
	log.Println("Paket Service started on :6143")
	if err := http.ListenAndServe(":6143", r); err != nil {
		log.Fatalf("Paket Service failed: %v", err)
	}
}
