package dash

import (
	"encoding/json"
	"net/http"
	"strconv"

	"RekapLamongan/api"
	"RekapLamongan/api/constants"
	"RekapLamongan/api/paket"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GetRekap serves the yearly rollup: one row per OPD plus grand totals.
// The query is year-granular only; the month selector in the frontend is a
// display concern and has no server-side counterpart.
func GetRekap(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Tahun int `json:"tahun"`
		}
		if api.IsJSONRequest(r) {
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
				return
			}
		} else {
			body.Tahun, _ = strconv.Atoi(r.FormValue("tahun"))
		}
		if body.Tahun == 0 {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrTahunRequired)
			return
		}

		result, err := NewAggregator(paket.NewPgxStore(pool)).Rekap(r.Context(), body.Tahun)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(result)
	}
}
