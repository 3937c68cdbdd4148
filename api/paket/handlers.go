package paket

import (
	"encoding/json"
	"net/http"
	"strconv"

	"RekapLamongan/api"
	"RekapLamongan/api/constants"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GetPaketByTahun returns every persisted record for one fiscal year.
func GetPaketByTahun(pool *pgxpool.Pool) http.HandlerFunc {
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

		pakets, err := NewPgxStore(pool).QueryByYear(r.Context(), body.Tahun)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", pakets)
	}
}
