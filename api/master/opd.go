package master

import (
	"encoding/json"
	"net/http"
	"strings"

	"RekapLamongan/api"
	"RekapLamongan/api/constants"
	"RekapLamongan/api/paket"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GetAllOPD returns the OPD directory, optionally filtered by a search term
// matched against code and name.
func GetAllOPD(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Search string `json:"search"`
		}
		if api.IsJSONRequest(r) {
			_ = json.NewDecoder(r.Body).Decode(&body)
		} else {
			body.Search = r.FormValue("search")
		}

		opds, err := paket.NewPgxStore(pool).ListUnits(r.Context())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
			return
		}

		needle := strings.ToLower(strings.TrimSpace(body.Search))
		if needle != "" {
			filtered := make([]paket.OPD, 0, len(opds))
			for _, o := range opds {
				if strings.Contains(strings.ToLower(o.Kode), needle) ||
					strings.Contains(strings.ToLower(o.Nama), needle) {
					filtered = append(filtered, o)
				}
			}
			opds = filtered
		}

		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(opds)
	}
}
