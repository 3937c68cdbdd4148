package paket

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"RekapLamongan/api"
	"RekapLamongan/api/constants"

	"github.com/extrame/xls"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xuri/excelize/v2"
)

func getFileExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// parseUploadFile reads the whole uploaded file into rows of cells.
func parseUploadFile(file multipart.File, ext string) ([][]string, error) {
	switch ext {
	case ".csv":
		r := csv.NewReader(file)
		r.FieldsPerRecord = -1
		return r.ReadAll()
	case ".xlsx":
		f, err := excelize.OpenReader(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sheet := f.GetSheetName(0)
		return f.GetRows(sheet)
	case ".xls":
		wb, err := xls.OpenReader(file, "utf-8")
		if err != nil {
			return nil, err
		}
		return wb.ReadAllCells(50000), nil
	}
	return nil, errors.New(constants.ErrUnsupportedFileType)
}

// stripHeader drops a leading caption row (and any blank rows above it) so
// the reconciler numbers real data rows from 1.
func stripHeader(rows [][]string) [][]string {
	for i, cells := range rows {
		if IsBlankRow(cells) {
			continue
		}
		if LooksLikeHeader(cells) {
			return rows[i+1:]
		}
		return rows[i:]
	}
	return nil
}

// ImportExcel handles the import form: a spreadsheet plus tahun, optional
// opdId and optional sumberDana. The response is the run summary; run-level
// failures come back as a single error instead.
func ImportExcel(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			api.RespondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrMultipartForm)
			return
		}

		tahun, err := strconv.Atoi(r.FormValue("tahun"))
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrTahunRequired)
			return
		}
		ictx := ImportContext{
			Tahun:      tahun,
			OPDID:      strings.TrimSpace(r.FormValue("opdId")),
			SumberDana: strings.TrimSpace(r.FormValue("sumberDana")),
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			// fall back to the first file field, whatever its name
			for _, files := range r.MultipartForm.File {
				if len(files) > 0 {
					header = files[0]
					file, err = header.Open()
					break
				}
			}
		}
		if err != nil || file == nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrFileRequired)
			return
		}
		defer file.Close()

		rows, err := parseUploadFile(file, getFileExt(header.Filename))
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "File tidak dapat dibaca: "+err.Error())
			return
		}

		summary, err := NewReconciler(NewPgxStore(pool)).Run(r.Context(), stripHeader(rows), ictx)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrTahunRange) {
				status = http.StatusBadRequest
			}
			api.RespondWithError(w, status, err.Error())
			return
		}

		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(summary)
	}
}
