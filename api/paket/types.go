package paket

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SumberDanaList is the fixed fund source enumeration. Values from the
// uploaded file are matched against it case-insensitively and stored in
// this canonical spelling.
var SumberDanaList = []string{
	"APBD",
	"APBN",
	"DAU",
	"DAK",
	"BLUD",
	"BK",
	"BANTUAN PROVINSI",
	"LAINNYA",
}

// NormalizeSumberDana matches raw against the enumeration and returns the
// canonical spelling, or "" when it is not a known fund source.
func NormalizeSumberDana(raw string) string {
	needle := strings.ToUpper(strings.TrimSpace(raw))
	for _, s := range SumberDanaList {
		if s == needle {
			return s
		}
	}
	return ""
}

// OPD is one organizational unit from the master directory.
type OPD struct {
	ID   string `json:"id"`
	Kode string `json:"code"`
	Nama string `json:"name"`
}

// Paket is one persisted project package record.
type Paket struct {
	ID                string          `json:"id"`
	Tahun             int             `json:"tahun"`
	OPDID             string          `json:"opdId"`
	SumberDana        string          `json:"sumberDana"`
	Nama              string          `json:"nama"`
	PaguAnggaran      decimal.Decimal `json:"paguAnggaran"`
	NilaiKontrak      decimal.Decimal `json:"nilaiKontrak"`
	RealisasiFisik    float64         `json:"realisasiFisik"`
	RealisasiKeuangan float64         `json:"realisasiKeuangan"`
}

// ImportContext carries the form fields submitted alongside the file.
// OPDID and SumberDana are optional; when set they override whatever the
// rows themselves say.
type ImportContext struct {
	Tahun      int
	OPDID      string
	SumberDana string
}

// ImportSummary is the result of one import run. It is built fresh per run
// and returned to the caller once, never persisted.
type ImportSummary struct {
	Message   string   `json:"message"`
	Success   int      `json:"success"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
	TotalRows int      `json:"totalRows"`
}

// FailureKind tags the reason a single row was rejected.
type FailureKind string

const (
	FailMissingField        FailureKind = "MissingField"
	FailInvalidFiscalYear   FailureKind = "InvalidFiscalYear"
	FailUnknownFundSource   FailureKind = "UnknownFundSource"
	FailUnresolvableUnit    FailureKind = "UnresolvableUnit"
	FailInvalidNumericValue FailureKind = "InvalidNumericValue"
)

// RowError is one row-level failure. Row is the 1-based position of the row
// in the uploaded file (header excluded). Row failures are collected into
// the summary, they never abort the run.
type RowError struct {
	Row    int
	Kind   FailureKind
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("Baris %d: %s", e.Row, e.Reason)
}

// CandidateRow is the raw, parsed-but-not-yet-validated form of one row.
// Numeric cells stay strings here; the validator owns their interpretation.
type CandidateRow struct {
	Row        int
	Tahun      int
	Nama       string
	OPDText    string
	SumberDana string
	Pagu       string
	Kontrak    string
	Fisik      string
	Keuangan   string
}
