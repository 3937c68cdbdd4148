package paket

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"RekapLamongan/internal/config"

	"github.com/shopspring/decimal"
)

// Validator checks candidate rows against the domain invariants. It holds a
// read-only snapshot of the OPD directory so runs are testable with fixture
// data and never touch ambient global state.
type Validator struct {
	byKode      map[string]OPD
	byNama      map[string]OPD
	byID        map[string]OPD
	currentYear int
}

func NewValidator(opds []OPD) *Validator {
	v := &Validator{
		byKode:      make(map[string]OPD, len(opds)),
		byNama:      make(map[string]OPD, len(opds)),
		byID:        make(map[string]OPD, len(opds)),
		currentYear: time.Now().Year(),
	}
	for _, o := range opds {
		v.byKode[strings.ToLower(strings.TrimSpace(o.Kode))] = o
		v.byNama[strings.ToLower(strings.TrimSpace(o.Nama))] = o
		v.byID[o.ID] = o
	}
	return v
}

// Validate runs the checks in a fixed order and stops at the first failure.
// The returned bool flags a percentage outside [0,100]; such rows are kept
// (data-quality signal, not an error) but the run summary mentions them.
func (v *Validator) Validate(c CandidateRow, ictx ImportContext) (Paket, bool, *RowError) {
	if c.Tahun < config.MinTahunAnggaran || c.Tahun > v.currentYear {
		return Paket{}, false, &RowError{
			Row:    c.Row,
			Kind:   FailInvalidFiscalYear,
			Reason: fmt.Sprintf("tahun anggaran %d di luar rentang %d-%d", c.Tahun, config.MinTahunAnggaran, v.currentYear),
		}
	}

	// Context override wins over whatever the row says.
	rawSumber := c.SumberDana
	if ictx.SumberDana != "" {
		rawSumber = ictx.SumberDana
	}
	// rows without a fund source fall into the catch-all bucket
	sumberDana := "LAINNYA"
	if rawSumber != "" {
		sumberDana = NormalizeSumberDana(rawSumber)
	}
	if sumberDana == "" {
		return Paket{}, false, &RowError{
			Row:    c.Row,
			Kind:   FailUnknownFundSource,
			Reason: fmt.Sprintf("sumber dana %q tidak dikenal", rawSumber),
		}
	}

	var opd OPD
	if ictx.OPDID != "" {
		o, ok := v.byID[ictx.OPDID]
		if !ok {
			return Paket{}, false, &RowError{
				Row:    c.Row,
				Kind:   FailUnresolvableUnit,
				Reason: fmt.Sprintf("OPD dengan id %q tidak ditemukan", ictx.OPDID),
			}
		}
		opd = o
	} else {
		needle := strings.ToLower(c.OPDText)
		if o, ok := v.byKode[needle]; ok {
			opd = o
		} else if o, ok := v.byNama[needle]; ok {
			opd = o
		} else {
			return Paket{}, false, &RowError{
				Row:    c.Row,
				Kind:   FailUnresolvableUnit,
				Reason: fmt.Sprintf("OPD %q tidak ditemukan di master", c.OPDText),
			}
		}
	}

	pagu, err := parseMoney(c.Pagu)
	if err != nil || pagu.IsNegative() {
		return Paket{}, false, &RowError{
			Row:    c.Row,
			Kind:   FailInvalidNumericValue,
			Reason: fmt.Sprintf("pagu anggaran %q tidak valid", c.Pagu),
		}
	}
	kontrak, err := parseMoney(c.Kontrak)
	if err != nil || kontrak.IsNegative() {
		return Paket{}, false, &RowError{
			Row:    c.Row,
			Kind:   FailInvalidNumericValue,
			Reason: fmt.Sprintf("nilai kontrak %q tidak valid", c.Kontrak),
		}
	}

	fisik, err := parsePct(c.Fisik)
	if err != nil {
		return Paket{}, false, &RowError{
			Row:    c.Row,
			Kind:   FailInvalidNumericValue,
			Reason: fmt.Sprintf("realisasi fisik %q tidak valid", c.Fisik),
		}
	}
	keuangan, err := parsePct(c.Keuangan)
	if err != nil {
		return Paket{}, false, &RowError{
			Row:    c.Row,
			Kind:   FailInvalidNumericValue,
			Reason: fmt.Sprintf("realisasi keuangan %q tidak valid", c.Keuangan),
		}
	}
	anomaly := fisik < 0 || fisik > 100 || keuangan < 0 || keuangan > 100

	return Paket{
		Tahun:             c.Tahun,
		OPDID:             opd.ID,
		SumberDana:        sumberDana,
		Nama:              c.Nama,
		PaguAnggaran:      pagu,
		NilaiKontrak:      kontrak,
		RealisasiFisik:    fisik,
		RealisasiKeuangan: keuangan,
	}, anomaly, nil
}

// parseMoney reads a currency cell. Empty cells default to zero. Both the
// Indonesian (1.234.567,89) and the plain (1,234,567.89) separator styles
// show up in uploaded files.
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Rp")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, nil
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		// the later separator is the decimal mark
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 || len(s)-lastDot-1 == 3 {
			// thousand separators
			s = strings.ReplaceAll(s, ".", "")
		}
	}
	return decimal.NewFromString(s)
}

// parsePct reads a percentage cell. Empty cells default to zero. Values
// outside [0,100] parse fine; the validator flags them separately.
func parsePct(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.Replace(s, ",", ".", 1)
	return strconv.ParseFloat(s, 64)
}
