package paket

import "strings"

// Fixed column layout of the upload template. The first column is the
// running number and is ignored.
const (
	colNo = iota
	colNama
	colOPD
	colSumberDana
	colPagu
	colKontrak
	colFisik
	colKeuangan
)

func cellAt(cells []string, idx int) string {
	if idx < len(cells) {
		return strings.TrimSpace(cells[idx])
	}
	return ""
}

// IsBlankRow reports whether every cell of the row is empty. Blank rows are
// skipped silently and do not count toward the summary totals.
func IsBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// LooksLikeHeader detects the caption row of the upload template so it can
// be stripped before the data rows are numbered. Caption words alone do not
// decide it: activity names reuse words like "paket" and "kegiatan", so the
// row must also carry text instead of a number in a money column.
func LooksLikeHeader(cells []string) bool {
	joined := strings.ToLower(strings.Join(cells, " "))
	hits := 0
	for _, caption := range []string{"nama", "kegiatan", "paket", "opd", "instansi", "sumber", "pagu", "kontrak", "realisasi"} {
		if strings.Contains(joined, caption) {
			hits++
		}
	}
	if hits < 2 {
		return false
	}
	for _, cell := range []string{cellAt(cells, colPagu), cellAt(cells, colKontrak)} {
		if cell == "" {
			continue
		}
		_, err := parseMoney(cell)
		return err != nil
	}
	return false
}

// ParseRow maps one non-blank row onto a CandidateRow. It only checks that
// the minimum required cells are populated; everything else is the
// validator's job. rowNum is 1-based over the data rows of the file.
func ParseRow(rowNum int, cells []string, ictx ImportContext) (CandidateRow, *RowError) {
	c := CandidateRow{
		Row:        rowNum,
		Tahun:      ictx.Tahun,
		Nama:       cellAt(cells, colNama),
		OPDText:    cellAt(cells, colOPD),
		SumberDana: cellAt(cells, colSumberDana),
		Pagu:       cellAt(cells, colPagu),
		Kontrak:    cellAt(cells, colKontrak),
		Fisik:      cellAt(cells, colFisik),
		Keuangan:   cellAt(cells, colKeuangan),
	}
	if c.Nama == "" {
		return CandidateRow{}, &RowError{Row: rowNum, Kind: FailMissingField, Reason: "nama paket/kegiatan kosong"}
	}
	if ictx.OPDID == "" && c.OPDText == "" {
		return CandidateRow{}, &RowError{Row: rowNum, Kind: FailMissingField, Reason: "kolom OPD kosong dan tidak ada OPD yang dipilih"}
	}
	return c, nil
}
