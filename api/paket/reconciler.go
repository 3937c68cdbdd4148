package paket

import (
	"context"
	"fmt"
	"time"

	"RekapLamongan/internal/config"
	"RekapLamongan/internal/logger"
)

// ErrTahunRange is the run-level failure for an out-of-bounds fiscal year in
// the import context itself. It aborts the run before any row is processed.
var ErrTahunRange = fmt.Errorf("tahun anggaran di luar rentang yang diizinkan")

// Reconciler drives one import run: parse and validate every row in file
// order, stage the valid records, persist them in one logical write, and
// report every per-row failure. A failing row never aborts the batch.
//
// Runs are not idempotent: re-importing the same file creates duplicate
// records. Deduplication is a caller concern.
type Reconciler struct {
	store Store
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// Run processes the data rows of one uploaded file (header already
// stripped). Rows are numbered 1-based in file order; blank rows keep their
// number but are skipped and excluded from TotalRows.
func (r *Reconciler) Run(ctx context.Context, rows [][]string, ictx ImportContext) (*ImportSummary, error) {
	currentYear := time.Now().Year()
	if ictx.Tahun < config.MinTahunAnggaran || ictx.Tahun > currentYear {
		return nil, fmt.Errorf("%w: %d (harus %d-%d)", ErrTahunRange, ictx.Tahun, config.MinTahunAnggaran, currentYear)
	}

	opds, err := r.store.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca master OPD: %w", err)
	}
	v := NewValidator(opds)

	staged := make([]Paket, 0, len(rows))
	rowErrs := make([]*RowError, 0)
	anomalies := 0
	totalRows := 0

	for i, cells := range rows {
		rowNum := i + 1
		if IsBlankRow(cells) {
			continue
		}
		totalRows++

		candidate, perr := ParseRow(rowNum, cells, ictx)
		if perr != nil {
			rowErrs = append(rowErrs, perr)
			continue
		}
		p, anomaly, verr := v.Validate(candidate, ictx)
		if verr != nil {
			rowErrs = append(rowErrs, verr)
			continue
		}
		if anomaly {
			anomalies++
		}
		staged = append(staged, p)
	}

	if len(staged) > 0 {
		if err := r.store.Persist(ctx, staged); err != nil {
			return nil, fmt.Errorf("gagal menyimpan data: %w", err)
		}
	}

	summary := &ImportSummary{
		Success:   len(staged),
		Failed:    len(rowErrs),
		Errors:    make([]string, 0, len(rowErrs)),
		TotalRows: totalRows,
	}
	for _, e := range rowErrs {
		summary.Errors = append(summary.Errors, e.Error())
	}
	if summary.Failed == 0 {
		summary.Message = fmt.Sprintf("Berhasil mengimport %d data", summary.Success)
	} else {
		summary.Message = fmt.Sprintf("Import selesai: %d berhasil, %d gagal", summary.Success, summary.Failed)
	}
	if anomalies > 0 {
		summary.Message += fmt.Sprintf(" (%d baris dengan realisasi di luar 0-100)", anomalies)
	}

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf(
			"[Import] tahun=%d opd=%q sumberDana=%q total=%d success=%d failed=%d",
			ictx.Tahun, ictx.OPDID, ictx.SumberDana, totalRows, summary.Success, summary.Failed))
	}
	return summary, nil
}
