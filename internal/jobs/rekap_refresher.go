package jobs

import (
	"context"
	"fmt"
	"time"

	"RekapLamongan/api/dash"
	"RekapLamongan/api/paket"
	"RekapLamongan/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RefreshRekapSnapshot recomputes the current-year rollup and rewrites the
// rekap_snapshot table in one transaction. The snapshot feeds the landing
// dashboard; the /dash/rekap endpoint itself always computes live.
func RefreshRekapSnapshot(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tahun := time.Now().Year()
	result, err := dash.NewAggregator(paket.NewPgxStore(pool)).Rekap(ctx, tahun)
	if err != nil {
		return fmt.Errorf("rekap %d: %w", tahun, err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM rekap_snapshot WHERE tahun = $1`, tahun); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	now := time.Now()
	for _, row := range result.Rows {
		if _, err := tx.Exec(ctx, `
			INSERT INTO rekap_snapshot
				(tahun, opd_id, jumlah_kegiatan, pagu_anggaran, nilai_kontrak,
				 realisasi_fisik, realisasi_keuangan, refreshed_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, tahun, row.OPD.ID, row.JumlahKegiatan, row.PaguAnggaran, row.NilaiKontrak,
			row.RealisasiFisik, row.PctKeuangan, now); err != nil {
			return fmt.Errorf("insert snapshot row: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("[CRON] rekap snapshot refreshed: tahun=%d rows=%d", tahun, len(result.Rows)))
	}
	return nil
}
