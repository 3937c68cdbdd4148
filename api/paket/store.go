package paket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Store is the record store boundary the import and rekap engines depend on.
// Persist must write the whole slice as one logical write: concurrent import
// runs may not interleave partial batches.
type Store interface {
	Persist(ctx context.Context, pakets []Paket) error
	QueryByYear(ctx context.Context, tahun int) ([]Paket, error)
	ListUnits(ctx context.Context) ([]OPD, error)
}

// PgxStore backs Store with the shared pgx pool.
type PgxStore struct {
	pool *pgxpool.Pool
}

func NewPgxStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{pool: pool}
}

// Persist writes all records of one import run inside a single transaction,
// tagged with a fresh upload batch id.
func (s *PgxStore) Persist(ctx context.Context, pakets []Paket) error {
	if len(pakets) == 0 {
		return nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batchID := uuid.New().String()
	now := time.Now()
	rows := make([][]interface{}, len(pakets))
	for i, p := range pakets {
		id := p.ID
		if id == "" {
			id = uuid.New().String()
		}
		rows[i] = []interface{}{
			id, p.Tahun, p.OPDID, p.SumberDana, p.Nama,
			p.PaguAnggaran.String(), p.NilaiKontrak.String(),
			p.RealisasiFisik, p.RealisasiKeuangan,
			batchID, now,
		}
	}
	if _, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"paket_pekerjaan"},
		[]string{
			"paket_id", "tahun", "opd_id", "sumber_dana", "nama_paket",
			"pagu_anggaran", "nilai_kontrak", "realisasi_fisik", "realisasi_keuangan",
			"upload_batch_id", "created_at",
		},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("failed to stage paket batch %s: %w", batchID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

func (s *PgxStore) QueryByYear(ctx context.Context, tahun int) ([]Paket, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT paket_id, tahun, opd_id, sumber_dana, nama_paket,
		       pagu_anggaran::text, nilai_kontrak::text,
		       realisasi_fisik, realisasi_keuangan
		FROM paket_pekerjaan
		WHERE tahun = $1
		ORDER BY created_at, paket_id
	`, tahun)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	out := []Paket{}
	for rows.Next() {
		var p Paket
		var pagu, kontrak string
		if err := rows.Scan(&p.ID, &p.Tahun, &p.OPDID, &p.SumberDana, &p.Nama,
			&pagu, &kontrak, &p.RealisasiFisik, &p.RealisasiKeuangan); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if p.PaguAnggaran, err = scanMoney("pagu_anggaran", pagu); err != nil {
			return nil, err
		}
		if p.NilaiKontrak, err = scanMoney("nilai_kontrak", kontrak); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// scanMoney converts a NUMERIC column read as text back into a decimal.
func scanMoney(column, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("bad %s value %q: %w", column, raw, err)
	}
	return d, nil
}

// ListUnits returns the OPD directory ordered by code. This order is the
// natural directory order the rekap report follows.
func (s *PgxStore) ListUnits(ctx context.Context) ([]OPD, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT opd_id, kode, nama
		FROM master_opd
		ORDER BY kode
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	out := []OPD{}
	for rows.Next() {
		var o OPD
		if err := rows.Scan(&o.ID, &o.Kode, &o.Nama); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
