package dash

import (
	"context"
	"fmt"

	"RekapLamongan/api/paket"

	"github.com/shopspring/decimal"
)

// RekapRow is the rollup for one OPD within a fiscal year.
type RekapRow struct {
	OPD            paket.OPD `json:"opd"`
	JumlahKegiatan int       `json:"jumlahKegiatan"`
	PaguAnggaran   float64   `json:"paguAnggaran"`
	NilaiKontrak   float64   `json:"nilaiKontrak"`
	RealisasiFisik float64   `json:"realisasiFisik"`
	PctKeuangan    float64   `json:"pctKeuangan"`
}

// RekapTotals is the grand total across all OPD rows.
type RekapTotals struct {
	JumlahKegiatan int     `json:"jumlahKegiatan"`
	PaguAnggaran   float64 `json:"paguAnggaran"`
	NilaiKontrak   float64 `json:"nilaiKontrak"`
	RealisasiFisik float64 `json:"realisasiFisik"`
	PctKeuangan    float64 `json:"pctKeuangan"`
}

type RekapResult struct {
	Rows   []RekapRow  `json:"rows"`
	Totals RekapTotals `json:"totals"`
}

// Aggregator computes the per-OPD rollup for one fiscal year.
//
// The two realization percentages of a row are the unweighted arithmetic
// mean over the OPD's records, NOT a pagu-weighted figure. The totals'
// percentages are in turn the unweighted mean of the per-OPD means. Callers
// rendering these numbers should not assume any budget weighting.
type Aggregator struct {
	store paket.Store
}

func NewAggregator(store paket.Store) *Aggregator {
	return &Aggregator{store: store}
}

type rekapGroup struct {
	count       int
	pagu        decimal.Decimal
	kontrak     decimal.Decimal
	fisikSum    float64
	keuanganSum float64
}

// Rekap reads every record of the given year and groups it by OPD. Rows
// follow the master directory order; records whose OPD id is missing from
// the directory are appended afterwards in first-encountered order, so the
// output is deterministic across calls. A year with no records yields empty
// rows and all-zero totals.
func (a *Aggregator) Rekap(ctx context.Context, tahun int) (*RekapResult, error) {
	records, err := a.store.QueryByYear(ctx, tahun)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca data paket: %w", err)
	}
	opds, err := a.store.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca master OPD: %w", err)
	}

	groups := make(map[string]*rekapGroup)
	orphanOrder := []string{}
	known := make(map[string]paket.OPD, len(opds))
	for _, o := range opds {
		known[o.ID] = o
	}
	for _, rec := range records {
		g, ok := groups[rec.OPDID]
		if !ok {
			g = &rekapGroup{pagu: decimal.Zero, kontrak: decimal.Zero}
			groups[rec.OPDID] = g
			if _, inDir := known[rec.OPDID]; !inDir {
				orphanOrder = append(orphanOrder, rec.OPDID)
			}
		}
		g.count++
		g.pagu = g.pagu.Add(rec.PaguAnggaran)
		g.kontrak = g.kontrak.Add(rec.NilaiKontrak)
		g.fisikSum += rec.RealisasiFisik
		g.keuanganSum += rec.RealisasiKeuangan
	}

	result := &RekapResult{Rows: []RekapRow{}}
	appendRow := func(opd paket.OPD, g *rekapGroup) {
		n := float64(g.count)
		result.Rows = append(result.Rows, RekapRow{
			OPD:            opd,
			JumlahKegiatan: g.count,
			PaguAnggaran:   g.pagu.InexactFloat64(),
			NilaiKontrak:   g.kontrak.InexactFloat64(),
			RealisasiFisik: g.fisikSum / n,
			PctKeuangan:    g.keuanganSum / n,
		})
	}
	for _, o := range opds {
		if g, ok := groups[o.ID]; ok {
			appendRow(o, g)
		}
	}
	for _, id := range orphanOrder {
		appendRow(paket.OPD{ID: id}, groups[id])
	}

	totalPagu := decimal.Zero
	totalKontrak := decimal.Zero
	fisikMeanSum := 0.0
	keuanganMeanSum := 0.0
	for _, row := range result.Rows {
		result.Totals.JumlahKegiatan += row.JumlahKegiatan
		totalPagu = totalPagu.Add(decimal.NewFromFloat(row.PaguAnggaran))
		totalKontrak = totalKontrak.Add(decimal.NewFromFloat(row.NilaiKontrak))
		fisikMeanSum += row.RealisasiFisik
		keuanganMeanSum += row.PctKeuangan
	}
	if n := float64(len(result.Rows)); n > 0 {
		result.Totals.RealisasiFisik = fisikMeanSum / n
		result.Totals.PctKeuangan = keuanganMeanSum / n
	}
	result.Totals.PaguAnggaran = totalPagu.InexactFloat64()
	result.Totals.NilaiKontrak = totalKontrak.InexactFloat64()

	return result, nil
}
