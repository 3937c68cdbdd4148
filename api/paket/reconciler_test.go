package paket

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is the in-memory Store fixture for engine tests.
type memStore struct {
	units        []OPD
	batches      [][]Paket
	listUnitsErr error
	persistErr   error
}

func newMemStore(units ...OPD) *memStore {
	return &memStore{units: units}
}

func (m *memStore) Persist(_ context.Context, pakets []Paket) error {
	if m.persistErr != nil {
		return m.persistErr
	}
	batch := make([]Paket, len(pakets))
	copy(batch, pakets)
	m.batches = append(m.batches, batch)
	return nil
}

func (m *memStore) QueryByYear(_ context.Context, tahun int) ([]Paket, error) {
	out := []Paket{}
	for _, batch := range m.batches {
		for _, p := range batch {
			if p.Tahun == tahun {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (m *memStore) ListUnits(_ context.Context) ([]OPD, error) {
	if m.listUnitsErr != nil {
		return nil, m.listUnitsErr
	}
	return m.units, nil
}

func (m *memStore) all() []Paket {
	out := []Paket{}
	for _, b := range m.batches {
		out = append(out, b...)
	}
	return out
}

func validRow(nama string) []string {
	return []string{"", nama, "DPU", "APBD", "1000000", "900000", "80", "75"}
}

func TestRunMixedRows(t *testing.T) {
	store := newMemStore(testOPDs...)
	rows := [][]string{
		{"1", "Pembangunan Jalan", "", "", "1000000", "900000", "80", "75"},
		{"2", "Rehab Gedung", "", "", "-5", "0", "0", "0"},
	}
	summary, err := NewReconciler(store).Run(context.Background(), rows, ImportContext{Tahun: 2024, OPDID: "U1"})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Success)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 2, summary.TotalRows)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "Baris 2")
	assert.Contains(t, summary.Message, "1 berhasil, 1 gagal")

	persisted := store.all()
	require.Len(t, persisted, 1)
	assert.Equal(t, "U1", persisted[0].OPDID)
	assert.Equal(t, 2024, persisted[0].Tahun)
}

func TestRunAllInvalidKeepsOrder(t *testing.T) {
	store := newMemStore(testOPDs...)
	rows := [][]string{
		{"1", "", "DPU", "APBD"},
		{"2", "Rehab Gedung", "Dinas Antah Berantah", "APBD"},
		{"3", "Pengaspalan", "DPU", "DANA GAIB"},
	}
	summary, err := NewReconciler(store).Run(context.Background(), rows, ImportContext{Tahun: 2024})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Success)
	assert.Equal(t, 3, summary.Failed)
	require.Len(t, summary.Errors, 3)
	assert.Contains(t, summary.Errors[0], "Baris 1")
	assert.Contains(t, summary.Errors[1], "Baris 2")
	assert.Contains(t, summary.Errors[2], "Baris 3")
	assert.Empty(t, store.batches)
}

func TestRunBlankRowsSkippedButNumbered(t *testing.T) {
	store := newMemStore(testOPDs...)
	rows := [][]string{
		validRow("Pembangunan Jalan"),
		{"", "", ""},
		{"3", "", "DPU", "APBD"},
	}
	summary, err := NewReconciler(store).Run(context.Background(), rows, ImportContext{Tahun: 2024})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalRows)
	assert.Equal(t, summary.TotalRows, summary.Success+summary.Failed)
	require.Len(t, summary.Errors, 1)
	// the blank row keeps its file position, so the failure is row 3
	assert.Contains(t, summary.Errors[0], "Baris 3")
}

func TestRunAllValid(t *testing.T) {
	store := newMemStore(testOPDs...)
	rows := [][]string{
		validRow("Pembangunan Jalan"),
		validRow("Rehab Gedung"),
		validRow("Pengaspalan"),
	}
	summary, err := NewReconciler(store).Run(context.Background(), rows, ImportContext{Tahun: 2024})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Success)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, "Berhasil mengimport 3 data", summary.Message)
	assert.Empty(t, summary.Errors)
}

func TestRunIsNotIdempotent(t *testing.T) {
	store := newMemStore(testOPDs...)
	rows := [][]string{validRow("Pembangunan Jalan")}
	ictx := ImportContext{Tahun: 2024}

	_, err := NewReconciler(store).Run(context.Background(), rows, ictx)
	require.NoError(t, err)
	_, err = NewReconciler(store).Run(context.Background(), rows, ictx)
	require.NoError(t, err)

	// re-importing the same file duplicates records by design
	assert.Len(t, store.batches, 2)
	assert.Len(t, store.all(), 2)
}

func TestRunSumberDanaOverride(t *testing.T) {
	store := newMemStore(testOPDs...)
	rows := [][]string{{"1", "Pembangunan Jalan", "DPU", "apbn", "1000", "900", "10", "5"}}
	summary, err := NewReconciler(store).Run(context.Background(), rows, ImportContext{Tahun: 2024, SumberDana: "APBD"})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Success)
	assert.Equal(t, "APBD", store.all()[0].SumberDana)
}

func TestRunAnomalyNote(t *testing.T) {
	store := newMemStore(testOPDs...)
	rows := [][]string{{"1", "Pembangunan Jalan", "DPU", "APBD", "1000", "900", "150", "75"}}
	summary, err := NewReconciler(store).Run(context.Background(), rows, ImportContext{Tahun: 2024})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Success)
	assert.Contains(t, summary.Message, "1 baris dengan realisasi di luar 0-100")
}

func TestRunTahunOutOfRangeIsFatal(t *testing.T) {
	store := newMemStore(testOPDs...)
	rows := [][]string{validRow("Pembangunan Jalan")}

	_, err := NewReconciler(store).Run(context.Background(), rows, ImportContext{Tahun: 2009})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTahunRange))
	assert.Empty(t, store.batches)
}

func TestRunStoreFailuresAreFatal(t *testing.T) {
	t.Run("master directory unavailable", func(t *testing.T) {
		store := newMemStore(testOPDs...)
		store.listUnitsErr = fmt.Errorf("connection refused")
		_, err := NewReconciler(store).Run(context.Background(), [][]string{validRow("Pembangunan Jalan")}, ImportContext{Tahun: 2024})
		require.Error(t, err)
	})

	t.Run("persist unavailable", func(t *testing.T) {
		store := newMemStore(testOPDs...)
		store.persistErr = fmt.Errorf("connection refused")
		_, err := NewReconciler(store).Run(context.Background(), [][]string{validRow("Pembangunan Jalan")}, ImportContext{Tahun: 2024})
		require.Error(t, err)
	})
}
