package paket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOPDs = []OPD{
	{ID: "U1", Kode: "DPU", Nama: "Dinas Pekerjaan Umum"},
	{ID: "U2", Kode: "DISDIK", Nama: "Dinas Pendidikan"},
}

func validCandidate(row int) CandidateRow {
	return CandidateRow{
		Row:        row,
		Tahun:      2024,
		Nama:       "Pembangunan Jalan",
		OPDText:    "DPU",
		SumberDana: "APBD",
		Pagu:       "1000000",
		Kontrak:    "900000",
		Fisik:      "80",
		Keuangan:   "75",
	}
}

func TestValidateHappyPath(t *testing.T) {
	v := NewValidator(testOPDs)
	p, anomaly, err := v.Validate(validCandidate(1), ImportContext{Tahun: 2024})
	require.Nil(t, err)
	assert.False(t, anomaly)
	assert.Equal(t, "U1", p.OPDID)
	assert.Equal(t, "APBD", p.SumberDana)
	assert.Equal(t, "1000000", p.PaguAnggaran.String())
	assert.Equal(t, "900000", p.NilaiKontrak.String())
	assert.Equal(t, 80.0, p.RealisasiFisik)
	assert.Equal(t, 75.0, p.RealisasiKeuangan)
}

func TestValidateTahun(t *testing.T) {
	v := NewValidator(testOPDs)

	c := validCandidate(1)
	c.Tahun = 2009
	_, _, err := v.Validate(c, ImportContext{Tahun: 2009})
	require.NotNil(t, err)
	assert.Equal(t, FailInvalidFiscalYear, err.Kind)

	c.Tahun = time.Now().Year() + 1
	_, _, err = v.Validate(c, ImportContext{Tahun: c.Tahun})
	require.NotNil(t, err)
	assert.Equal(t, FailInvalidFiscalYear, err.Kind)
}

func TestValidateSumberDana(t *testing.T) {
	v := NewValidator(testOPDs)

	t.Run("case insensitive", func(t *testing.T) {
		c := validCandidate(1)
		c.SumberDana = "apbn"
		p, _, err := v.Validate(c, ImportContext{Tahun: 2024})
		require.Nil(t, err)
		assert.Equal(t, "APBN", p.SumberDana)
	})

	t.Run("context override wins", func(t *testing.T) {
		c := validCandidate(1)
		c.SumberDana = "apbn"
		p, _, err := v.Validate(c, ImportContext{Tahun: 2024, SumberDana: "APBD"})
		require.Nil(t, err)
		assert.Equal(t, "APBD", p.SumberDana)
	})

	t.Run("unknown value", func(t *testing.T) {
		c := validCandidate(1)
		c.SumberDana = "HIBAH"
		_, _, err := v.Validate(c, ImportContext{Tahun: 2024})
		require.NotNil(t, err)
		assert.Equal(t, FailUnknownFundSource, err.Kind)
		assert.Contains(t, err.Reason, "HIBAH")
	})

	t.Run("missing everywhere defaults to LAINNYA", func(t *testing.T) {
		c := validCandidate(1)
		c.SumberDana = ""
		p, _, err := v.Validate(c, ImportContext{Tahun: 2024})
		require.Nil(t, err)
		assert.Equal(t, "LAINNYA", p.SumberDana)
	})
}

func TestValidateOPDResolution(t *testing.T) {
	v := NewValidator(testOPDs)

	t.Run("preselected unit wins", func(t *testing.T) {
		c := validCandidate(1)
		c.OPDText = "DISDIK"
		p, _, err := v.Validate(c, ImportContext{Tahun: 2024, OPDID: "U1"})
		require.Nil(t, err)
		assert.Equal(t, "U1", p.OPDID)
	})

	t.Run("preselected unit unknown", func(t *testing.T) {
		_, _, err := v.Validate(validCandidate(1), ImportContext{Tahun: 2024, OPDID: "U99"})
		require.NotNil(t, err)
		assert.Equal(t, FailUnresolvableUnit, err.Kind)
		assert.Contains(t, err.Reason, "U99")
	})

	t.Run("code match case insensitive", func(t *testing.T) {
		c := validCandidate(1)
		c.OPDText = "disdik"
		p, _, err := v.Validate(c, ImportContext{Tahun: 2024})
		require.Nil(t, err)
		assert.Equal(t, "U2", p.OPDID)
	})

	t.Run("name match when code misses", func(t *testing.T) {
		c := validCandidate(1)
		c.OPDText = "dinas pendidikan"
		p, _, err := v.Validate(c, ImportContext{Tahun: 2024})
		require.Nil(t, err)
		assert.Equal(t, "U2", p.OPDID)
	})

	t.Run("unresolvable names the raw text", func(t *testing.T) {
		c := validCandidate(1)
		c.OPDText = "Dinas Antah Berantah"
		_, _, err := v.Validate(c, ImportContext{Tahun: 2024})
		require.NotNil(t, err)
		assert.Equal(t, FailUnresolvableUnit, err.Kind)
		assert.Contains(t, err.Reason, "Dinas Antah Berantah")
	})
}

func TestValidateNumericFields(t *testing.T) {
	v := NewValidator(testOPDs)

	t.Run("negative pagu rejected", func(t *testing.T) {
		c := validCandidate(2)
		c.Pagu = "-5"
		_, _, err := v.Validate(c, ImportContext{Tahun: 2024})
		require.NotNil(t, err)
		assert.Equal(t, FailInvalidNumericValue, err.Kind)
		assert.Equal(t, 2, err.Row)
	})

	t.Run("garbage kontrak rejected", func(t *testing.T) {
		c := validCandidate(1)
		c.Kontrak = "sembilan ratus"
		_, _, err := v.Validate(c, ImportContext{Tahun: 2024})
		require.NotNil(t, err)
		assert.Equal(t, FailInvalidNumericValue, err.Kind)
	})

	t.Run("absent money defaults to zero", func(t *testing.T) {
		c := validCandidate(1)
		c.Pagu = ""
		c.Kontrak = ""
		p, _, err := v.Validate(c, ImportContext{Tahun: 2024})
		require.Nil(t, err)
		assert.True(t, p.PaguAnggaran.IsZero())
		assert.True(t, p.NilaiKontrak.IsZero())
	})

	t.Run("out of range percentage is kept but flagged", func(t *testing.T) {
		c := validCandidate(1)
		c.Fisik = "150"
		p, anomaly, err := v.Validate(c, ImportContext{Tahun: 2024})
		require.Nil(t, err)
		assert.True(t, anomaly)
		assert.Equal(t, 150.0, p.RealisasiFisik)
	})

	t.Run("garbage percentage rejected", func(t *testing.T) {
		c := validCandidate(1)
		c.Keuangan = "tinggi"
		_, _, err := v.Validate(c, ImportContext{Tahun: 2024})
		require.NotNil(t, err)
		assert.Equal(t, FailInvalidNumericValue, err.Kind)
	})
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"1000000", "1000000"},
		{"1.234.567", "1234567"},
		{"1.234.567,89", "1234567.89"},
		{"1,234,567.89", "1234567.89"},
		{"Rp 2.500.000", "2500000"},
		{"1500.50", "1500.5"},
		{"0.5", "0.5"},
		{"-5", "-5"},
	}
	for _, tc := range cases {
		got, err := parseMoney(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got.String(), tc.in)
	}

	_, err := parseMoney("abc")
	assert.Error(t, err)
}

func TestParsePct(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"80", 80},
		{"75,5", 75.5},
		{"12.5 %", 12.5},
		{"150", 150},
	}
	for _, tc := range cases {
		got, err := parsePct(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := parsePct("n/a")
	assert.Error(t, err)
}
