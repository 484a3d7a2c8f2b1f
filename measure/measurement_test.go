package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verakit/vera/blob"
	"github.com/verakit/vera/datum"
	"github.com/verakit/vera/errs"
	"github.com/verakit/vera/metric"
	"github.com/verakit/vera/spec"
	"github.com/verakit/vera/units"
)

func testMetrics(t *testing.T) *metric.Set {
	t.Helper()

	pa1, err := metric.New("validate_drp.PA1", "photometric repeatability", units.MustParse("mmag"))
	require.NoError(t, err)
	am1, err := metric.New("validate_drp.AM1", "astrometric repeatability", units.MustParse("mas"))
	require.NoError(t, err)

	s, err := metric.NewSet(pa1, am1)
	require.NoError(t, err)

	return s
}

func mmag(value float64) units.Quantity {
	return units.New(value, units.MustParse("mmag"))
}

func TestNew(t *testing.T) {
	metrics := testMetrics(t)

	m, err := New(metrics, "validate_drp.PA1", mmag(7.5))
	require.NoError(t, err)

	assert.NotEmpty(t, m.Identifier())
	assert.Equal(t, "validate_drp.PA1", m.Metric().Name().String())
	assert.Equal(t, 7.5, m.Value().Value)
	assert.Equal(t, "validate_drp.PA1: 7.5 mmag", m.String())

	t.Run("identifiers are unique", func(t *testing.T) {
		other, err := New(metrics, "validate_drp.PA1", mmag(7.5))
		require.NoError(t, err)
		assert.NotEqual(t, m.Identifier(), other.Identifier())
	})

	t.Run("nil metric set", func(t *testing.T) {
		_, err := New(nil, "validate_drp.PA1", mmag(7.5))
		require.ErrorIs(t, err, errs.ErrMissingMetricSet)
	})

	t.Run("unknown metric", func(t *testing.T) {
		_, err := New(metrics, "validate_drp.PA9", mmag(7.5))
		require.ErrorIs(t, err, errs.ErrMetricNotFound)
	})

	t.Run("convertible unit accepted", func(t *testing.T) {
		m, err := New(metrics, "validate_drp.PA1", units.New(0.0075, units.MustParse("mag")))
		require.NoError(t, err)
		assert.Equal(t, "mag", m.Value().Unit.String())
	})

	t.Run("incompatible unit rejected", func(t *testing.T) {
		_, err := New(metrics, "validate_drp.PA1", units.New(5, units.MustParse("mas")))
		require.ErrorIs(t, err, errs.ErrUnitMismatch)
	})
}

func TestNewOfMetricNil(t *testing.T) {
	_, err := NewOfMetric(nil, mmag(1))
	require.ErrorIs(t, err, errs.ErrNilMetric)
}

func TestParametersAndExtras(t *testing.T) {
	metrics := testMetrics(t)
	width := datum.NewQuantity(units.New(5, units.MustParse("arcmin")), "D", "annulus width")
	rms := datum.NewQuantity(units.New(3, units.MustParse("mas")), "rms", "")

	m, err := New(metrics, "validate_drp.AM1", units.New(4, units.MustParse("mas")),
		WithParameter("D", width),
		WithExtra("rms", rms))
	require.NoError(t, err)

	got, err := m.Parameter("D")
	require.NoError(t, err)
	assert.Same(t, width, got)
	assert.Equal(t, []string{"D"}, m.ParameterKeys())

	got, err = m.Extra("rms")
	require.NoError(t, err)
	assert.Same(t, rms, got)
	assert.Equal(t, []string{"rms"}, m.ExtraKeys())

	t.Run("missing", func(t *testing.T) {
		_, err := m.Parameter("absent")
		require.ErrorIs(t, err, errs.ErrDatumNotFound)
		_, err = m.Extra("absent")
		require.ErrorIs(t, err, errs.ErrDatumNotFound)
	})

	t.Run("nil rejected", func(t *testing.T) {
		require.ErrorIs(t, m.SetParameter("bad", nil), errs.ErrNilDatum)
		require.ErrorIs(t, m.SetExtra("bad", nil), errs.ErrNilDatum)
	})
}

func TestBlobLinks(t *testing.T) {
	metrics := testMetrics(t)
	evidence := blob.New("matched_pairs")

	m, err := New(metrics, "validate_drp.PA1", mmag(7), WithBlob(evidence))
	require.NoError(t, err)

	got, err := m.Blob("matched_pairs")
	require.NoError(t, err)
	assert.Same(t, evidence, got)
	assert.Len(t, m.Blobs(), 1)
	assert.Empty(t, m.Unresolved())

	t.Run("missing link", func(t *testing.T) {
		_, err := m.Blob("absent")
		require.ErrorIs(t, err, errs.ErrBlobNotFound)
	})

	t.Run("nil rejected", func(t *testing.T) {
		require.ErrorIs(t, m.LinkBlob(nil), errs.ErrNilBlob)
	})
}

func TestTags(t *testing.T) {
	metrics := testMetrics(t)

	m, err := New(metrics, "validate_drp.PA1", mmag(7),
		WithSpecName("design_gri"),
		WithFilterName("r"))
	require.NoError(t, err)

	assert.Equal(t, "design_gri", m.SpecName())
	assert.Equal(t, "r", m.FilterName())
}

func TestCheckSpec(t *testing.T) {
	metrics := testMetrics(t)
	m, err := New(metrics, "validate_drp.PA1", mmag(7))
	require.NoError(t, err)

	design, err := spec.NewThreshold("validate_drp.PA1.design_gri", spec.OpLessEqual, mmag(10))
	require.NoError(t, err)
	minimum, err := spec.NewThreshold("validate_drp.PA1.minimum_gri", spec.OpLessEqual, mmag(5))
	require.NoError(t, err)
	specs := spec.NewSet(design, minimum)

	ok, err := m.CheckSpec(specs, "validate_drp.PA1.design_gri")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.CheckSpec(specs, "validate_drp.PA1.minimum_gri")
	require.NoError(t, err)
	assert.False(t, ok)

	t.Run("missing spec", func(t *testing.T) {
		_, err := m.CheckSpec(specs, "validate_drp.PA1.stretch_gri")
		require.ErrorIs(t, err, errs.ErrSpecNotFound)
	})

	t.Run("nil spec set", func(t *testing.T) {
		_, err := m.CheckSpec(nil, "validate_drp.PA1.design_gri")
		require.ErrorIs(t, err, errs.ErrSpecNotFound)
	})
}

func TestMeasurementSet(t *testing.T) {
	metrics := testMetrics(t)

	s, err := NewSet("run42", map[string]units.Quantity{
		"validate_drp.PA1": mmag(7.5),
		"validate_drp.AM1": units.New(4, units.MustParse("mas")),
	}, metrics)
	require.NoError(t, err)

	assert.Equal(t, "run42", s.Name())
	assert.Equal(t, 2, s.Len())

	m, err := s.ByName("validate_drp.PA1")
	require.NoError(t, err)
	assert.Equal(t, 7.5, m.Value().Value)

	t.Run("missing measurement", func(t *testing.T) {
		_, err := s.ByName("validate_drp.PA9")
		require.ErrorIs(t, err, errs.ErrMeasurementNotFound)
	})

	t.Run("nil metric set", func(t *testing.T) {
		_, err := NewSet("run42", nil, nil)
		require.ErrorIs(t, err, errs.ErrMissingMetricSet)
	})

	t.Run("unknown metric fails construction", func(t *testing.T) {
		_, err := NewSet("run42", map[string]units.Quantity{"validate_drp.PA9": mmag(1)}, metrics)
		require.ErrorIs(t, err, errs.ErrMetricNotFound)
	})

	t.Run("string renders sorted lines", func(t *testing.T) {
		want := "run42: {\n" +
			"validate_drp.AM1: 4 mas,\n" +
			"validate_drp.PA1: 7.5 mmag,\n" +
			"}"
		assert.Equal(t, want, s.String())
	})
}
