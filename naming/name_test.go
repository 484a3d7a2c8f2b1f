package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verakit/vera/errs"
)

func TestNewFromStrings(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
		pkg    string
		metric string
		spec   string
	}{
		{"package only", []Field{Package("validate_drp")}, "validate_drp", "", ""},
		{"bare metric", []Field{Metric("PA1")}, "", "PA1", ""},
		{"qualified metric via metric slot", []Field{Metric("validate_drp.PA1")}, "validate_drp", "PA1", ""},
		{"qualified metric via package slot", []Field{Package("validate_drp.PA1")}, "validate_drp", "PA1", ""},
		{"bare spec", []Field{Spec("design_gri")}, "", "", "design_gri"},
		{"relative spec", []Field{Spec("PA1.design_gri")}, "", "PA1", "design_gri"},
		{"full spec via spec slot", []Field{Spec("validate_drp.PA1.design_gri")}, "validate_drp", "PA1", "design_gri"},
		{"full spec via package slot", []Field{Package("validate_drp.PA1.design_gri")}, "validate_drp", "PA1", "design_gri"},
		{"package plus metric", []Field{Package("validate_drp"), Metric("PA1")}, "validate_drp", "PA1", ""},
		{"package metric spec", []Field{Package("validate_drp"), Metric("PA1"), Spec("design_gri")}, "validate_drp", "PA1", "design_gri"},
		{"overlapping consistent fields", []Field{Metric("validate_drp.PA1"), Spec("PA1.design_gri")}, "validate_drp", "PA1", "design_gri"},
		{"empty strings supply nothing", []Field{Package(""), Metric("PA1"), Spec("")}, "", "PA1", ""},
		{"no fields", nil, "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New(tt.fields...)
			require.NoError(t, err)
			assert.Equal(t, tt.pkg, n.Package())
			assert.Equal(t, tt.metric, n.Metric())
			assert.Equal(t, tt.spec, n.Spec())
		})
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
		want   error
	}{
		{"metric slot overflows", []Field{Metric("a.b.c")}, errs.ErrNameParse},
		{"package slot overflows", []Field{Package("a.b.c.d")}, errs.ErrNameParse},
		{"empty segment", []Field{Metric("a..b")}, errs.ErrNameParse},
		{"leading dot", []Field{Spec(".design")}, errs.ErrNameParse},
		{"trailing dot", []Field{Package("validate_drp.")}, errs.ErrNameParse},
		{"conflicting metrics", []Field{Metric("PA1"), Spec("PA2.design")}, errs.ErrNameConflict},
		{"conflicting packages", []Field{Package("a"), Metric("b.PA1")}, errs.ErrNameConflict},
		{"package and spec without metric", []Field{Package("validate_drp"), Spec("design")}, errs.ErrIncompleteName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.fields...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFieldsFromNames(t *testing.T) {
	full := MustNew(Spec("validate_drp.PA1.design_gri"))

	t.Run("package of", func(t *testing.T) {
		n, err := New(PackageOf(full))
		require.NoError(t, err)
		assert.Equal(t, MustNew(Package("validate_drp")), n)
	})

	t.Run("metric of keeps package", func(t *testing.T) {
		n, err := New(MetricOf(full))
		require.NoError(t, err)
		assert.Equal(t, MustNew(Metric("validate_drp.PA1")), n)
	})

	t.Run("spec of keeps everything", func(t *testing.T) {
		n, err := New(SpecOf(full))
		require.NoError(t, err)
		assert.Equal(t, full, n)
	})

	t.Run("missing component rejected", func(t *testing.T) {
		pkg := MustNew(Package("validate_drp"))
		_, err := New(MetricOf(pkg))
		require.ErrorIs(t, err, errs.ErrWrongNameKind)
		_, err = New(SpecOf(pkg))
		require.ErrorIs(t, err, errs.ErrWrongNameKind)
		_, err = New(PackageOf(MustNew(Metric("PA1"))))
		require.ErrorIs(t, err, errs.ErrWrongNameKind)
	})
}

// The classification truth table over every name shape.
func TestClassification(t *testing.T) {
	tests := []struct {
		give       string
		field      func(string) Field
		hasPkg     bool
		hasMetric  bool
		hasSpec    bool
		hasRel     bool
		isPkg      bool
		isMetric   bool
		isSpec     bool
		isFQ       bool
		isRelative bool
	}{
		{
			give: "validate_drp", field: Package,
			hasPkg: true, isPkg: true, isFQ: true,
		},
		{
			give: "PA1", field: Metric,
			hasMetric: true, isMetric: true,
		},
		{
			give: "validate_drp.PA1", field: Metric,
			hasPkg: true, hasMetric: true, isMetric: true, isFQ: true,
		},
		{
			give: "design_gri", field: Spec,
			hasSpec: true, isSpec: true,
		},
		{
			give: "PA1.design_gri", field: Spec,
			hasMetric: true, hasSpec: true, hasRel: true,
			isSpec: true, isRelative: true,
		},
		{
			give: "validate_drp.PA1.design_gri", field: Spec,
			hasPkg: true, hasMetric: true, hasSpec: true, hasRel: true,
			isSpec: true, isFQ: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			n := MustNew(tt.field(tt.give))
			assert.Equal(t, tt.hasPkg, n.HasPackage(), "HasPackage")
			assert.Equal(t, tt.hasMetric, n.HasMetric(), "HasMetric")
			assert.Equal(t, tt.hasSpec, n.HasSpec(), "HasSpec")
			assert.Equal(t, tt.hasRel, n.HasRelative(), "HasRelative")
			assert.Equal(t, tt.isPkg, n.IsPackage(), "IsPackage")
			assert.Equal(t, tt.isMetric, n.IsMetric(), "IsMetric")
			assert.Equal(t, tt.isSpec, n.IsSpec(), "IsSpec")
			assert.Equal(t, tt.isFQ, n.IsFullyQualified(), "IsFullyQualified")
			assert.Equal(t, tt.isRelative, n.IsRelative(), "IsRelative")
			assert.False(t, n.IsZero())
		})
	}

	t.Run("zero name", func(t *testing.T) {
		var n Name
		assert.True(t, n.IsZero())
		assert.False(t, n.IsPackage())
		assert.False(t, n.IsMetric())
		assert.False(t, n.IsSpec())
		assert.False(t, n.IsFullyQualified())
	})
}

func TestString(t *testing.T) {
	tests := []struct {
		field Field
		want  string
	}{
		{Package("validate_drp"), "validate_drp"},
		{Metric("PA1"), "PA1"},
		{Metric("validate_drp.PA1"), "validate_drp.PA1"},
		{Spec("design_gri"), "design_gri"},
		{Spec("PA1.design_gri"), "PA1.design_gri"},
		{Spec("validate_drp.PA1.design_gri"), "validate_drp.PA1.design_gri"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, MustNew(tt.field).String())
		})
	}
}

func TestFQN(t *testing.T) {
	t.Run("fully qualified forms", func(t *testing.T) {
		for _, give := range []string{"validate_drp", "validate_drp.PA1", "validate_drp.PA1.design_gri"} {
			fqn, err := MustNew(Package(give)).FQN()
			require.NoError(t, err)
			assert.Equal(t, give, fqn)
		}
	})

	t.Run("partial forms rejected", func(t *testing.T) {
		for _, f := range []Field{Metric("PA1"), Spec("design_gri"), Spec("PA1.design_gri")} {
			_, err := MustNew(f).FQN()
			require.ErrorIs(t, err, errs.ErrNotFullyQualified)
		}
	})
}

func TestRelativeName(t *testing.T) {
	t.Run("metric-qualified specs", func(t *testing.T) {
		for _, give := range []string{"PA1.design_gri", "validate_drp.PA1.design_gri"} {
			rel, err := MustNew(Spec(give)).RelativeName()
			require.NoError(t, err)
			assert.Equal(t, "PA1.design_gri", rel)
		}
	})

	t.Run("everything else rejected", func(t *testing.T) {
		for _, f := range []Field{Package("validate_drp"), Metric("validate_drp.PA1"), Spec("design_gri")} {
			_, err := MustNew(f).RelativeName()
			require.ErrorIs(t, err, errs.ErrNotRelative)
		}
	})
}

func TestContains(t *testing.T) {
	pkg := MustNew(Package("validate_drp"))
	otherPkg := MustNew(Package("validate_base"))
	bareMetric := MustNew(Metric("PA1"))
	fqMetric := MustNew(Metric("validate_drp.PA1"))
	otherMetric := MustNew(Metric("validate_drp.PA2"))
	bareSpec := MustNew(Spec("design_gri"))
	relSpec := MustNew(Spec("PA1.design_gri"))
	fqSpec := MustNew(Spec("validate_drp.PA1.design_gri"))
	otherPkgSpec := MustNew(Spec("validate_base.PA1.design_gri"))

	tests := []struct {
		name   string
		outer  Name
		inner  Name
		expect bool
	}{
		{"package contains its metric", pkg, fqMetric, true},
		{"package contains its spec", pkg, fqSpec, true},
		{"package does not contain itself", pkg, pkg, false},
		{"package does not contain other package", pkg, otherPkg, false},
		{"package does not contain bare metric", pkg, bareMetric, false},
		{"metric contains its spec", fqMetric, fqSpec, true},
		{"metric does not contain same-named spec of another package", fqMetric, otherPkgSpec, false},
		{"bare metric contains relative spec", bareMetric, relSpec, true},
		{"bare metric contains qualified spec", bareMetric, fqSpec, true},
		{"metric does not contain other metric", fqMetric, otherMetric, false},
		{"metric does not contain its package", fqMetric, pkg, false},
		{"spec contains nothing", fqSpec, fqSpec, false},
		{"bare spec contains nothing", bareSpec, relSpec, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.outer.Contains(tt.inner))
		})
	}
}

func TestComparable(t *testing.T) {
	a := MustNew(Spec("validate_drp.PA1.design_gri"))
	b := MustNew(Package("validate_drp"), Metric("PA1"), Spec("design_gri"))
	assert.True(t, a == b)

	m := map[Name]int{a: 1}
	assert.Equal(t, 1, m[b])
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() { MustNew(Metric("a.b.c")) })
}
