package evaluate_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/abdidvp/preflight/internal/domain"
	"github.com/abdidvp/preflight/internal/domain/evaluate"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeProber answers from a fixed table; unknown paths are absent.
type fakeProber struct {
	entries map[string]domain.EntryKind
	errs    map[string]error
	panics  map[string]bool
	calls   atomic.Int64
}

func (p *fakeProber) Probe(target string) (domain.EntryKind, error) {
	p.calls.Add(1)
	if p.panics[target] {
		panic("probe exploded")
	}
	if err, ok := p.errs[target]; ok {
		return domain.EntryAbsent, err
	}
	if k, ok := p.entries[target]; ok {
		return k, nil
	}
	return domain.EntryAbsent, nil
}

func testManifest() *domain.Manifest {
	return &domain.Manifest{
		Dependencies:    domain.DependencyTable{Entries: map[string]string{"react": "^18.2.0"}},
		DevDependencies: domain.DependencyTable{Entries: map[string]string{"vite": "^5.0.8"}},
	}
}

func rule(kind domain.RuleKind, target string) domain.Rule {
	r := domain.Rule{Kind: kind, Target: target, Label: target}
	if kind == domain.KindManifestKeyPresent {
		r.Scope = domain.ScopeRuntime
	}
	return r
}

func TestEvaluate_FileExists(t *testing.T) {
	ev := evaluate.New(&fakeProber{entries: map[string]domain.EntryKind{"package.json": domain.EntryFile}}, testManifest())

	res := ev.Evaluate(rule(domain.KindFileExists, "package.json"))
	assert.True(t, res.Satisfied)
	assert.Empty(t, res.Detail)
	assert.Equal(t, domain.FaultNone, res.Fault)
}

func TestEvaluate_MissingFile(t *testing.T) {
	ev := evaluate.New(&fakeProber{}, testManifest())

	res := ev.Evaluate(rule(domain.KindFileExists, "index.html"))
	assert.False(t, res.Satisfied)
	assert.Equal(t, domain.FaultMissingTarget, res.Fault)
	assert.Equal(t, "not found", res.Detail)
}

func TestEvaluate_FileWhereDirExpected(t *testing.T) {
	ev := evaluate.New(&fakeProber{entries: map[string]domain.EntryKind{"src/pages": domain.EntryFile}}, testManifest())

	res := ev.Evaluate(rule(domain.KindDirExists, "src/pages"))
	assert.False(t, res.Satisfied)
	assert.Equal(t, domain.FaultKindMismatch, res.Fault)
	assert.Equal(t, "expected directory, found file", res.Detail)
}

func TestEvaluate_DirWhereFileExpected(t *testing.T) {
	ev := evaluate.New(&fakeProber{entries: map[string]domain.EntryKind{"README.md": domain.EntryDir}}, testManifest())

	res := ev.Evaluate(rule(domain.KindFileExists, "README.md"))
	assert.False(t, res.Satisfied)
	assert.Equal(t, domain.FaultKindMismatch, res.Fault)
	assert.Equal(t, "expected file, found directory", res.Detail)
}

func TestEvaluate_ProbeErrorBecomesIOFault(t *testing.T) {
	ev := evaluate.New(&fakeProber{errs: map[string]error{
		"secret": fmt.Errorf("probing secret: %w", fs.ErrPermission),
	}}, testManifest())

	res := ev.Evaluate(rule(domain.KindFileExists, "secret"))
	assert.False(t, res.Satisfied)
	assert.Equal(t, domain.FaultIO, res.Fault)
	assert.Contains(t, res.Detail, "permission denied")
}

func TestEvaluate_ProbePanicBecomesIOFault(t *testing.T) {
	ev := evaluate.New(&fakeProber{panics: map[string]bool{"boom": true}}, testManifest())

	res := ev.Evaluate(rule(domain.KindDirExists, "boom"))
	assert.False(t, res.Satisfied)
	assert.Equal(t, domain.FaultIO, res.Fault)
	assert.Contains(t, res.Detail, "probe exploded")
}

func TestEvaluate_DependencyPresent(t *testing.T) {
	ev := evaluate.New(&fakeProber{}, testManifest())

	res := ev.Evaluate(rule(domain.KindManifestKeyPresent, "react"))
	assert.True(t, res.Satisfied)
	assert.Equal(t, "^18.2.0", res.Detail)
}

func TestEvaluate_DependencyMissingHasEmptyDetail(t *testing.T) {
	ev := evaluate.New(&fakeProber{}, testManifest())

	res := ev.Evaluate(rule(domain.KindManifestKeyPresent, "date-fns"))
	assert.False(t, res.Satisfied)
	assert.Empty(t, res.Detail)
	assert.Equal(t, domain.FaultMissingTarget, res.Fault)
}

func TestEvaluate_DependencyScopeIsRespected(t *testing.T) {
	ev := evaluate.New(&fakeProber{}, testManifest())

	dev := domain.Rule{Kind: domain.KindManifestKeyPresent, Scope: domain.ScopeDev, Target: "vite"}
	assert.True(t, ev.Evaluate(dev).Satisfied)

	runtime := domain.Rule{Kind: domain.KindManifestKeyPresent, Scope: domain.ScopeRuntime, Target: "vite"}
	assert.False(t, ev.Evaluate(runtime).Satisfied)
}

func TestEvaluate_FaultyTableBecomesIOFault(t *testing.T) {
	m := testManifest()
	m.DevDependencies = domain.DependencyTable{Fault: `manifest "devDependencies" is not an object`}
	ev := evaluate.New(&fakeProber{}, m)

	res := ev.Evaluate(domain.Rule{Kind: domain.KindManifestKeyPresent, Scope: domain.ScopeDev, Target: "vite"})
	assert.False(t, res.Satisfied)
	assert.Equal(t, domain.FaultIO, res.Fault)
	assert.Contains(t, res.Detail, "not an object")
}

func TestEvaluate_NoManifest(t *testing.T) {
	ev := evaluate.New(&fakeProber{}, nil)
	res := ev.Evaluate(rule(domain.KindManifestKeyPresent, "react"))
	assert.False(t, res.Satisfied)
	assert.Equal(t, domain.FaultIO, res.Fault)
}

func TestEvaluate_UnknownKind(t *testing.T) {
	ev := evaluate.New(&fakeProber{}, testManifest())
	res := ev.Evaluate(domain.Rule{Kind: "socket", Target: "x"})
	assert.False(t, res.Satisfied)
	assert.Equal(t, domain.FaultIO, res.Fault)
}

func largeRuleSet(t *testing.T) (*domain.RuleSet, *fakeProber) {
	t.Helper()
	prober := &fakeProber{
		entries: map[string]domain.EntryKind{},
		errs:    map[string]error{"cat1/file7": errors.New("input/output error")},
		panics:  map[string]bool{"cat2/file3": true},
	}

	var cats []domain.Category
	for c := 0; c < 5; c++ {
		cat := domain.Category{Name: fmt.Sprintf("cat%d", c)}
		for f := 0; f < 20; f++ {
			target := fmt.Sprintf("cat%d/file%d", c, f)
			if f%3 != 0 {
				prober.entries[target] = domain.EntryFile
			}
			cat.Rules = append(cat.Rules, domain.Rule{Kind: domain.KindFileExists, Target: target})
		}
		cats = append(cats, cat)
	}
	cats = append(cats, domain.Category{Name: "empty"})

	rs, err := domain.NewRuleSet(cats)
	require.NoError(t, err)
	return rs, prober
}

func TestEvaluateAll_OrderMatchesDeclaration(t *testing.T) {
	rs, prober := largeRuleSet(t)
	ev := evaluate.New(prober, testManifest())

	out, err := ev.EvaluateAll(context.Background(), rs, 1)
	require.NoError(t, err)

	require.Len(t, out, 6)
	for i, name := range rs.AllCategories() {
		assert.Equal(t, name, out[i].Category)
		rules := rs.RulesFor(name)
		require.Len(t, out[i].Results, len(rules))
		for j, r := range rules {
			assert.Equal(t, r, out[i].Results[j].Rule)
		}
	}
	assert.Empty(t, out[5].Results)
	assert.EqualValues(t, 100, prober.calls.Load())
}

func TestEvaluateAll_ParallelMatchesSequential(t *testing.T) {
	rs, prober := largeRuleSet(t)
	ev := evaluate.New(prober, testManifest())

	seq, err := ev.EvaluateAll(context.Background(), rs, 1)
	require.NoError(t, err)
	par, err := ev.EvaluateAll(context.Background(), rs, 8)
	require.NoError(t, err)

	if diff := cmp.Diff(seq, par); diff != "" {
		t.Errorf("parallel results differ from sequential (-seq +par):\n%s", diff)
	}
}

func TestEvaluateAll_FailuresDoNotStopSiblings(t *testing.T) {
	rs, prober := largeRuleSet(t)
	ev := evaluate.New(prober, testManifest())

	out, err := ev.EvaluateAll(context.Background(), rs, 4)
	require.NoError(t, err)

	assert.Equal(t, domain.FaultIO, out[1].Results[7].Fault)
	assert.Equal(t, domain.FaultIO, out[2].Results[3].Fault)
	assert.True(t, out[2].Results[4].Satisfied, "rule after a panicking rule is still evaluated")
	assert.EqualValues(t, 100, prober.calls.Load())
}

func TestEvaluateAll_CancelledContext(t *testing.T) {
	rs, prober := largeRuleSet(t)
	ev := evaluate.New(prober, testManifest())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ev.EvaluateAll(ctx, rs, 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.EqualValues(t, 0, prober.calls.Load())
}
