package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mddocs/internal/adapter/store"
	"mddocs/internal/domain"
)

type countingDecompiler struct {
	calls atomic.Int32
	fail  bool
}

func (d *countingDecompiler) Decompile(_ context.Context, h domain.MemberHandle) (string, error) {
	d.calls.Add(1)
	if d.fail {
		return "", errors.Mark(errors.New("boom"), domain.ErrDecompiler)
	}
	return "decl " + h.String(), nil
}

type mapStore struct {
	mu sync.Mutex
	m  map[string]string
}

func (s *mapStore) Declaration(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.m[key]
	return text, ok, nil
}

func (s *mapStore) PutDeclaration(key, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[string]string)
	}
	s.m[key] = text
	return nil
}

func (s *mapStore) PruneDeclarations(scope string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.m {
		if !strings.HasPrefix(k, scope) {
			delete(s.m, k)
			n++
		}
	}
	return n, nil
}

func overload(sig string) domain.MemberHandle {
	return domain.MemberHandle{FullName: "Acme.Gauge.Set", Signature: sig}
}

func TestCachedDecompilerPersistsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.db")
	ctx := context.Background()

	st, err := store.NewBoltStore(path)
	require.NoError(t, err)
	inner := &countingDecompiler{}
	d := NewCachedDecompiler(inner, st, "s1")
	text, err := d.Decompile(ctx, overload("(System.Int32)"))
	require.NoError(t, err)
	assert.Equal(t, "decl Acme.Gauge.Set(System.Int32)", text)
	require.NoError(t, st.Close())

	st, err = store.NewBoltStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	inner = &countingDecompiler{}
	d = NewCachedDecompiler(inner, st, "s1")
	text, err = d.Decompile(ctx, overload("(System.Int32)"))
	require.NoError(t, err)
	assert.Equal(t, "decl Acme.Gauge.Set(System.Int32)", text)
	assert.EqualValues(t, 0, inner.calls.Load())

	hits, misses := d.Stats()
	assert.EqualValues(t, 1, hits)
	assert.EqualValues(t, 0, misses)
}

func TestCachedDecompilerOverloads(t *testing.T) {
	inner := &countingDecompiler{}
	d := NewCachedDecompiler(inner, &mapStore{}, "s1")
	ctx := context.Background()

	a, err := d.Decompile(ctx, overload("(System.Int32)"))
	require.NoError(t, err)
	b, err := d.Decompile(ctx, overload("(System.Int32[])"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.EqualValues(t, 2, inner.calls.Load())
}

func TestCachedDecompilerScope(t *testing.T) {
	s := &mapStore{}
	inner := &countingDecompiler{}
	ctx := context.Background()

	_, err := NewCachedDecompiler(inner, s, "s1").Decompile(ctx, overload("()"))
	require.NoError(t, err)
	_, err = NewCachedDecompiler(inner, s, "s2").Decompile(ctx, overload("()"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, inner.calls.Load(), "another build of the assembly is decompiled again")
}

func TestPrune(t *testing.T) {
	s := &mapStore{}
	ctx := context.Background()
	_, err := NewCachedDecompiler(&countingDecompiler{}, s, "s1").Decompile(ctx, overload("()"))
	require.NoError(t, err)
	_, err = NewCachedDecompiler(&countingDecompiler{}, s, "s2").Decompile(ctx, overload("()"))
	require.NoError(t, err)

	n, err := s.PruneDeclarations("s2\x00")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, s.m, 1)
}

func TestCachedDecompilerFailuresNotCached(t *testing.T) {
	failing := &countingDecompiler{fail: true}
	d := NewCachedDecompiler(failing, &mapStore{}, "s1")
	for i := 0; i < 2; i++ {
		_, err := d.Decompile(context.Background(), overload("()"))
		assert.True(t, errors.Is(err, domain.ErrDecompiler))
	}
	assert.EqualValues(t, 2, failing.calls.Load())
}

func TestScope(t *testing.T) {
	dir := t.TempDir()
	dll := filepath.Join(dir, "Acme.dll")
	require.NoError(t, os.WriteFile(dll, []byte("MZ v1"), 0644))

	a, err := Scope(dll, "ilspycmd {assembly}")
	require.NoError(t, err)
	b, err := Scope(dll, "ilspycmd {assembly} --il")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	require.NoError(t, os.WriteFile(dll, []byte("MZ v2"), 0644))
	c, err := Scope(dll, "ilspycmd {assembly}")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = Scope(filepath.Join(dir, "missing.dll"), "x")
	assert.Error(t, err)
}
