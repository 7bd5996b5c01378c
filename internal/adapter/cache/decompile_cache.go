package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"mddocs/internal/domain"
	"mddocs/internal/logger"
	"mddocs/internal/port"
)

// Scope identifies one build of an assembly decompiled by one command.
// Declarations stored under another scope are never returned.
func Scope(assemblyPath, command string) (string, error) {
	f, err := os.Open(assemblyPath)
	if err != nil {
		return "", errors.Wrap(err, "open assembly")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "hash assembly")
	}
	h.Write([]byte{0})
	h.Write([]byte(command))
	return hex.EncodeToString(h.Sum(nil)[:12]), nil
}

// CachedDecompiler memoises successful results of another decompiler in a
// persistent store, so later runs over the same assembly skip the external
// process. Failures are not cached.
type CachedDecompiler struct {
	decompiler port.Decompiler
	store      port.DeclarationStore
	scope      string

	hits   atomic.Int64
	misses atomic.Int64
}

func NewCachedDecompiler(decompiler port.Decompiler, store port.DeclarationStore, scope string) *CachedDecompiler {
	return &CachedDecompiler{
		decompiler: decompiler,
		store:      store,
		scope:      scope,
	}
}

func (d *CachedDecompiler) key(h domain.MemberHandle) string {
	return d.scope + "\x00" + h.Key()
}

func (d *CachedDecompiler) Decompile(ctx context.Context, h domain.MemberHandle) (string, error) {
	key := d.key(h)
	text, hit, err := d.store.Declaration(key)
	if err != nil {
		logger.Logger.Warnw("declaration cache read failed", "member", h.String(), "error", err)
	}
	if hit {
		d.hits.Add(1)
		return text, nil
	}
	d.misses.Add(1)

	text, err = d.decompiler.Decompile(ctx, h)
	if err != nil {
		return "", err
	}

	if err := d.store.PutDeclaration(key, text); err != nil {
		logger.Logger.Warnw("declaration cache write failed", "member", h.String(), "error", err)
	}
	return text, nil
}

// Stats reports cache hits and misses since creation.
func (d *CachedDecompiler) Stats() (hits, misses int64) {
	return d.hits.Load(), d.misses.Load()
}
