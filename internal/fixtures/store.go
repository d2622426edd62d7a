// internal/fixtures/store.go

// Package fixtures loads scenario-keyed response fixtures, validates them
// eagerly and serves them through a TTL-bound cache with hit/miss counters.
package fixtures

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mwiater/ideamock/internal/logging"
	"github.com/mwiater/ideamock/internal/scenario"
	"github.com/mwiater/ideamock/internal/schema"
)

//go:embed data/*.json
var embedded embed.FS

// Embedded returns the built-in fixture set.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

type cacheEntry struct {
	variant    Variant
	insertedAt time.Time
}

// Store serves fixtures for every response type. The zero value is not
// usable; construct one with New.
type Store struct {
	mu         sync.Mutex
	fsys       fs.FS
	ttl        time.Duration
	strict     bool
	production bool
	now        func() time.Time
	intn       func(int) int

	cache  map[string]cacheEntry
	files  map[ResponseType]*File
	hits   int64
	misses int64
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the cache TTL. Zero means entries never expire.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl < 0 {
			ttl = 0
		}
		s.ttl = ttl
	}
}

// WithStrict turns validation failures into load errors.
func WithStrict(strict bool) Option {
	return func(s *Store) { s.strict = strict }
}

// WithProduction skips fixture validation.
func WithProduction(production bool) Option {
	return func(s *Store) { s.production = production }
}

// WithClock replaces time.Now for cache ageing.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRand sets the source used by GetRandomVariant.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) {
		if r != nil {
			s.intn = r.IntN
		}
	}
}

// New builds a Store reading fixture files from fsys. A nil fsys uses the
// embedded fixtures.
func New(fsys fs.FS, opts ...Option) *Store {
	if fsys == nil {
		fsys = Embedded()
	}
	s := &Store{
		fsys:  fsys,
		now:   time.Now,
		intn:  rand.IntN,
		cache: make(map[string]cacheEntry),
		files: make(map[ResponseType]*File),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the configured cache TTL.
func (s *Store) TTL() time.Duration { return s.ttl }

func cacheKey(t ResponseType, sc scenario.TestScenario) string {
	return fmt.Sprintf("%s:%s", t, sc)
}

// GetResponse returns the first variant for (t, sc), served from cache when
// the entry is still valid. Every call counts as a hit or a miss.
func (s *Store) GetResponse(t ResponseType, sc scenario.TestScenario) (Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cacheKey(t, sc)
	if s.isCacheValid(key) {
		s.hits++
		return s.cache[key].variant.Clone(), nil
	}
	s.misses++

	variants, err := s.variantsLocked(t, sc)
	if err != nil {
		return Variant{}, err
	}
	s.cache[key] = cacheEntry{variant: variants[0].Clone(), insertedAt: s.now()}
	return variants[0].Clone(), nil
}

// GetRandomVariant returns a uniformly chosen variant for (t, sc). It
// bypasses the cache and does not touch the hit/miss counters.
func (s *Store) GetRandomVariant(t ResponseType, sc scenario.TestScenario) (Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	variants, err := s.variantsLocked(t, sc)
	if err != nil {
		return Variant{}, err
	}
	return variants[s.intn(len(variants))].Clone(), nil
}

// PeekResponse returns the first variant for (t, sc) without using the
// cache or touching the hit/miss counters.
func (s *Store) PeekResponse(t ResponseType, sc scenario.TestScenario) (Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	variants, err := s.variantsLocked(t, sc)
	if err != nil {
		return Variant{}, err
	}
	return variants[0].Clone(), nil
}

func (s *Store) isCacheValid(key string) bool {
	entry, ok := s.cache[key]
	if !ok {
		return false
	}
	return s.ttl == 0 || s.now().Sub(entry.insertedAt) < s.ttl
}

func (s *Store) variantsLocked(t ResponseType, sc scenario.TestScenario) ([]Variant, error) {
	file, err := s.loadLocked(t)
	if err != nil {
		return nil, err
	}
	variants := file.Scenarios[string(sc)]
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: no %s responses for scenario %q (available scenarios: %s)",
			ErrNotFound, t, sc, strings.Join(availableScenarios(file), ", "))
	}
	return variants, nil
}

func availableScenarios(file *File) []string {
	names := make([]string, 0, len(file.Scenarios))
	for name, variants := range file.Scenarios {
		if len(variants) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (s *Store) loadLocked(t ResponseType) (*File, error) {
	if file, ok := s.files[t]; ok {
		return file, nil
	}
	base, ok := fileBases[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}

	var tried []string
	for _, ext := range fixtureExtensions {
		name := base + ext
		data, err := fs.ReadFile(s.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			tried = append(tried, name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read fixture %s: %w", name, err)
		}
		file, err := s.parse(t, name, data)
		if err != nil {
			return nil, err
		}
		s.files[t] = file
		return file, nil
	}
	return nil, fmt.Errorf("%w: no fixture file for %s (looked for %s)", ErrNotFound, t, strings.Join(tried, ", "))
}

// parse decodes and validates a fixture document. Outside production every
// variant is validated before the file is made available.
func (s *Store) parse(t ResponseType, name string, data []byte) (*File, error) {
	doc, err := decodeDocument(data, filepath.Ext(name))
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", name, err)
	}
	raw, err := rawScenarios(doc)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", name, err)
	}

	if !s.production {
		var problems []string
		for _, sr := range schema.ValidateScenarios(raw, t) {
			for _, vr := range sr.Variants {
				for _, e := range vr.Result.Errors {
					problems = append(problems, fmt.Sprintf("%s[%d] %s", sr.Scenario, vr.Index, e))
				}
				for _, w := range vr.Result.Warnings {
					logging.LogWarn("fixture %s: %s[%d] %s", name, sr.Scenario, vr.Index, w)
				}
			}
		}
		if len(problems) > 0 {
			if s.strict {
				return nil, fmt.Errorf("%w: %s: %s", ErrValidation, name, strings.Join(problems, "; "))
			}
			for _, p := range problems {
				logging.LogWarn("fixture %s: %s", name, p)
			}
		}
	}

	file, err := toFile(t, name, raw, !s.strict)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", name, err)
	}
	return file, nil
}

// LoadCustomFixture replaces the fixtures for the type inferred from the
// file name and drops only that type's cache entries.
func (s *Store) LoadCustomFixture(path string) (ResponseType, error) {
	t, err := InferType(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: custom fixture %s does not exist", ErrNotFound, path)
		}
		return "", fmt.Errorf("read custom fixture %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.parse(t, path, data)
	if err != nil {
		return "", err
	}
	s.files[t] = file
	prefix := string(t) + ":"
	for key := range s.cache {
		if strings.HasPrefix(key, prefix) {
			delete(s.cache, key)
		}
	}
	return t, nil
}

// InvalidateExpiredCache removes entries older than the TTL and returns
// how many were removed. It does nothing when the TTL is zero.
func (s *Store) InvalidateExpiredCache() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl == 0 {
		return 0
	}
	now := s.now()
	removed := 0
	for key, entry := range s.cache {
		if now.Sub(entry.insertedAt) >= s.ttl {
			delete(s.cache, key)
			removed++
		}
	}
	return removed
}

// ClearCache drops cached responses, loaded files and counters.
func (s *Store) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]cacheEntry)
	s.files = make(map[ResponseType]*File)
	s.hits = 0
	s.misses = 0
}

// CacheStats returns the current cache counters.
func (s *Store) CacheStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Entries: len(s.cache), Hits: s.hits, Misses: s.misses}
}

// Scenarios lists the non-empty scenarios available for t.
func (s *Store) Scenarios(t ResponseType) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, err := s.loadLocked(t)
	if err != nil {
		return nil, err
	}
	return availableScenarios(file), nil
}

// File returns a deep copy of the loaded fixture file for t.
func (s *Store) File(t ResponseType) (*File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, err := s.loadLocked(t)
	if err != nil {
		return nil, err
	}
	return file.Clone(), nil
}

// ValidateAll validates every variant of the loaded file for t, including
// variants that were skipped at load time because they did not decode.
func (s *Store) ValidateAll(t ResponseType) ([]schema.ScenarioResult, error) {
	file, err := s.File(t)
	if err != nil {
		return nil, err
	}
	return schema.ValidateScenarios(file.documents(), t), nil
}
