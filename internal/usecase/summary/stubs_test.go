package summary_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gianpd/summarizerAI/internal/domain/entity"
	"github.com/gianpd/summarizerAI/internal/extractive"
)

/* ───────── stubs ───────── */

// stubRepo is an in-memory SummaryRepository safe for the background
// goroutines started by CreateFromURL. It stores and returns copies.
type stubRepo struct {
	mu      sync.Mutex
	data    map[int64]*entity.Summary
	nextID  int64
	err     error // forced error for every call
	updates int
}

func newStubRepo() *stubRepo {
	return &stubRepo{data: map[int64]*entity.Summary{}, nextID: 1}
}

func clone(s *entity.Summary) *entity.Summary {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func (r *stubRepo) put(s *entity.Summary) *entity.Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.nextID
	r.nextID++
	r.data[s.ID] = clone(s)
	return s
}

func (r *stubRepo) snapshot(id int64) *entity.Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clone(r.data[id])
}

func (r *stubRepo) Get(_ context.Context, id int64) (*entity.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return clone(r.data[id]), nil
}

func (r *stubRepo) GetByURL(_ context.Context, url string) (*entity.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var latest *entity.Summary
	for _, s := range r.data {
		if s.URL == url && (latest == nil || s.CreatedAt.After(latest.CreatedAt)) {
			latest = s
		}
	}
	return clone(latest), nil
}

func (r *stubRepo) sorted() []*entity.Summary {
	var out []*entity.Summary
	for _, s := range r.data {
		out = append(out, clone(s))
	}
	slices.SortFunc(out, func(a, b *entity.Summary) int { return int(a.ID - b.ID) })
	return out
}

func (r *stubRepo) List(_ context.Context, offset, limit int) ([]*entity.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	all := r.sorted()
	if offset >= len(all) {
		return []*entity.Summary{}, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (r *stubRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.data)), r.err
}

func (r *stubRepo) CountPending(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.data {
		if s.Pending() {
			n++
		}
	}
	return n, r.err
}

func (r *stubRepo) SearchByKeyword(_ context.Context, keyword string) ([]*entity.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*entity.Summary
	kw := strings.ToLower(keyword)
	for _, s := range r.sorted() {
		if strings.Contains(strings.ToLower(s.KeyTop), kw) || strings.Contains(strings.ToLower(s.Keywords), kw) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubRepo) ListPending(_ context.Context, olderThan time.Time, limit int) ([]*entity.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*entity.Summary
	for _, s := range r.sorted() {
		if s.Pending() && s.CreatedAt.Before(olderThan) && len(out) < limit {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubRepo) Create(_ context.Context, s *entity.Summary) error {
	if r.err != nil {
		return r.err
	}
	r.put(s)
	return nil
}

func (r *stubRepo) Update(_ context.Context, s *entity.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.data[s.ID]; !ok {
		return entity.ErrNotFound
	}
	now := time.Now()
	s.UpdatedAt = &now
	r.data[s.ID] = clone(s)
	r.updates++
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.data[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// stubFetcher serves fixed pages by URL.
type stubFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	err   error
	calls int
}

func (f *stubFetcher) FetchContent(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	page, ok := f.pages[url]
	if !ok {
		return "", errors.New("no such page")
	}
	return page, nil
}

type stubAbstractor struct {
	mu     sync.Mutex
	out    string
	err    error
	inputs []string
}

func (a *stubAbstractor) Summarize(_ context.Context, text string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inputs = append(a.inputs, text)
	return a.out, a.err
}

type stubClassifier struct {
	keywords []string
	err      error
	got      string
}

func (c *stubClassifier) Keywords(_ context.Context, text string) ([]string, error) {
	c.got = text
	return c.keywords, c.err
}

// failingExtractor always returns err.
type failingExtractor struct{ err error }

func (f failingExtractor) Run(string, int) (extractive.Outcome, error) {
	return extractive.Outcome{}, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
