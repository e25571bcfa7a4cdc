package app_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"monopoly_report/internal/domain"
)

// ---- fixtures ----

func ptr[T any](v T) *T { return &v }

func boardwalk() domain.PropertyRecord {
	return domain.PropertyRecord{
		Name: "Boardwalk", Color: "Dark Blue",
		Rent: ptr(50), BuildCost: ptr(200),
		RentWithHouses: []int{200, 600, 1400, 1700},
		RentWithHotel:  ptr(2000), SiteLocation: ptr(40),
	}
}

func mediterranean() domain.PropertyRecord {
	return domain.PropertyRecord{
		Name: "Mediterranean Avenue", Color: "Brown",
		Rent: ptr(2), BuildCost: ptr(50),
		RentWithHouses: []int{10, 30, 90, 160},
		RentWithHotel:  ptr(250), SiteLocation: ptr(2),
	}
}

// ---- fakes ----

type fakeNode struct {
	kind     domain.NodeKind
	text     string
	children []domain.NodeHandle
}

// fakeDisplay keeps nodes in a slice; handle 0 is the root.
type fakeDisplay struct {
	nodes []*fakeNode
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{nodes: []*fakeNode{{kind: domain.KindContainer, text: "ROOT"}}}
}

func (d *fakeDisplay) Root() domain.NodeHandle { return 0 }

func (d *fakeDisplay) CreateSection(kind domain.NodeKind, text string) domain.NodeHandle {
	d.nodes = append(d.nodes, &fakeNode{kind: kind, text: text})
	return domain.NodeHandle(len(d.nodes) - 1)
}

func (d *fakeDisplay) AppendChild(parent, child domain.NodeHandle) {
	d.nodes[parent].children = append(d.nodes[parent].children, child)
}

func (d *fakeDisplay) HTML() (string, error) { return d.outline(0), nil }

var kindNames = map[domain.NodeKind]string{
	domain.KindContainer:  "div",
	domain.KindProperty:   "property",
	domain.KindHeading:    "h1",
	domain.KindSubheading: "h2",
	domain.KindParagraph:  "p",
	domain.KindList:       "ul",
	domain.KindListItem:   "li",
}

// outline renders a subtree one node per line, indented by depth.
func (d *fakeDisplay) outline(h domain.NodeHandle) string {
	var b strings.Builder
	var walk func(h domain.NodeHandle, depth int)
	walk = func(h domain.NodeHandle, depth int) {
		n := d.nodes[h]
		fmt.Fprintf(&b, "%s%s", strings.Repeat("  ", depth), kindNames[n.kind])
		if n.text != "" {
			fmt.Fprintf(&b, " %s", n.text)
		}
		b.WriteByte('\n')
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(h, 0)
	return b.String()
}

type memSink struct{ blocks []string }

func (s *memSink) Emit(block string) error {
	s.blocks = append(s.blocks, block)
	return nil
}

type fakeSource struct {
	mu      sync.Mutex
	records []domain.PropertyRecord
	err     error
	calls   int
}

func (f *fakeSource) LoadRecords(ctx context.Context) ([]domain.PropertyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.records, f.err
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.ReportView:
		*d = v.(domain.ReportView)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

type fakeRepo struct {
	mu     sync.Mutex
	stored map[int]domain.PropertyRecord
	failOn string
	pruned int // -1 until DeleteFrom runs
}

func newFakeRepo() *fakeRepo { return &fakeRepo{pruned: -1} }

func (r *fakeRepo) UpsertRecord(ctx context.Context, position int, p domain.PropertyRecord) error {
	if p.Name == r.failOn {
		return fmt.Errorf("duplicate key")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stored == nil {
		r.stored = map[int]domain.PropertyRecord{}
	}
	r.stored[position] = p
	return nil
}

func (r *fakeRepo) DeleteFrom(ctx context.Context, from int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruned = from
	var n int64
	for pos := range r.stored {
		if pos >= from {
			delete(r.stored, pos)
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) LoadRecords(ctx context.Context) ([]domain.PropertyRecord, error) {
	return nil, nil
}
