package domain

import "context"

// RecordSource supplies the ordered property records for one report pass.
type RecordSource interface {
	LoadRecords(ctx context.Context) ([]PropertyRecord, error)
}

type RecordRepository interface {
	// Write path; position keeps the source order.
	UpsertRecord(ctx context.Context, position int, p PropertyRecord) error
	// DeleteFrom removes every record at position >= from.
	DeleteFrom(ctx context.Context, from int) (int64, error)

	// Read path
	LoadRecords(ctx context.Context) ([]PropertyRecord, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// NarrativeSink receives one plain-text block per record, in source order.
type NarrativeSink interface {
	Emit(block string) error
}

type NodeKind int

const (
	KindContainer NodeKind = iota
	// KindProperty is the container holding one record's statements.
	KindProperty
	KindHeading
	KindSubheading
	KindParagraph
	KindList
	KindListItem
)

// NodeHandle identifies a node created by a Display.
type NodeHandle int

// Display is the document tree the structured report is attached to.
type Display interface {
	Root() NodeHandle
	CreateSection(kind NodeKind, text string) NodeHandle
	AppendChild(parent, child NodeHandle)
}

// Page is a Display that can serialise itself as a complete HTML page.
type Page interface {
	Display
	HTML() (string, error)
}

// Summary describes one report pass.
type Summary struct {
	Total    int
	Rendered int
	Skipped  []FieldError
}

// ReportView is a rendered report as served over HTTP and cached.
type ReportView struct {
	Key       string
	Narrative string
	HTML      string
	Summary   Summary

	// Cached is set when the view came from the cache rather than a render.
	Cached bool `json:"-"`
}
