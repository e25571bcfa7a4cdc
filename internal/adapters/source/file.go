package source

import (
	"context"
	"os"

	"monopoly_report/internal/domain"
)

// FileSource reads records from a local properties document.
type FileSource struct {
	path string
}

func NewFile(path string) *FileSource { return &FileSource{path: path} }

func (f *FileSource) LoadRecords(ctx context.Context) ([]domain.PropertyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, domain.SourceError("read "+f.path, err)
	}
	return DecodeRecords(b, FormatFor(f.path))
}
