// Package export mirrors CSV exports into other destinations. The browser
// download is the primary result; mirrors are best effort.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	applog "familyspend/internal/log"
)

// File is a downloaded export.
type File struct {
	Name string
	Data []byte
}

// Rows parses the CSV body.
func (f File) Rows() ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(f.Data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Name, err)
	}
	return rows, nil
}

// Sink receives a copy of every export.
type Sink interface {
	Mirror(ctx context.Context, f File) error
}

// Noop ignores exports.
type Noop struct{}

func (Noop) Mirror(context.Context, File) error { return nil }

// Mirror copies f into sink, logging instead of failing.
func Mirror(ctx context.Context, sink Sink, f File, logger *applog.Logger) {
	if sink == nil {
		return
	}
	if err := sink.Mirror(ctx, f); err != nil {
		logger.WarnContext(ctx, "Export mirror failed",
			applog.FieldComponent, applog.ComponentExport,
			"file", f.Name,
			applog.FieldError, err)
		return
	}
	logger.InfoContext(ctx, "Export mirrored",
		applog.FieldComponent, applog.ComponentExport,
		"file", f.Name,
		"bytes", len(f.Data))
}
