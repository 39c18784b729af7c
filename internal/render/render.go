// Package render turns StatementData into downloadable documents.
package render

import (
	"fmt"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/epimonos/statement-backend/internal/policy"
)

// Media types of the rendered formats
const (
	MediaTypePDF         = "application/pdf"
	MediaTypeSpreadsheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MediaTypeText        = "text/plain; charset=utf-8"
)

// Renderer produces one output format. Implementations hold no mutable state,
// so a single instance may serve concurrent renders.
type Renderer interface {
	Render(data *domain.StatementData, bundle policy.Bundle) ([]byte, error)
	MediaType() string
}

// Document is a rendered statement plus its download metadata
type Document struct {
	Bytes     []byte
	MediaType string
	Filename  string
	Format    domain.Format
}

// Dispatcher selects the renderer for a statement's format
type Dispatcher struct {
	renderers map[domain.Format]Renderer
}

// NewDispatcher registers the document, spreadsheet and text renderers
func NewDispatcher(companyName string, clock Clock) *Dispatcher {
	d := &Dispatcher{renderers: make(map[domain.Format]Renderer)}
	d.Register(domain.FormatPDF, NewDocumentRenderer(companyName, clock))
	d.Register(domain.FormatSpreadsheet, NewSpreadsheetRenderer())
	d.Register(domain.FormatText, NewTextRenderer())
	return d
}

// Register installs or replaces the renderer for a format
func (d *Dispatcher) Register(format domain.Format, r Renderer) {
	d.renderers[format] = r
}

// Dispatch resolves the presentation policy from the lead loan and renders the statement
func (d *Dispatcher) Dispatch(data *domain.StatementData) (*Document, error) {
	r, ok := d.renderers[data.Format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, data.Format)
	}

	var category string
	if lead, ok := data.LeadLoan(); ok {
		category = lead.Category
	}
	bundle := policy.Resolve(category)

	b, err := r.Render(data, bundle)
	if err != nil {
		return nil, fmt.Errorf("render %s statement: %w", data.Format, err)
	}

	return &Document{
		Bytes:     b,
		MediaType: r.MediaType(),
		Filename:  data.Filename(),
		Format:    data.Format,
	}, nil
}
