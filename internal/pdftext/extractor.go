// Package pdftext extracts per-page plain text from PDF documents.
//
// Two modes keep memory bounded on large manuals: ScorePages walks every
// page, scores it, and discards the text immediately (pass 1);
// ExtractPages materializes only the pages selected for extraction
// (pass 2). ExtractAll exists for the simple non-batched path.
package pdftext

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/modbus-extractor/internal/common"
	"github.com/joseph-ayodele/modbus-extractor/internal/entity"
	"github.com/joseph-ayodele/modbus-extractor/internal/scoring"
)

// Document-convention hints are only probed on the leading pages; vendors
// state addressing conventions up front, and probing every page of a
// 400-page manual buys nothing.
const hintScanPages = 5

// PassOneResult is the outcome of the lightweight scoring pass.
type PassOneResult struct {
	Pages      []entity.PageMetadata
	Hints      []entity.DocumentHint
	TotalPages int
}

// ScorePages runs the score-then-discard pass over every page.
// No page text survives the call; only metadata and hints do.
func ScorePages(ctx context.Context, data []byte) (*PassOneResult, error) {
	r, err := openReader(data)
	if err != nil {
		return nil, err
	}
	total := r.NumPage()
	if total == 0 {
		return nil, common.ErrDocumentEmpty
	}

	res := &PassOneResult{TotalPages: total}
	hintKinds := make(map[string]struct{})
	readable := 0

	for pageNum := 1; pageNum <= total; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := pageText(r, pageNum)
		if text != "" {
			readable++
		}
		res.Pages = append(res.Pages, entity.PageMetadata{
			PageNumber:    pageNum,
			Score:         scoring.Score(text),
			HasTableShape: scoring.HasTableShape(text),
			SectionTitle:  scoring.SectionTitle(text),
		})
		if pageNum <= hintScanPages {
			for _, h := range scoring.DocumentHints(text) {
				if _, dup := hintKinds[h.Kind]; dup {
					continue
				}
				hintKinds[h.Kind] = struct{}{}
				res.Hints = append(res.Hints, h)
			}
		}
	}

	if readable == 0 {
		return nil, common.ErrDocumentEmpty
	}
	return res, nil
}

// ExtractPages materializes the named pages only. Page numbers outside the
// document are ignored rather than treated as errors; selection is advisory.
func ExtractPages(ctx context.Context, data []byte, pageNumbers []int) ([]entity.PageContent, error) {
	r, err := openReader(data)
	if err != nil {
		return nil, err
	}
	total := r.NumPage()

	var out []entity.PageContent
	for _, n := range pageNumbers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if n < 1 || n > total {
			continue
		}
		if text := pageText(r, n); text != "" {
			out = append(out, entity.PageContent{PageNumber: n, Text: text})
		}
	}
	return out, nil
}

// ExtractAll materializes every page. Used only by the simple non-batched
// path; the batched pipeline always goes through ScorePages/ExtractPages.
func ExtractAll(ctx context.Context, data []byte) ([]entity.PageContent, []entity.DocumentHint, error) {
	r, err := openReader(data)
	if err != nil {
		return nil, nil, err
	}
	total := r.NumPage()
	if total == 0 {
		return nil, nil, common.ErrDocumentEmpty
	}

	var pages []entity.PageContent
	var hints []entity.DocumentHint
	hintKinds := make(map[string]struct{})

	for pageNum := 1; pageNum <= total; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		text := pageText(r, pageNum)
		if text == "" {
			continue
		}
		pages = append(pages, entity.PageContent{PageNumber: pageNum, Text: text})
		if pageNum <= hintScanPages {
			for _, h := range scoring.DocumentHints(text) {
				if _, dup := hintKinds[h.Kind]; dup {
					continue
				}
				hintKinds[h.Kind] = struct{}{}
				hints = append(hints, h)
			}
		}
	}
	if len(pages) == 0 {
		return nil, nil, common.ErrDocumentEmpty
	}
	return pages, hints, nil
}

// openReader opens a PDF from raw bytes. The underlying parser panics on
// some malformed cross-reference tables; recover turns that into an error.
func openReader(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			r = nil
			err = common.NewAppError("PDF_PARSE", fmt.Sprintf("malformed document: %v", p), common.ErrDocumentEmpty)
		}
	}()
	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, common.NewAppError("PDF_PARSE", "unreadable document", common.ErrDocumentEmpty)
	}
	return r, nil
}

// pageText extracts one page's text, recovering row structure from
// fragment positions. A page that cannot be decoded yields "".
func pageText(r *pdf.Reader, pageNum int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	p := r.Page(pageNum)
	if p.V.IsNull() {
		return ""
	}
	return reconstructText(p.Content().Text)
}
