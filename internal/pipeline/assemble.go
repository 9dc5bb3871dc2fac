package pipeline

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/modbus-extractor/internal/entity"
	"github.com/joseph-ayodele/modbus-extractor/internal/scoring"
)

// Only the leading hints make the context; a manual never states more
// than a handful of conventions, and anything past that is a false match.
const maxContextHints = 5

// AssembleContext builds the document text sent with one extraction call.
// The hints block comes first, then pages strictly by descending relevance
// score, each under a header that carries the section title when one was
// detected. Everything counts against the character budget, checked before
// each append; a page that would overflow it is skipped rather than
// truncated mid-table, because a half-row teaches the model to hallucinate
// the other half.
func AssembleContext(pages []entity.PageContent, meta []entity.PageMetadata, hints []entity.DocumentHint, charBudget int) string {
	metaByPage := make(map[int]entity.PageMetadata, len(meta))
	for _, m := range meta {
		metaByPage[m.PageNumber] = m
	}

	var sb strings.Builder
	if block := hintsBlock(hints); block != "" {
		if charBudget <= 0 || len(block) <= charBudget {
			sb.WriteString(block)
		}
	}

	appendPage := func(p entity.PageContent) {
		header := pageHeader(p.PageNumber, metaByPage[p.PageNumber].SectionTitle)
		if charBudget > 0 && sb.Len()+len(header)+len(p.Text)+2 > charBudget {
			return
		}
		sb.WriteString(header)
		sb.WriteString(p.Text)
		sb.WriteString("\n\n")
	}
	for _, p := range rankPagesByScore(pages, metaByPage) {
		appendPage(p)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// rankPagesByScore orders materialized pages by descending relevance
// score. Pages without pass-1 metadata score zero; the sort is stable, so
// they keep document order at the tail.
func rankPagesByScore(pages []entity.PageContent, metaByPage map[int]entity.PageMetadata) []entity.PageContent {
	metas := make([]entity.PageMetadata, 0, len(pages))
	byPage := make(map[int]entity.PageContent, len(pages))
	for _, p := range pages {
		m, ok := metaByPage[p.PageNumber]
		if !ok {
			m = entity.PageMetadata{PageNumber: p.PageNumber}
		}
		metas = append(metas, m)
		byPage[p.PageNumber] = p
	}

	out := make([]entity.PageContent, 0, len(pages))
	for _, m := range scoring.RankPages(metas) {
		out = append(out, byPage[m.PageNumber])
	}
	return out
}

func hintsBlock(hints []entity.DocumentHint) string {
	if len(hints) == 0 {
		return ""
	}
	if len(hints) > maxContextHints {
		hints = hints[:maxContextHints]
	}
	var sb strings.Builder
	sb.WriteString("Document addressing conventions found in the manual:\n")
	for _, h := range hints {
		fmt.Fprintf(&sb, "- [%s] %s\n", h.Kind, h.Context)
	}
	sb.WriteString("\n")
	return sb.String()
}

func pageHeader(pageNum int, sectionTitle string) string {
	if sectionTitle != "" {
		return fmt.Sprintf("--- Page %d (%s) ---\n", pageNum, sectionTitle)
	}
	return fmt.Sprintf("--- Page %d ---\n", pageNum)
}
