package entity

// PageMetadata is the pass-1 summary of one page. It never carries page
// text, so scoring an arbitrarily large document stays memory-bounded.
type PageMetadata struct {
	PageNumber    int     `json:"page_number"` // 1-based
	Score         float64 `json:"score"`
	HasTableShape bool    `json:"has_table_shape"`
	SectionTitle  string  `json:"section_title,omitempty"`
}

// PageContent is a materialized page, held only for the lifetime of one
// extraction run (pass 2).
type PageContent struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
}

// DocumentHint is a detected document-level convention (addressing offset,
// byte order, word order) with a short excerpt of surrounding text.
type DocumentHint struct {
	Kind    string `json:"kind"`
	Context string `json:"context"`
}
