package models

import "time"

// Target is one page to crawl on a documentation site.
type Target struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type CodeExample struct {
	Index    int    `json:"index"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

type APIItem struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type APIListing struct {
	Props          []APIItem `json:"props"`
	Events         []APIItem `json:"events"`
	Slots          []APIItem `json:"slots"`
	DataAttributes []APIItem `json:"data_attributes"`
}

// Count returns the number of entries across every group.
func (a APIListing) Count() int {
	return len(a.Props) + len(a.Events) + len(a.Slots) + len(a.DataAttributes)
}

// ComponentDoc is what gets extracted from one component page.
type ComponentDoc struct {
	Name        string        `json:"name"`
	Path        string        `json:"path"`
	URL         string        `json:"url"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Examples    []CodeExample `json:"examples"`
	API         APIListing    `json:"api"`
}

// NewComponentDoc returns an empty record for a component. It doubles as the
// placeholder written when a page could not be fetched.
func NewComponentDoc(name, path, url string) *ComponentDoc {
	return &ComponentDoc{
		Name:     name,
		Path:     path,
		URL:      url,
		Examples: []CodeExample{},
		API: APIListing{
			Props:          []APIItem{},
			Events:         []APIItem{},
			Slots:          []APIItem{},
			DataAttributes: []APIItem{},
		},
	}
}

// DocPage is an article page converted to Markdown as a whole.
type DocPage struct {
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	SourceURL       string `json:"source_url"`
	ContentMarkdown string `json:"content_markdown"`
}

// Layout bounds how much of each component section ends up in a guide.
// Zero widths mean no truncation.
type Layout struct {
	MaxExamples int `json:"max_examples"`
	// ExampleLanguage overrides the detected fence language when set.
	ExampleLanguage string `json:"example_language"`
	TitleCaseNames  bool   `json:"title_case_names"`
	// LinkBeforeDescription puts the docs link above the description.
	LinkBeforeDescription bool `json:"link_before_description"`

	PropsHeading   string `json:"props_heading"`
	MaxProps       int    `json:"max_props"`
	PropNameWidth  int    `json:"prop_name_width"`
	PropTypeWidth  int    `json:"prop_type_width"`
	PropDescWidth  int    `json:"prop_desc_width"`
	CodeSpanTypes  bool   `json:"code_span_types"`
	EscapeCells    bool   `json:"escape_cells"`
	CodeSpanNames  bool   `json:"code_span_names"`
	EventsHeading  string `json:"events_heading"`
	MaxEvents      int    `json:"max_events"`
	EventNameWidth int    `json:"event_name_width"`
	EventDescWidth int    `json:"event_desc_width"`

	MaxDataAttributes int `json:"max_data_attributes"`
	DataAttrNameWidth int `json:"data_attr_name_width"`
	DataAttrDescWidth int `json:"data_attr_desc_width"`
}

// Guide holds the static text around the generated component sections.
type Guide struct {
	Title         string   `json:"title"`
	Homepage      string   `json:"homepage"`
	Framework     string   `json:"framework"`
	Version       string   `json:"version"`
	Package       string   `json:"package"`
	Stack         string   `json:"stack"`
	Highlights    string   `json:"highlights"`
	Install       string   `json:"install"`
	Concepts      []string `json:"concepts"`
	BestPractices string   `json:"best_practices"`
	Footer        string   `json:"footer"`
	Layout        Layout   `json:"layout"`
}

// Report summarises one crawl run.
type Report struct {
	Site           string        `json:"site"`
	Output         string        `json:"output"`
	Total          int           `json:"total"`
	Succeeded      []string      `json:"succeeded"`
	Failed         []string      `json:"failed"`
	Examples       int           `json:"examples"`
	Props          int           `json:"props"`
	Events         int           `json:"events"`
	DataAttributes int           `json:"data_attributes"`
	Bytes          int           `json:"bytes"`
	Duration       time.Duration `json:"duration"`
}

// AddComponent folds the counts of an extracted component into the report.
func (r *Report) AddComponent(doc *ComponentDoc) {
	r.Examples += len(doc.Examples)
	r.Props += len(doc.API.Props)
	r.Events += len(doc.API.Events)
	r.DataAttributes += len(doc.API.DataAttributes)
}
