package render

import (
	"strings"
	"testing"

	"github.com/aiocean/docsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGuide() models.Guide {
	return models.Guide{
		Title:         "Test UI Guide",
		Homepage:      "https://example.com",
		Framework:     "Vue 3",
		Package:       "@test/ui",
		Stack:         "Vue",
		Highlights:    "accessible",
		Install:       "npm install @test/ui",
		BestPractices: "Use v-model.",
		Footer:        "*generated*",
		Layout: models.Layout{
			MaxExamples:    1,
			TitleCaseNames: true,
			PropsHeading:   "Props",
			MaxProps:       2,
			EventsHeading:  "Events",
			MaxEvents:      5,
			CodeSpanNames:  true,
			EscapeCells:    true,
			PropDescWidth:  5,
		},
	}
}

func TestGuide(t *testing.T) {
	doc := models.NewComponentDoc("radio-group", "radio-group", "https://example.com/radio-group")
	doc.Description = "Pick one."
	doc.Examples = []models.CodeExample{
		{Index: 0, Language: "vue", Code: "<RadioGroup />"},
		{Index: 1, Language: "vue", Code: "<Second />"},
	}
	doc.API.Props = []models.APIItem{
		{Name: "modelValue", Type: "string", Description: "a | b value"},
		{Name: "disabled", Type: "boolean"},
		{Name: "name", Type: "string"},
	}
	empty := models.NewComponentDoc("menu", "menu", "https://example.com/menu")

	out, err := Guide(testGuide(), []*models.ComponentDoc{doc, empty})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Test UI Guide\n"))
	assert.NotContains(t, out, "**Version**")
	assert.NotContains(t, out, "## Core Concepts")
	assert.Contains(t, out, "- **Package**: `@test/ui`")
	assert.Contains(t, out, "```bash\nnpm install @test/ui\n```")
	assert.Contains(t, out, "- [Radio Group](#radio-group)\n- [Menu](#menu)\n")
	assert.Contains(t, out, "## Radio Group\n\nPick one.\n\n📖 [Official docs](https://example.com/radio-group)")
	assert.Contains(t, out, "```vue\n<RadioGroup />\n```")
	assert.NotContains(t, out, "<Second />")
	assert.Contains(t, out, "| `modelValue` | string | a \\|  |")
	assert.Contains(t, out, "| `disabled` | boolean |  |")
	assert.NotContains(t, out, "`name`")
	assert.NotContains(t, out, "### Events")
	assert.Contains(t, out, "## Menu\n\n📖")
	assert.True(t, strings.HasSuffix(out, "## Best Practices\n\nUse v-model.\n\n---\n\n*generated*\n"))
}

func TestGuideConcepts(t *testing.T) {
	guide := testGuide()
	guide.Version = "1.7"
	guide.Concepts = []string{"Headless", "Composable"}

	out, err := Guide(guide, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "- **Version**: 1.7\n")
	assert.Contains(t, out, "## Core Concepts\n\n- Headless\n- Composable\n\n## Components")
}

func TestComponentLinkFirst(t *testing.T) {
	layout := models.Layout{LinkBeforeDescription: true, ExampleLanguage: "vue", MaxExamples: 2}
	doc := models.NewComponentDoc("Dialog", "dialog", "https://example.com/dialog")
	doc.Description = "Modal."
	doc.Examples = []models.CodeExample{{Language: "ts", Code: "open()"}}

	out := Component(layout, doc)
	assert.Equal(t, "## Dialog\n\n**Docs**: [https://example.com/dialog](https://example.com/dialog)\n\nModal.\n\n### Examples\n\n```vue\nopen()\n```\n\n", out)
}

func TestComponentEventsAndAttributes(t *testing.T) {
	layout := models.Layout{
		EventsHeading:     "Events / Slots",
		MaxEvents:         1,
		MaxDataAttributes: 5,
		CodeSpanNames:     true,
	}
	doc := models.NewComponentDoc("Tabs", "tabs", "u")
	doc.API.Events = []models.APIItem{{Name: "change", Description: "fires"}, {Name: "close"}}
	doc.API.DataAttributes = []models.APIItem{{Name: "[data-state]", Description: "open | closed"}}

	out := Component(layout, doc)
	assert.Contains(t, out, "### Events / Slots\n\n| Name | Description |\n|------|------|\n| `change` | fires |\n\n")
	assert.NotContains(t, out, "`close`")
	assert.Contains(t, out, "### Data Attributes / CSS Variables\n\n| Attribute | Description |\n|------|------|\n| `[data-state]` | open | closed |\n")
}

func TestComponentColumnWidths(t *testing.T) {
	layout := models.Layout{
		MaxEvents:         5,
		EventNameWidth:    3,
		EventDescWidth:    4,
		MaxDataAttributes: 5,
		DataAttrNameWidth: 6,
		DataAttrDescWidth: 7,
	}
	doc := models.NewComponentDoc("Tabs", "tabs", "u")
	doc.API.Events = []models.APIItem{{Name: "update", Description: "emitted on change"}}
	doc.API.DataAttributes = []models.APIItem{{Name: "[data-orientation]", Description: "vertical or horizontal"}}

	out := Component(layout, doc)
	assert.Contains(t, out, "| upd | emit |\n")
	assert.Contains(t, out, "| [data- | vertica |\n")
}

func TestPage(t *testing.T) {
	page := &models.DocPage{
		Slug:            "hooks",
		Title:           "Hooks",
		SourceURL:       "https://example.com/hooks",
		ContentMarkdown: "\n## Events\n\nBody\n",
	}

	out, err := Page(page)
	require.NoError(t, err)

	id := PageID(page.SourceURL)
	assert.Equal(t, "---\ntitle: Hooks\nsource: https://example.com/hooks\nid: "+id+"\n---\n\n# Hooks\n\n## Events\n\nBody\n", out)
	assert.Equal(t, id, PageID("https://example.com/hooks"))
	assert.NotEqual(t, id, PageID("https://example.com/skills"))
}
