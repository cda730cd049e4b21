package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aiocean/docsync/implement/fetcher"
	"github.com/aiocean/docsync/implement/markdown"
	"github.com/aiocean/docsync/models"
)

// HeadlessUIV1 reads the archived v1 Vue docs on headlessui.com.
type HeadlessUIV1 struct {
	siteInfo
}

func NewHeadlessUIV1() *HeadlessUIV1 {
	return &HeadlessUIV1{siteInfo{
		name:    "headlessui-v1",
		baseURL: "https://headlessui.com",
		targets: []models.Target{
			{Name: "Menu", Path: "/v1/vue/menu"},
			{Name: "Listbox", Path: "/v1/vue/listbox"},
			{Name: "Combobox", Path: "/v1/vue/combobox"},
			{Name: "Switch", Path: "/v1/vue/switch"},
			{Name: "Disclosure", Path: "/v1/vue/disclosure"},
			{Name: "Dialog", Path: "/v1/vue/dialog"},
			{Name: "Popover", Path: "/v1/vue/popover"},
			{Name: "Radio Group", Path: "/v1/vue/radio-group"},
			{Name: "Tabs", Path: "/v1/vue/tabs"},
			{Name: "Transition", Path: "/v1/vue/transition"},
		},
		defaults: Defaults{
			Mode:    fetcher.ModeBrowser,
			WaitFor: "article, main",
		},
	}}
}

func v1Language(code string) string {
	if strings.Contains(code, "template") || strings.Contains(code, "script") {
		return "vue"
	}
	return "typescript"
}

func (s *HeadlessUIV1) Extract(doc *goquery.Document, target models.Target, url string) *models.ComponentDoc {
	out := models.NewComponentDoc(target.Name, target.Path, url)
	out.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("article p, main p").EachWithBreak(func(i int, p *goquery.Selection) bool {
		if i >= 3 {
			return false
		}
		text := markdown.CleanText(p.Text(), 0)
		if markdown.RuneLen(text) > 30 && !strings.HasPrefix(text, "import") {
			out.Description = text
			return false
		}
		return true
	})

	out.Examples = collectExamples(doc, exampleRules{
		blocks:   5,
		minLen:   50,
		maxLen:   3000,
		language: v1Language,
	})

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		header := headerText(table)
		rows := table.Find("tbody tr")

		switch {
		case strings.Contains(header, "prop") || strings.Contains(header, "name"):
			rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
				if i >= 15 {
					return false
				}
				if cells := cellTexts(row); len(cells) >= 2 {
					out.API.Props = append(out.API.Props, apiItem(cells, 0))
				}
				return true
			})
		case strings.Contains(header, "event") || strings.Contains(header, "slot"):
			rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
				if i >= 10 {
					return false
				}
				if cells := cellTexts(row); len(cells) >= 2 {
					out.API.Events = append(out.API.Events, models.APIItem{
						Name:        markdown.CleanText(cells[0], 0),
						Description: markdown.CleanText(cells[1], 0),
					})
				}
				return true
			})
		}
	})

	return out
}

func (s *HeadlessUIV1) Guide() models.Guide {
	return models.Guide{
		Title:      "Headless UI (v1/vue) Guide",
		Homepage:   "https://headlessui.com/v1/vue",
		Framework:  "Headless UI",
		Version:    "v1.x",
		Package:    "@headlessui/vue",
		Stack:      "Vue 3",
		Highlights: "Completely unstyled, accessible, renderless components",
		Install:    "npm install @headlessui/vue",
		BestPractices: `### General principles
1. **Completely unstyled** - Headless UI only provides behaviour; styling is yours
2. **Accessibility** - ARIA attributes, keyboard navigation and focus management are automatic
3. **Renderless pattern** - state and logic come through v-slot
4. **Composable** - components are designed to be combined

### Common combinations
` + "```vue" + `
<!-- Dialog + Transition -->
<TransitionRoot appear :show="isOpen">
  <Dialog @close="isOpen = false">
    <TransitionChild>
      <div class="fixed inset-0 bg-black/30" />
    </TransitionChild>
    <TransitionChild>
      <DialogPanel class="bg-white rounded-lg">
        <!-- content -->
      </DialogPanel>
    </TransitionChild>
  </Dialog>
</TransitionRoot>
` + "```" + `

### Notes
- Requires Vue 3.0+
- Pair it with a CSS framework (Tailwind CSS recommended)
- Animations need the Transition component
- Rendered elements can be changed with the ` + "`as`" + ` prop`,
		Footer: "*Generated by docsync fetch headlessui-v1*",
		Layout: models.Layout{
			MaxExamples:     3,
			ExampleLanguage: "vue",
			PropsHeading:    "Props",
			MaxProps:        20,
			PropTypeWidth:   50,
			PropDescWidth:   100,
			EscapeCells:     true,
			CodeSpanNames:   true,
			EventsHeading:   "Events / Slots",
			MaxEvents:       10,
			EventDescWidth:  100,
		},
	}
}
