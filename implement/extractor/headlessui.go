package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aiocean/docsync/implement/fetcher"
	"github.com/aiocean/docsync/implement/markdown"
	"github.com/aiocean/docsync/models"
)

// HeadlessUI reads the current Vue docs on headlessui.com. Targets are
// component slugs.
type HeadlessUI struct {
	siteInfo
}

func NewHeadlessUI() *HeadlessUI {
	slugs := []string{
		"dialog", "disclosure", "focus-trap", "listbox", "menu", "popover",
		"radio-group", "switch", "tabs", "transition", "combobox",
	}
	targets := make([]models.Target, len(slugs))
	for i, slug := range slugs {
		targets[i] = models.Target{Name: slug, Path: slug}
	}

	return &HeadlessUI{siteInfo{
		name:    "headlessui",
		baseURL: "https://headlessui.com/vue",
		targets: targets,
		defaults: Defaults{
			Mode:    fetcher.ModeBrowser,
			WaitFor: "article",
		},
	}}
}

func (s *HeadlessUI) Extract(doc *goquery.Document, target models.Target, url string) *models.ComponentDoc {
	out := models.NewComponentDoc(target.Name, target.Path, url)
	out.Title = strings.TrimSpace(doc.Find("title").First().Text())
	out.Description = markdown.CleanText(firstText(doc, "article > div > p"), 0)

	out.Examples = collectExamples(doc, exampleRules{
		blocks: 5,
		minLen: 50,
		maxLen: 2000,
	})

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		header := headerText(table)
		if !strings.Contains(header, "prop") && !strings.Contains(header, "name") {
			return
		}
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return
			}
			cells := cellTexts(row)
			if len(cells) >= 2 {
				out.API.Props = append(out.API.Props, apiItem(cells, 0))
			}
		})
	})

	return out
}

func (s *HeadlessUI) Guide() models.Guide {
	return models.Guide{
		Title:      "Headless UI (Vue) Guide",
		Homepage:   "https://headlessui.com/vue",
		Framework:  "Headless UI",
		Package:    "@headlessui/vue",
		Stack:      "Vue 3",
		Highlights: "Completely unstyled, accessible, Composition API",
		Install:    "npm install @headlessui/vue",
		BestPractices: `### General principles
1. **Completely unstyled** - no component ships default styles; add them with Tailwind CSS or similar
2. **Accessibility** - ARIA attributes and keyboard navigation are handled for you
3. **Renderless pattern** - component state is exposed through v-slot

### Common combinations
` + "```vue" + `
<!-- Dialog + Transition -->
<TransitionRoot appear :show="isOpen">
  <Dialog @close="isOpen = false">
    <TransitionChild>
      <div class="fixed inset-0 bg-black/30" />
    </TransitionChild>
    <TransitionChild>
      <DialogPanel>Content</DialogPanel>
    </TransitionChild>
  </Dialog>
</TransitionRoot>
` + "```" + `

### Notes
- Requires Vue 3.0+
- Pair it with a CSS framework (Tailwind CSS recommended)
- Wrap animated parts in the Transition component`,
		Footer: "*Generated by docsync fetch headlessui*",
		Layout: models.Layout{
			MaxExamples:           2,
			ExampleLanguage:       "vue",
			TitleCaseNames:        true,
			LinkBeforeDescription: true,
			PropsHeading:          "Props",
			MaxProps:              10,
		},
	}
}
