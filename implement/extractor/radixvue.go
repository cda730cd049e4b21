package extractor

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aiocean/docsync/implement/fetcher"
	"github.com/aiocean/docsync/implement/markdown"
	"github.com/aiocean/docsync/models"
)

const radixTextLimit = 500

// RadixVue reads the component pages of radix-vue.com.
type RadixVue struct {
	siteInfo
}

func NewRadixVue() *RadixVue {
	names := []string{
		"Accordion", "Alert Dialog", "Aspect Ratio", "Avatar", "Checkbox",
		"Collapsible", "Combobox", "Context Menu", "Dialog", "Dropdown Menu",
		"Hover Card", "Label", "Menubar", "Navigation Menu", "Popover",
		"Progress", "Radio Group", "Scroll Area", "Select", "Separator",
		"Slider", "Switch", "Tabs", "Toast", "Toggle", "Toggle Group",
		"Toolbar", "Tooltip",
	}
	targets := make([]models.Target, len(names))
	for i, name := range names {
		targets[i] = models.Target{
			Name: name,
			Path: "/components/" + markdown.Anchor(name) + ".html",
		}
	}

	return &RadixVue{siteInfo{
		name:    "radix-vue",
		baseURL: "https://www.radix-vue.com",
		targets: targets,
		defaults: Defaults{
			Mode:   fetcher.ModeBrowser,
			Settle: 2 * time.Second,
		},
	}}
}

func radixLanguage(code string) string {
	if strings.Contains(code, "<script") {
		return "vue"
	}
	if strings.Contains(code, "import {") && !strings.Contains(code, "<") {
		return "typescript"
	}
	return "vue"
}

type tableKind int

const (
	tableSkip tableKind = iota
	tableProps
	tableEvents
	tableDataAttributes
)

// classifyRadixTable guesses what a table lists from its header cells and
// the heading above it. Untitled tables among the first three are taken as
// props.
func classifyRadixTable(header, title string, index int) tableKind {
	isDataAttr := strings.Contains(header, "data attribute") || strings.Contains(title, "css")
	isEvents := strings.Contains(header, "event") || strings.Contains(title, "event")
	isProps := strings.Contains(header, "attribute") ||
		strings.Contains(header, "prop") ||
		strings.Contains(title, "property") ||
		strings.Contains(title, "props")

	switch {
	case isDataAttr:
		return tableDataAttributes
	case isEvents:
		return tableEvents
	case isProps || index < 3:
		return tableProps
	default:
		return tableSkip
	}
}

func (s *RadixVue) Extract(doc *goquery.Document, target models.Target, url string) *models.ComponentDoc {
	out := models.NewComponentDoc(target.Name, target.Path, url)
	out.Title = strings.TrimSpace(doc.Find("h1").First().Text())

	if desc := markdown.CleanText(firstText(doc, "h1 + p, h1 ~ p"), 0); markdown.RuneLen(desc) > 10 {
		out.Description = markdown.CleanText(desc, radixTextLimit)
	}

	out.Examples = collectExamples(doc, exampleRules{
		blocks:   6,
		minLen:   30,
		maxLen:   3500,
		dedupe:   true,
		language: radixLanguage,
	})

	doc.Find("table").Each(func(index int, table *goquery.Selection) {
		kind := classifyRadixTable(headerText(table), precedingHeading(table), index)
		if kind == tableSkip {
			return
		}

		table.Find("tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
			if i >= 20 {
				return false
			}
			cells := cellTexts(row)
			if len(cells) < 2 {
				return true
			}
			item := apiItem(cells, radixTextLimit)
			switch kind {
			case tableDataAttributes:
				out.API.DataAttributes = append(out.API.DataAttributes, item)
			case tableEvents:
				out.API.Events = append(out.API.Events, item)
			default:
				out.API.Props = append(out.API.Props, item)
			}
			return true
		})
	})

	return out
}

func (s *RadixVue) Guide() models.Guide {
	return models.Guide{
		Title:      "Radix Vue Guide",
		Homepage:   "https://www.radix-vue.com/",
		Framework:  "Radix Vue",
		Package:    "radix-vue",
		Stack:      "Vue 3",
		Highlights: "Accessible UI primitives, headless, fully customizable",
		Install:    "npm install radix-vue",
		Concepts: []string{
			"Full accessibility support (ARIA, keyboard navigation)",
			"No default styles, styling is entirely yours",
			"State and logic exposed through slots and events",
			"Custom root elements through the `as` prop",
		},
		BestPractices: `### Composition

Radix Vue components are meant to be composed:

` + "```vue" + `
<script setup>
import {
  AccordionRoot,
  AccordionItem,
  AccordionHeader,
  AccordionTrigger,
  AccordionContent,
} from 'radix-vue'
</script>

<template>
  <AccordionRoot type="single" default-value="item-1">
    <AccordionItem value="item-1">
      <AccordionHeader>
        <AccordionTrigger>Title</AccordionTrigger>
      </AccordionHeader>
      <AccordionContent>Content</AccordionContent>
    </AccordionItem>
  </AccordionRoot>
</template>
` + "```" + `

### Accessibility

Radix Vue takes care of:
- ARIA attributes
- Keyboard navigation
- Focus management
- Screen reader support

### Styling

Works well with Tailwind CSS or UnoCSS:

` + "```vue" + `
<AccordionTrigger class="flex w-full items-center justify-between py-2 px-4 hover:bg-gray-100">
  <span>Title</span>
  <ChevronDownIcon class="h-4 w-4 transition-transform duration-300" />
</AccordionTrigger>
` + "```" + `

### Notes

1. **Use the full composition** - Accordion needs Root/Item/Header/Trigger/Content
2. **value prop** - identifies items and drives state
3. **as prop** - changes the rendered element, e.g. ` + "`<AccordionTrigger as=\"button\">`" + `
4. **Template refs** - reach the underlying element through ` + "`asChild`" + ` or a template ref`,
		Footer: "*Generated by docsync fetch radix-vue*",
		Layout: models.Layout{
			MaxExamples:       3,
			PropsHeading:      "Props / Attributes",
			MaxProps:          25,
			PropNameWidth:     30,
			PropTypeWidth:     40,
			PropDescWidth:     80,
			CodeSpanTypes:     true,
			EscapeCells:       true,
			CodeSpanNames:     true,
			EventsHeading:     "Events",
			MaxEvents:         15,
			EventNameWidth:    30,
			EventDescWidth:    100,
			MaxDataAttributes: 10,
			DataAttrNameWidth: 30,
			DataAttrDescWidth: 100,
		},
	}
}
