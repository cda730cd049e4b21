package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aiocean/docsync/implement/markdown"
	"github.com/aiocean/docsync/models"
)

type exampleRules struct {
	// blocks is how many `pre code` blocks are looked at.
	blocks int
	// minLen is exclusive.
	minLen int
	maxLen int
	// dedupe drops a block whose first 100 runes match an earlier one.
	dedupe   bool
	language func(code string) string
}

func collectExamples(doc *goquery.Document, rules exampleRules) []models.CodeExample {
	examples := []models.CodeExample{}
	seen := map[string]bool{}

	doc.Find("pre code").EachWithBreak(func(i int, block *goquery.Selection) bool {
		if i >= rules.blocks {
			return false
		}
		code := block.Text()
		if markdown.RuneLen(code) <= rules.minLen {
			return true
		}
		if rules.dedupe {
			key := markdown.Truncate(code, 100)
			if seen[key] {
				return true
			}
			seen[key] = true
		}

		lang := ""
		if rules.language != nil {
			lang = rules.language(code)
		}
		examples = append(examples, models.CodeExample{
			Index:    i,
			Language: lang,
			Code:     markdown.Truncate(code, rules.maxLen),
		})
		return true
	})

	return examples
}

// headerText is every header cell of a table, lowercased and joined.
func headerText(table *goquery.Selection) string {
	headers := table.Find("th").Map(func(_ int, th *goquery.Selection) string {
		return strings.TrimSpace(th.Text())
	})
	return strings.ToLower(strings.Join(headers, " "))
}

// precedingHeading is the text of the closest h2-h4 sibling before the
// table, lowercased.
func precedingHeading(table *goquery.Selection) string {
	h := table.PrevAllFiltered("h2, h3, h4").First()
	return strings.ToLower(strings.TrimSpace(h.Text()))
}

func cellTexts(row *goquery.Selection) []string {
	return row.Find("td").Map(func(_ int, td *goquery.Selection) string {
		return td.Text()
	})
}

// apiItem builds an entry from a row of at least two cells.
func apiItem(cells []string, limit int) models.APIItem {
	item := models.APIItem{
		Name: markdown.CleanText(cells[0], limit),
		Type: markdown.CleanText(cells[1], limit),
	}
	if len(cells) > 2 {
		item.Description = markdown.CleanText(cells[2], limit)
	}
	return item
}

func firstText(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}
