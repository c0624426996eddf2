package extract

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/henrriusdev/tippscrape/internal/market"
)

const (
	GroupSelector   = ".market-group"
	ArticleSelector = "article.market"
	LegendSelector  = "legend, .market-legend"
	OutcomeSelector = ".outcome"
	LabelSelector   = ".outcome-label"
	OddsSelector    = ".outcome-odds"

	IDPrefix   = "market-id-"
	PartPrefix = "market-part-"
)

// Parse extracts markets from markup in document order.
func Parse(markup string) []market.Market {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		slog.Debug("error parsing HTML", "err", err)
		return nil
	}
	return parseDocument(doc)
}

func parseDocument(doc *goquery.Document) []market.Market {
	var markets []market.Market

	doc.Find(GroupSelector + " " + ArticleSelector).Each(func(_ int, article *goquery.Selection) {
		m, ok := parseArticle(article)
		if !ok {
			return
		}
		markets = append(markets, m)
	})

	return markets
}

func parseArticle(article *goquery.Selection) (market.Market, bool) {
	class := article.AttrOr("class", "")

	m := market.Market{
		MarketID:   classToken(class, IDPrefix),
		MarketPart: classToken(class, PartPrefix),
	}

	if legend := article.Find(LegendSelector).First(); legend.Length() > 0 {
		m.Legend = strings.TrimSpace(legend.Text())
	}

	article.Find(OutcomeSelector).Each(func(_ int, sel *goquery.Selection) {
		outcome, ok := parseOutcome(sel)
		if !ok {
			return
		}
		m.Outcomes = append(m.Outcomes, outcome)
	})

	if len(m.Outcomes) == 0 {
		return market.Market{}, false
	}
	return m, true
}

func parseOutcome(sel *goquery.Selection) (market.Outcome, bool) {
	label := sel.Find(LabelSelector).First()
	odds := sel.Find(OddsSelector).First()
	if label.Length() == 0 || odds.Length() == 0 {
		return market.Outcome{}, false
	}

	outcome := market.Outcome{
		Text: strings.TrimSpace(label.Text()),
		Odds: strings.TrimSpace(odds.Text()),
	}
	if outcome.Text == "" || outcome.Odds == "" {
		return market.Outcome{}, false
	}
	return outcome, true
}

// classToken returns the suffix of the first class starting with prefix,
// or nil when there is none.
func classToken(class, prefix string) *string {
	for _, c := range strings.Fields(class) {
		if suffix, ok := strings.CutPrefix(c, prefix); ok && suffix != "" {
			return &suffix
		}
	}
	return nil
}
