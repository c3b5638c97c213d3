package scraper

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"product-guide-be/internal/dto"
	"product-guide-be/internal/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

const (
	maxBullets      = 12
	minBulletLen    = 7
	maxBulletLen    = 220
	sectionSiblings = 3
)

// bulletKeywords mark list items that describe what the product does
// for hair, as opposed to shipping notes and size charts.
var bulletKeywords = []string{"hold", "finish", "texture", "volume", "frizz", "shine"}

var whitespacePattern = regexp.MustCompile(`\s+`)

type Scraper struct {
	baseURL string
	delay   time.Duration
	logger  logger.ILogger
}

func New(baseURL string, delay time.Duration, logger logger.ILogger) *Scraper {
	return &Scraper{
		baseURL: baseURL,
		delay:   delay,
		logger:  logger,
	}
}

// Run walks every product page from the storefront sitemaps and parses
// it into a catalog record. Pages that fail to load are logged and
// skipped so one broken page cannot sink the crawl.
func (s *Scraper) Run() ([]*dto.ScrapedProduct, error) {
	productURLs, err := FetchProductURLs(s.baseURL)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Scraper", "Product URLs discovered", map[string]interface{}{"count": len(productURLs)})

	parsed, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", s.baseURL, err)
	}
	domain := parsed.Host

	c := colly.NewCollector(
		colly.AllowedDomains(domain),
	)

	// One request at a time with a fixed delay keeps the crawl polite.
	c.Limit(&colly.LimitRule{
		DomainGlob:  domain,
		Parallelism: 1,
		Delay:       s.delay,
	})

	c.UserAgent = fmt.Sprintf("Mozilla/5.0 (compatible; ProductGuideBot/1.0; +%s)", s.baseURL)

	var records []*dto.ScrapedProduct

	c.OnHTML("html", func(e *colly.HTMLElement) {
		record := parseProductPage(e.Request.URL.String(), e.DOM)
		records = append(records, record)
		s.logger.Info("Scraper", "Product scraped", map[string]interface{}{"title": record.Title, "url": record.URL})
	})

	c.OnError(func(r *colly.Response, err error) {
		s.logger.Warn("Scraper", "Failed to fetch page", map[string]interface{}{"url": r.Request.URL.String(), "error": err.Error()})
	})

	for _, u := range productURLs {
		c.Visit(u)
	}
	c.Wait()

	return records, nil
}

// parseProductPage pulls the catalog fields out of one product page.
// Structured data (og: meta, ld+json) is preferred; keyword heuristics
// fill in bullets and sections the theme does not mark up.
func parseProductPage(pageURL string, doc *goquery.Selection) *dto.ScrapedProduct {
	title := textOf(doc.Find("title").First())
	if og := metaContent(doc, "property", "og:title"); og != "" {
		title = og
	}

	desc := metaContent(doc, "name", "description")
	image := metaContent(doc, "property", "og:image")

	ld := productLdJson(doc)
	price := ""
	if offers, ok := ld["offers"].(map[string]interface{}); ok {
		if p, ok := offers["price"].(string); ok {
			price = p
		} else if p, ok := offers["price"].(float64); ok {
			price = fmt.Sprintf("%g", p)
		}
	}
	if ldDesc, ok := ld["description"].(string); ok && ldDesc != "" {
		desc = ldDesc
	}
	if image == "" {
		if ldImage, ok := ld["image"].(string); ok {
			image = ldImage
		}
	}

	bullets := extractBullets(doc)
	howToUse := findSection(doc, []string{"how to use", "how-to", "use", "usage"})
	ingredients := findSection(doc, []string{"ingredients", "what's inside"})
	tags := guessTags(title, desc)

	return &dto.ScrapedProduct{
		Id:          pageURL,
		URL:         pageURL,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(desc),
		Price:       price,
		Image:       image,
		Bullets:     bullets,
		HowToUse:    howToUse,
		Ingredients: ingredients,
		Tags:        tags,
	}
}

func textOf(sel *goquery.Selection) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(sel.Text(), " "))
}

func metaContent(doc *goquery.Selection, attr, value string) string {
	sel := doc.Find(fmt.Sprintf(`meta[%s=%q]`, attr, value))
	if sel.Length() == 0 {
		sel = doc.Find(fmt.Sprintf(`meta[property=%q]`, value))
	}
	if content, ok := sel.First().Attr("content"); ok {
		return strings.TrimSpace(content)
	}
	return ""
}

// productLdJson returns the first ld+json block whose @type is Product.
func productLdJson(doc *goquery.Selection) map[string]interface{} {
	result := map[string]interface{}{}
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true
		}
		if t, ok := data["@type"].(string); ok && strings.EqualFold(t, "product") {
			result = data
			return false
		}
		return true
	})
	return result
}

func extractBullets(doc *goquery.Selection) []string {
	seen := make(map[string]struct{})
	var bullets []string

	doc.Find("li").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		txt := textOf(sel)
		if len(txt) < minBulletLen || len(txt) > maxBulletLen {
			return true
		}
		lower := strings.ToLower(txt)
		matched := false
		for _, k := range bulletKeywords {
			if strings.Contains(lower, k) {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}
		if _, dup := seen[txt]; dup {
			return true
		}
		seen[txt] = struct{}{}
		bullets = append(bullets, txt)
		return len(bullets) < maxBullets
	})

	return bullets
}

// findSection locates a heading containing one of the label words and
// joins the text of the next few content siblings.
func findSection(doc *goquery.Selection, labelWords []string) string {
	section := ""
	doc.Find("h1,h2,h3,h4,h5,h6").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		heading := strings.ToLower(textOf(h))
		matched := false
		for _, w := range labelWords {
			if strings.Contains(heading, w) {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}

		var texts []string
		next := h.Next()
		for i := 0; i < sectionSiblings && next.Length() > 0; i++ {
			switch goquery.NodeName(next) {
			case "p", "ul", "ol", "div":
				if t := textOf(next); t != "" {
					texts = append(texts, t)
				}
			}
			next = next.Next()
		}

		if joined := strings.Join(texts, " "); joined != "" {
			section = joined
			return false
		}
		return true
	})
	return section
}

// guessTags derives coarse category tags from the title and description.
func guessTags(title, desc string) []string {
	var tags []string
	combined := strings.ToLower(title + " " + desc)
	lowerTitle := strings.ToLower(title)

	if strings.Contains(combined, "curl") {
		tags = append(tags, "curly")
	}
	if strings.Contains(lowerTitle, "spray") {
		tags = append(tags, "spray")
	}
	if strings.Contains(lowerTitle, "powder") {
		tags = append(tags, "powder")
	}
	if strings.Contains(lowerTitle, "clay") {
		tags = append(tags, "clay")
	}
	if strings.Contains(lowerTitle, "pomade") || strings.Contains(lowerTitle, "cement") {
		tags = append(tags, "pomade")
	}
	return tags
}
