package scraper

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
)

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc string `xml:"loc"`
}

// Shopify storefronts expose products either in the root sitemap or a
// dedicated products sitemap; both are tried.
var sitemapPaths = []string{"/sitemap.xml", "/sitemap_products_1.xml"}

var locPattern = regexp.MustCompile(`<loc>(.*?)</loc>`)

// FetchProductURLs collects every product page URL the storefront's
// sitemaps list. Unreachable sitemaps are skipped; the result is sorted
// and deduplicated.
func FetchProductURLs(baseURL string) ([]string, error) {
	seen := make(map[string]struct{})

	for _, path := range sitemapPaths {
		body, err := fetchURL(strings.TrimSuffix(baseURL, "/") + path)
		if err != nil {
			continue
		}
		for _, loc := range extractLocs(body) {
			if strings.Contains(loc, "/products/") {
				seen[loc] = struct{}{}
			}
		}
	}

	if len(seen) == 0 {
		return nil, fmt.Errorf("no product URLs found in sitemaps of %s", baseURL)
	}

	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls, nil
}

func fetchURL(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// extractLocs parses <loc> entries, falling back to a regex scan when
// the document is not a well-formed urlset (some CDNs wrap sitemaps).
func extractLocs(body []byte) []string {
	var set urlSet
	if err := xml.Unmarshal(body, &set); err == nil && len(set.URLs) > 0 {
		locs := make([]string, 0, len(set.URLs))
		for _, u := range set.URLs {
			if loc := strings.TrimSpace(u.Loc); loc != "" {
				locs = append(locs, loc)
			}
		}
		return locs
	}

	var locs []string
	for _, m := range locPattern.FindAllSubmatch(body, -1) {
		if loc := strings.TrimSpace(string(m[1])); loc != "" {
			locs = append(locs, loc)
		}
	}
	return locs
}
