package scraper

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

const (
	fetchTimeout      = 10 * time.Second
	maxContentLen     = 1000
	websiteConfidence = 0.8
	maxBodyBytes      = 2 << 20 // 2 MB
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
}

// WebsiteFetcher pulls title and primary content from a generic web page.
type WebsiteFetcher struct {
	client    *http.Client
	sanitizer *bluemonday.Policy
}

func NewWebsiteFetcher() *WebsiteFetcher {
	return &WebsiteFetcher{
		client:    &http.Client{Timeout: fetchTimeout},
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Fetch downloads url and extracts evidence from it. Network and parse
// failures come back as errors; callers treat them as soft.
func (f *WebsiteFetcher) Fetch(ctx context.Context, pageURL string) (*Evidence, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", pageURL, err)
	}

	title, heading, metaDesc, err := parsePage(body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: parse: %w", pageURL, err)
	}
	if title == "" {
		title = heading
	}

	text := truncate(collapseWhitespace(f.sanitizer.Sanitize(string(body))), maxContentLen)

	content := metaDesc
	if content == "" {
		content = text
	}

	ev := newEvidence(SourceWebsite, pageURL, title, content, websiteConfidence)
	// Keywords from the full visible text, not just the meta description.
	ev.Keywords = ExtractKeywords(title + " " + text)
	return &ev, nil
}

// parsePage walks the document once for the title, first h1 and meta
// description.
func parsePage(body []byte) (title, heading, metaDesc string, err error) {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", "", "", err
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if title == "" {
					title = strings.TrimSpace(textContent(n))
				}
			case "h1":
				if heading == "" {
					heading = strings.TrimSpace(textContent(n))
				}
			case "meta":
				var name, content string
				for _, a := range n.Attr {
					switch a.Key {
					case "name":
						name = a.Val
					case "content":
						content = a.Val
					}
				}
				if name == "description" && metaDesc == "" {
					metaDesc = strings.TrimSpace(content)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title, heading, metaDesc, nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate caps s at max bytes without splitting a multi-byte rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
