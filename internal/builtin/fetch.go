// fetch.go implements the web fetch tool.
//
// Fetches a URL, follows at most one redirect hop by re-fetching the
// Location target, strips markup, and truncates the text. Non-success
// status and network failures surface as descriptive errors.

package builtin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/jpl-au/llmsh/internal/tool"
)

const defaultFetchMaxChars = 10000

var (
	scriptRe     = regexp.MustCompile(`(?is)<script.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style.*?</style>`)
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

func fetchTool(opts Options) tool.Builtin {
	return tool.Builtin{
		Definition: tool.Definition{
			Name:        "web_fetch",
			Description: "Fetch a URL and return its text content with markup removed.",
			Parameters: tool.Object(map[string]tool.Property{
				"url": {Type: "string", Description: "URL to fetch"},
			}, "url"),
		},
		Run: func(ctx context.Context, args map[string]any) (string, error) {
			return fetchURL(ctx, argString(args, "url"), opts.fetchMaxChars(), false)
		},
	}
}

// fetchClient does not follow redirects itself; redirect handling is a
// single explicit re-fetch so exactly one hop is ever taken.
var fetchClient = &http.Client{
	Timeout: 30 * time.Second,
	CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func fetchURL(ctx context.Context, url string, maxChars int, redirected bool) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("invalid URL %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "llmsh")

	resp, err := fetchClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		location := resp.Header.Get("Location")
		if location == "" || redirected {
			return "", fmt.Errorf("fetch %s: too many redirects (status %d)", url, resp.StatusCode)
		}
		return fetchURL(ctx, location, maxChars, true)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}

	text := stripMarkup(string(body))
	if len(text) > maxChars {
		text = text[:maxChars] + "..."
	}
	return text, nil
}

// stripMarkup removes script/style blocks and tags, then collapses
// whitespace runs into single spaces.
func stripMarkup(html string) string {
	text := scriptRe.ReplaceAllString(html, " ")
	text = styleRe.ReplaceAllString(text, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
