// Package meteomu scrapes the published sunrise/sunset and moonrise/moonset
// tables from the Mauritius Meteorological Services website.
package meteomu

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

const (
	DefaultSunURL  = "http://metservice.intnet.mu/sun-moon-and-tides-sunrise-sunset-mauritius.php"
	DefaultMoonURL = "http://metservice.intnet.mu/sun-moon-and-tides-moonrise-moonset-mauritius.php"
)

var clockPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// layout describes where one month's rise and set live within a data row.
// Each month occupies width cells after the date cell.
type layout struct {
	width int
	rise  int // offset of the rise cell within a month group
	set   int // offset of the set cell; equal to rise when both share one cell
}

var (
	// DATE | RISE | SET | RISE | SET
	sunLayout = layout{width: 2, rise: 0, set: 1}
	// DATE | PHASE | RISE SET | PHASE | RISE SET
	moonLayout = layout{width: 2, rise: 1, set: 1}
)

// Client fetches and parses the rise/set tables
type Client struct {
	sunURL     string
	moonURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new scraper client
func NewClient() *Client {
	return &Client{
		sunURL:  DefaultSunURL,
		moonURL: DefaultMoonURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		userAgent: "Mozilla/5.0 (compatible; AnglerTerminal/1.0)",
	}
}

// SetURLs overrides the table pages
func (c *Client) SetURLs(sunURL, moonURL string) {
	c.sunURL = sunURL
	c.moonURL = moonURL
}

// SetTimeout bounds each page request
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// FetchSunTable retrieves the sunrise/sunset table
func (c *Client) FetchSunTable(ctx context.Context) (models.RiseSetTable, error) {
	return c.fetch(ctx, c.sunURL, sunLayout)
}

// FetchMoonTable retrieves the moonrise/moonset table
func (c *Client) FetchMoonTable(ctx context.Context) (models.RiseSetTable, error) {
	return c.fetch(ctx, c.moonURL, moonLayout)
}

func (c *Client) fetch(ctx context.Context, pageURL string, l layout) (models.RiseSetTable, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	return parseTable(resp.Body, l)
}

// ParseSunTable parses a sunrise/sunset page
func ParseSunTable(r io.Reader) (models.RiseSetTable, error) {
	return parseTable(r, sunLayout)
}

// ParseMoonTable parses a moonrise/moonset page
func ParseMoonTable(r io.Reader) (models.RiseSetTable, error) {
	return parseTable(r, moonLayout)
}

func parseTable(r io.Reader, l layout) (models.RiseSetTable, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	table := findFirst(doc, "table")
	if table == nil {
		return nil, fmt.Errorf("no table found on page")
	}

	var months []monthHeader
	out := models.RiseSetTable{}
	for _, row := range findAll(table, "tr") {
		cells := rowCells(row)
		if len(cells) == 0 {
			continue
		}

		if months == nil {
			m, err := monthsIn(cells)
			if err != nil {
				return nil, err
			}
			if len(m) > 0 {
				months = m
			}
			continue
		}

		day, err := strconv.Atoi(strings.TrimSpace(cells[0]))
		if err != nil || day < 1 || day > 31 {
			continue // Skip label rows
		}

		for i, h := range months {
			base := 1 + i*l.width
			if base+l.width > len(cells) {
				break
			}
			rs := l.parse(cells[base : base+l.width])
			if rs.Rise == nil && rs.Set == nil {
				continue
			}
			out.Add(models.CalendarDay{Year: h.year, Month: h.month, Day: day}, rs)
		}
	}

	if months == nil {
		return nil, fmt.Errorf("no month header found in table")
	}
	return out, nil
}

// parse reads one month group. A "-" means no event that day.
func (l layout) parse(group []string) models.RiseSet {
	if l.rise == l.set {
		fields := strings.Fields(group[l.rise])
		var rs models.RiseSet
		if len(fields) > 0 {
			rs.Rise = parseClock(fields[0])
		}
		if len(fields) > 1 {
			rs.Set = parseClock(fields[1])
		}
		return rs
	}
	return models.RiseSet{
		Rise: parseClock(group[l.rise]),
		Set:  parseClock(group[l.set]),
	}
}

func parseClock(s string) *models.ClockTime {
	s = strings.TrimSpace(s)
	if !clockPattern.MatchString(s) {
		return nil
	}
	c, err := models.ParseClockTime(s)
	if err != nil {
		return nil
	}
	return &c
}

type monthHeader struct {
	year  int
	month time.Month
}

// monthsIn returns the "April 2024" style headings found in a row, in order.
// A heading without a year continues from the previous one, rolling over
// after December.
func monthsIn(cells []string) ([]monthHeader, error) {
	var months []monthHeader
	for _, cell := range cells {
		fields := strings.Fields(cell)
		if len(fields) == 0 {
			continue
		}
		m, ok := monthByName(fields[0])
		if !ok {
			continue
		}

		h := monthHeader{month: m}
		if len(fields) > 1 {
			if y, err := strconv.Atoi(fields[1]); err == nil && y >= 1900 && y <= 2200 {
				h.year = y
			}
		}
		if h.year == 0 {
			if len(months) == 0 {
				return nil, fmt.Errorf("month header %q has no year", cell)
			}
			prev := months[len(months)-1]
			h.year = prev.year
			if m <= prev.month {
				h.year++
			}
		}
		months = append(months, h)
	}
	return months, nil
}

func monthByName(name string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	return 0, false
}

// rowCells returns the text of each td/th in a row; <br> separated lines are joined by newlines
func rowCells(row *html.Node) []string {
	var cells []string
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, strings.TrimSpace(textOf(c)))
		}
	}
	return cells
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			b.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}
