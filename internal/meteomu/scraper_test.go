package meteomu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

func openFixture(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func mustClock(t *testing.T, c *models.ClockTime) string {
	t.Helper()
	require.NotNil(t, c)
	return c.String()
}

func TestParseSunTable(t *testing.T) {
	table, err := ParseSunTable(openFixture(t, "sunrise_sunset.html"))
	require.NoError(t, err)

	require.Len(t, table, 7)
	assert.Equal(t, 3, daysIn(table, 2024, time.April), "empty April 31 row is skipped")
	assert.Equal(t, 4, daysIn(table, 2024, time.May))

	rs, ok := table.Lookup(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "06:23", mustClock(t, rs.Rise))
	assert.Equal(t, "17:43", mustClock(t, rs.Set))

	rs, ok = table.Lookup(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "06:12", mustClock(t, rs.Rise))
	assert.Equal(t, "18:03", mustClock(t, rs.Set))
}

func TestParseSunTable_OtherYearsMiss(t *testing.T) {
	table, err := ParseSunTable(openFixture(t, "sunrise_sunset.html"))
	require.NoError(t, err)

	for _, year := range []int{2000, 2023, 2025, 2031} {
		_, ok := table.Lookup(time.Date(year, 5, 2, 0, 0, 0, 0, time.UTC))
		assert.False(t, ok, "year %d", year)
	}
}

func TestMonthsIn(t *testing.T) {
	tests := []struct {
		name    string
		cells   []string
		want    []monthHeader
		wantErr bool
	}{
		{"with years", []string{"DATE", "April 2024", "May 2024"},
			[]monthHeader{{2024, time.April}, {2024, time.May}}, false},
		{"year carried forward", []string{"Date", "November 2024", "December", "January"},
			[]monthHeader{{2024, time.November}, {2024, time.December}, {2025, time.January}}, false},
		{"no month", []string{"1", "06:00", "18:00"}, nil, false},
		{"first month without year", []string{"Date", "April", "May 2024"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := monthsIn(tt.cells)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMoonTable(t *testing.T) {
	table, err := ParseMoonTable(openFixture(t, "moonrise_moonset.html"))
	require.NoError(t, err)

	rs, ok := table.Lookup(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "00:56", mustClock(t, rs.Rise))
	assert.Equal(t, "13:05", mustClock(t, rs.Set))

	// no moonrise on 2 April
	rs, ok = table.Lookup(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Nil(t, rs.Rise)
	assert.Equal(t, "13:10", mustClock(t, rs.Set))
	assert.False(t, rs.Complete())

	rs, ok = table.Lookup(time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Nil(t, rs.Set)
}

func TestParseTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"no table", "<html><body><p>Service unavailable</p></body></html>"},
		{"no month header", "<table><tr><td>1</td><td>06:00</td><td>18:00</td></tr></table>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSunTable(strings.NewReader(tt.page))
			assert.Error(t, err)
		})
	}
}

func TestClient_FetchTables(t *testing.T) {
	sun, err := os.ReadFile("testdata/sunrise_sunset.html")
	require.NoError(t, err)
	moon, err := os.ReadFile("testdata/moonrise_moonset.html")
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/sun":
			w.Write(sun)
		case "/moon":
			w.Write(moon)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient()
	client.SetURLs(server.URL+"/sun", server.URL+"/moon")

	sunTable, err := client.FetchSunTable(context.Background())
	require.NoError(t, err)
	assert.Contains(t, sunTable, time.May)

	moonTable, err := client.FetchMoonTable(context.Background())
	require.NoError(t, err)
	assert.Contains(t, moonTable, time.April)

	client.SetURLs(server.URL+"/missing", server.URL+"/missing")
	_, err = client.FetchSunTable(context.Background())
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	client := NewClient()

	assert.Equal(t, DefaultSunURL, client.sunURL)
	assert.Equal(t, DefaultMoonURL, client.moonURL)
	assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
}

func daysIn(table models.RiseSetTable, year int, month time.Month) int {
	n := 0
	for day := range table {
		if day.Year == year && day.Month == month {
			n++
		}
	}
	return n
}
