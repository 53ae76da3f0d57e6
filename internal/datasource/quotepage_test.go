package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quoteHTML = `<html><body>
<fin-streamer data-symbol="^GSPC" data-field="regularMarketPrice" data-value="5000.1">5,000.10</fin-streamer>
<section>
  <fin-streamer data-symbol="CL=F" data-field="regularMarketPrice" data-value="78.42">78.42</fin-streamer>
  <fin-streamer data-symbol="CL=F" data-field="regularMarketChange" data-value="-0.5">-0.50</fin-streamer>
</section>
</body></html>`

func TestQuotePageLatestClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote/CL=F/", r.URL.Path)
		_, _ = w.Write([]byte(quoteHTML))
	}))
	defer srv.Close()

	qp := NewQuotePage(YFinanceOptions{BaseURL: srv.URL})
	got, err := qp.LatestClose(context.Background(), "CL=F")
	require.NoError(t, err)
	assert.Equal(t, 78.42, got.Price)
	assert.Equal(t, "CL=F", got.Symbol)
}

func TestScrapePriceFallsBackToText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<fin-streamer data-field="regularMarketPrice">1,234.50</fin-streamer>`))
	require.NoError(t, err)

	price, err := scrapePrice(doc, "KC=F")
	require.NoError(t, err)
	assert.Equal(t, 1234.5, price)
}

func TestScrapePriceMissing(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body>Consent required</body></html>`))
	require.NoError(t, err)

	_, err = scrapePrice(doc, "KC=F")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestScrapePriceGarbage(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<fin-streamer data-symbol="KC=F" data-field="regularMarketPrice" data-value="--">--</fin-streamer>`))
	require.NoError(t, err)

	_, err = scrapePrice(doc, "KC=F")
	assert.ErrorIs(t, err, ErrNoData)
}
