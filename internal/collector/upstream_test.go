package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartBody = `{"chart":{"result":[{"timestamp":[1704412800,1705017600,1705622400],
"indicators":{"quote":[{"close":[73.81,null,72.68]}]}}],"error":null}}`

func yahooFor(hosts ...string) *YahooFetcher {
	f := NewYahooFetcher("", 5*time.Second)
	f.Hosts = hosts
	f.Location = time.UTC
	return f
}

func TestYahooFetcher_SkipsNullCloses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/CL=F", r.URL.Path)
		assert.Equal(t, "5y", r.URL.Query().Get("range"))
		assert.Equal(t, "1wk", r.URL.Query().Get("interval"))
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		w.Write([]byte(chartBody))
	}))
	defer srv.Close()

	got, err := yahooFor(srv.URL).FetchHistory(context.Background(), "CL=F")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-01-05", got[0].Date)
	assert.Equal(t, "73.81", got[0].Price.String())
	assert.Equal(t, "2024-01-19", got[1].Date)
}

func TestYahooFetcher_FallsBackToNextHost(t *testing.T) {
	var badHits atomic.Int32
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		badHits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer bad.Close()
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	}))
	defer empty.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartBody))
	}))
	defer good.Close()

	got, err := yahooFor(bad.URL, empty.URL, good.URL).FetchHistory(context.Background(), "GC=F")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(1), badHits.Load())
}

func TestYahooFetcher_AllHostsFail(t *testing.T) {
	apiErr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer apiErr.Close()

	_, err := yahooFor(apiErr.URL, apiErr.URL).FetchHistory(context.Background(), "XX=F")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delisted")
	assert.Contains(t, err.Error(), "all hosts failed")
}

func TestFrankfurterFetcher_SortsByDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/2015-01-01..", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		assert.Equal(t, "RUB", r.URL.Query().Get("symbols"))
		w.Write([]byte(`{"amount":1.0,"base":"USD","start_date":"2015-01-02","rates":{
			"2015-01-06":{"RUB":61.1},
			"2015-01-02":{"RUB":56.2},
			"2015-01-05":{"EUR":0.83}}}`))
	}))
	defer srv.Close()

	got, err := NewFrankfurterFetcher(srv.URL, "", 5*time.Second).FetchHistory(context.Background(), "RUB")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2015-01-02", got[0].Date)
	assert.Equal(t, "56.2", got[0].Price.String())
	assert.Equal(t, "2015-01-06", got[1].Date)
}

func TestFrankfurterFetcher_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewFrankfurterFetcher(srv.URL, "", time.Second).FetchHistory(context.Background(), "RUB")
	assert.Error(t, err)

	noRates := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"not found"}`))
	}))
	defer noRates.Close()

	_, err = NewFrankfurterFetcher(noRates.URL, "", time.Second).FetchHistory(context.Background(), "RUB")
	assert.Error(t, err)
}
