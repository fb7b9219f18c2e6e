package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	c := New()

	c.CacheLookup(true)
	c.CacheLookup(false)
	c.CacheLookup(false)
	c.ItemsRendered("portfolio_short", 5)
	c.ItemsRendered("portfolio_short", 0)
	c.ArchivesHidden(2)
	c.ObserveHTTPRequest(http.MethodGet, "/portfolio", http.StatusOK, 20*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.itemsRendered.WithLabelValues("portfolio_short")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.archivesHidden))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requestTotal.WithLabelValues("GET", "/portfolio", "200")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.ItemsRendered("portfolio_latest", 1)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), `portfolio_items_rendered_total{template="portfolio_latest"} 1`))
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.CacheLookup(true)
	c.ItemsRendered("x", 1)
	c.ObserveRender("list", time.Second)
	c.ArchivesHidden(1)
	c.ObserveHTTPRequest("GET", "/", 200, time.Second)
	assert.Nil(t, c.Registry())

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
