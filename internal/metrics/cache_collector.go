package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"coverfinder/internal/catalogcache"
)

var (
	cacheHitsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "cache", "hits_total"),
		"Catalog cache lookups answered from memory.", []string{"map"}, nil)
	cacheMissesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "cache", "misses_total"),
		"Catalog cache lookups that started a fetch.", []string{"map"}, nil)
	cacheSharedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "cache", "shared_total"),
		"Catalog cache lookups that joined an in-flight fetch.", []string{"map"}, nil)
	cacheEvictedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "cache", "evicted_total"),
		"Catalog cache entries dropped by the LRU bound.", []string{"map"}, nil)
	cacheSizeDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "cache", "entries"),
		"Catalog cache entries currently held.", []string{"map"}, nil)
)

type cacheCollector struct {
	stats func() catalogcache.CacheStats
}

func (c *cacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- cacheHitsDesc
	ch <- cacheMissesDesc
	ch <- cacheSharedDesc
	ch <- cacheEvictedDesc
	ch <- cacheSizeDesc
}

func (c *cacheCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.stats()
	for name, s := range map[string]catalogcache.Stats{
		"manifests": stats.Manifests,
		"games":     stats.Games,
	} {
		ch <- prometheus.MustNewConstMetric(cacheHitsDesc, prometheus.CounterValue, float64(s.Hits), name)
		ch <- prometheus.MustNewConstMetric(cacheMissesDesc, prometheus.CounterValue, float64(s.Misses), name)
		ch <- prometheus.MustNewConstMetric(cacheSharedDesc, prometheus.CounterValue, float64(s.Shared), name)
		ch <- prometheus.MustNewConstMetric(cacheEvictedDesc, prometheus.CounterValue, float64(s.Evicted), name)
		ch <- prometheus.MustNewConstMetric(cacheSizeDesc, prometheus.GaugeValue, float64(s.Size), name)
	}
}
