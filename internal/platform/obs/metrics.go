package obs

import "github.com/prometheus/client_golang/prometheus"

var (
	RemoteFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sfcbus_remote_fetch_total",
		Help: "Remote timetable requests by resource and outcome",
	}, []string{"resource", "outcome"})
	CacheReads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sfcbus_cache_read_total",
		Help: "Schedule cache reads by result (hit, miss, corrupt, error)",
	}, []string{"result"})
	CacheWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sfcbus_cache_write_total",
		Help: "Schedule cache writes by result (ok, error)",
	}, []string{"result"})
	Acquisitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sfcbus_acquisition_total",
		Help: "Timetable acquisitions by source (live, cache, failed)",
	}, []string{"source"})
)

func init() {
	prometheus.MustRegister(RemoteFetches, CacheReads, CacheWrites, Acquisitions)
}
