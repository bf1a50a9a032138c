// query/policy.go
package query

import "time"

// Resource names double as metric labels.
const (
	ResourceFacilityDirectory       = "fab-list"
	ResourceEquipmentCurrentStatus  = "equipment-current-status"
	ResourceEquipmentNotAvailable   = "equipment-not-available"
	ResourceEquipmentStorage        = "equipment-storage"
	ResourceDeviceStatisticsOptions = "device-statistics-options"
	ResourceDeviceStatisticsData    = "device-statistics-data"
	ResourceRecipeList              = "recipe-list"
	ResourceToolFabMapping          = "tool-fab-mapping"
	ResourceHealth                  = "health"
	ResourceJobsStatus              = "jobs-status"
)

const (
	DefaultStaleTime  = 5 * time.Minute
	DefaultEvictTime  = 30 * time.Minute
	DefaultRetryCount = 3
	DefaultRetryBase  = time.Second
	DefaultRetryCap   = 30 * time.Second
)

// Policy controls freshness, eviction and retries of one logical resource.
type Policy struct {
	Name            string        `json:"name"`
	StaleTime       time.Duration `json:"stale_time"`
	EvictTime       time.Duration `json:"evict_time"`
	RetryCount      int           `json:"retry_count"`
	RetryBase       time.Duration `json:"retry_base"`
	RetryCap        time.Duration `json:"retry_cap"`
	RefetchInterval time.Duration `json:"refetch_interval,omitempty"`
}

// RetryDelay is the wait before retry number attempt+1: min(base*2^attempt, cap).
func (p Policy) RetryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if p.RetryBase <= 0 {
		return 0
	}
	if attempt >= 62 {
		return p.RetryCap
	}
	delay := p.RetryBase << uint(attempt)
	if delay <= 0 || (p.RetryCap > 0 && delay > p.RetryCap) {
		return p.RetryCap
	}
	return delay
}

// DefaultPolicy applies to resources missing from the table.
var DefaultPolicy = Policy{
	Name:       "default",
	StaleTime:  DefaultStaleTime,
	EvictTime:  DefaultEvictTime,
	RetryCount: DefaultRetryCount,
	RetryBase:  DefaultRetryBase,
	RetryCap:   DefaultRetryCap,
}

// policyTable holds the cache policy of every resource the dashboard reads.
var policyTable = []Policy{
	{Name: ResourceFacilityDirectory, StaleTime: 24 * time.Hour, EvictTime: 24 * time.Hour},
	{Name: ResourceEquipmentCurrentStatus, StaleTime: time.Minute, EvictTime: 5 * time.Minute, RefetchInterval: time.Minute},
	{Name: ResourceEquipmentNotAvailable, StaleTime: 5 * time.Minute, EvictTime: 10 * time.Minute, RefetchInterval: 5 * time.Minute},
	{Name: ResourceEquipmentStorage, StaleTime: 5 * time.Minute, EvictTime: 10 * time.Minute},
	{Name: ResourceDeviceStatisticsOptions, StaleTime: 30 * time.Minute, EvictTime: 2 * time.Hour},
	{Name: ResourceDeviceStatisticsData, StaleTime: 5 * time.Minute, EvictTime: 15 * time.Minute},
	{Name: ResourceRecipeList, StaleTime: 15 * time.Minute, EvictTime: 15 * time.Minute},
	{Name: ResourceToolFabMapping, StaleTime: 30 * time.Minute, EvictTime: 4 * time.Hour, RetryCount: 3, RetryBase: time.Second, RetryCap: 30 * time.Second},
	{Name: ResourceHealth, StaleTime: time.Minute, EvictTime: 5 * time.Minute},
	{Name: ResourceJobsStatus, StaleTime: 5 * time.Minute, EvictTime: 30 * time.Minute},
}

var policies = buildPolicies(policyTable)

func buildPolicies(table []Policy) map[string]Policy {
	out := make(map[string]Policy, len(table))
	for _, p := range table {
		if p.RetryCount == 0 && p.RetryBase == 0 {
			p.RetryCount = DefaultPolicy.RetryCount
			p.RetryBase = DefaultPolicy.RetryBase
			p.RetryCap = DefaultPolicy.RetryCap
		}
		out[p.Name] = p
	}
	return out
}

// PolicyFor returns the policy of resource, falling back to DefaultPolicy.
func PolicyFor(resource string) Policy {
	if p, ok := policies[resource]; ok {
		return p
	}
	p := DefaultPolicy
	p.Name = resource
	return p
}

// Policies lists the configured resource policies in table order.
func Policies() []Policy {
	out := make([]Policy, 0, len(policyTable))
	for _, p := range policyTable {
		out = append(out, policies[p.Name])
	}
	return out
}
