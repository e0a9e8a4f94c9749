package constants

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// FullAllocation is the capacity of one resource, in percent. A resource
// whose summed active allocation exceeds this is over-allocated.
const FullAllocation = 100.0
