package dto

// limitOrDefault maps an absent limit to zero, which the use cases replace with their default.
// A present limit has already been validated to 1..1000 by binding.
func limitOrDefault(limit *int) int {
	if limit == nil {
		return 0
	}
	return *limit
}
