package domain

// Method tags reported in the response payload. Callers rely on the tag to
// know whether a real route or the geometric estimate produced the distance.
const (
	MethodOSRM      = "osrm"
	MethodHaversine = "haversine_ajustado"
)

// DistanceResult carries a one-way travel distance between two resolved
// locations. DurationMinutes is nil when the geometric fallback produced the
// result (the fallback does not estimate travel time).
type DistanceResult struct {
	OneWayKm        float64
	DurationMinutes *float64
	Method          string
}
