package distance

// Category is a coarse distance bucket driving behavioral transitions.
type Category string

const (
	CategoryTooClose Category = "too_close"
	CategoryClose    Category = "close"
	CategoryOptimal  Category = "optimal"
	CategoryFar      Category = "far"
	CategoryVeryFar  Category = "very_far"
)

// Categorize maps a distance in meters to its bucket.
func Categorize(meters float64) Category {
	switch {
	case meters < 0.5:
		return CategoryTooClose
	case meters < 1.0:
		return CategoryClose
	case meters < 2.0:
		return CategoryOptimal
	case meters < 3.0:
		return CategoryFar
	default:
		return CategoryVeryFar
	}
}
