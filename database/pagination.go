package database

// Limits bounds the page size of one endpoint.
type Limits struct {
	Default int
	Min     int
	Max     int
}

var (
	TalukLimits   = Limits{Default: 20, Min: 1, Max: 100}
	VillageLimits = Limits{Default: 50, Min: 1, Max: 500}
)

// Clamp forces limit into [Min, Max].
func (l Limits) Clamp(limit int) int {
	return min(l.Max, max(l.Min, limit))
}

// NormalizePage floors page at 1.
func NormalizePage(page int) int {
	return max(1, page)
}

// Offset of the first row of page. Page is 1-based.
func Offset(page, limit int) int {
	return (NormalizePage(page) - 1) * limit
}

// PageCount returns ceil(total/limit). An empty result still has one page.
func PageCount(total, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := (total + limit - 1) / limit
	return max(1, pages)
}

// NewPagination fills in the page count for total rows.
func NewPagination(page, limit, total int) Pagination {
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: PageCount(total, limit),
	}
}
