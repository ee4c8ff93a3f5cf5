package pagination

const (
	// PerPage is the storefront's fixed page size.
	PerPage = 10
	// VisibleButtons is how many numbered page buttons the navigation shows at most.
	VisibleButtons = 5
)

// TotalPages is ceil(n / perPage); zero items means zero pages.
func TotalPages(n, perPage int) int {
	if n <= 0 || perPage <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// Paginate returns the contiguous slice for page (1-based) and the page count.
// Pages outside [1, totalPages] yield an empty slice.
func Paginate[T any](items []T, page, perPage int) ([]T, int) {
	total := TotalPages(len(items), perPage)
	if page < 1 || page > total {
		return []T{}, total
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}

// Window returns up to visible consecutive page numbers around current, clamped to
// [1, total]. Near the edges the window slides instead of shrinking.
func Window(current, total, visible int) []int {
	if total <= 0 || visible <= 0 {
		return []int{}
	}
	current = Clamp(current, total)

	start := current - visible/2
	if start < 1 {
		start = 1
	}
	end := start + visible - 1
	if end > total {
		end = total
		start = end - visible + 1
		if start < 1 {
			start = 1
		}
	}

	out := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		out = append(out, p)
	}
	return out
}

// Clamp forces page into [1, total]; with no pages it returns 1.
func Clamp(page, total int) int {
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Nav is what the page controls render. First/Prev are disabled on the first page,
// Next/Last on the last one.
type Nav struct {
	Current    int   `json:"current"`
	TotalPages int   `json:"total_pages"`
	Pages      []int `json:"pages"`
	First      int   `json:"first"`
	Prev       int   `json:"prev"`
	Next       int   `json:"next"`
	Last       int   `json:"last"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
	// Show is false when there is at most one page.
	Show bool `json:"show"`
}

// NewNav builds the controls for current. A current page past the end still gets
// a Prev that lands on the last real page.
func NewNav(current, total int) Nav {
	n := Nav{
		Current:    current,
		TotalPages: total,
		Pages:      Window(current, total, VisibleButtons),
		First:      1,
		Last:       total,
		HasPrev:    current > 1 && total > 0,
		HasNext:    current < total,
		Show:       total > 1,
	}
	n.Prev, n.Next = Clamp(current, total), Clamp(current, total)
	if n.HasPrev {
		n.Prev = Clamp(current-1, total)
	}
	if n.HasNext {
		n.Next = Clamp(current+1, total)
	}
	return n
}
