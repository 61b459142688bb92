package repository

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// clampPage returns a usable page and limit for offset pagination.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	return page, limit
}
