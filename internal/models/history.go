package models

// Pagination describes the page window of a history query. Pages are
// 1-indexed.
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalTests      int  `json:"totalTests"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// HistoryPage is one page of a user's test history.
type HistoryPage struct {
	Tests      []TestRecord `json:"tests"`
	Pagination Pagination   `json:"pagination"`
}
