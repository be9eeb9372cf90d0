package dto

// Res is the envelope every endpoint responds with. Data is null on errors.
type Res struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// PageList is the data payload of every paginated read. Total counts all
// matches regardless of the page window.
type PageList[T any] struct {
	Items []T   `json:"items"`
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
}

func NewPageList[T any](items []T, page, limit, total int64) *PageList[T] {
	if items == nil {
		items = []T{}
	}
	return &PageList[T]{Items: items, Page: page, Limit: limit, Total: total}
}
