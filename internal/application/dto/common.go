package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagedResult página de resultados con metadatos derivados.
// Contrato: totalPages = ceil(totalCount/pageSize), hasPreviousPage si
// pageNumber > 1, hasNextPage si pageNumber < totalPages.
type PagedResult[T any] struct {
	Items           []T  `json:"items"`
	TotalCount      int  `json:"totalCount"`
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	TotalPages      int  `json:"totalPages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// NewPagedResult construye la página y deriva sus metadatos.
func NewPagedResult[T any](items []T, totalCount, pageNumber, pageSize int) PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}
	return PagedResult[T]{
		Items:           items,
		TotalCount:      totalCount,
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasPreviousPage: pageNumber > 1,
		HasNextPage:     pageNumber < totalPages,
	}
}

// PageSlice recorta la porción de items correspondiente a una página
// 1-indexada. Para listados que se paginan en memoria.
func PageSlice[T any](items []T, pageNumber, pageSize int) []T {
	if pageSize <= 0 || pageNumber <= 0 {
		return []T{}
	}
	start := (pageNumber - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
