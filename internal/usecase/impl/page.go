package impl

import "bookreview/internal/domain/entity"

// newPage copies items into a page. page must already be normalized.
func newPage[T any](items []*T, page entity.PageRequest, total int64) *entity.Page[T] {
	content := make([]T, 0, len(items))
	for _, item := range items {
		content = append(content, *item)
	}

	return &entity.Page[T]{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
	}
}
