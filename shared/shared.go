package shared

import (
	"math"
	"strings"
)

// BuildCacheKey joins key parts with the conventional redis separator.
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// PageBounds converts page/limit into half-open slice bounds over a dataset
// of the given size. The returned range is safe to slice with directly.
func PageBounds(page, limit, total int) (start, end int) {
	if page < 1 {
		page = 1
	}

	if limit < 1 {
		limit = 1
	}

	start = (page - 1) * limit
	if start > total {
		start = total
	}

	end = start + limit
	if end > total {
		end = total
	}

	return start, end
}
