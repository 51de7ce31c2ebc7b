package handlers

import (
	"github.com/gin-gonic/gin"
	"keephy.backend/pkg/utils"
)

const statusSuccess = "success"

// listEnvelope renders a list in the shape the clients expect for each mode.
// docs nests the items under data.docs instead of data.
func listEnvelope[T any](items []T, total int64, p utils.PaginationParams, docs bool) gin.H {
	if items == nil {
		items = []T{}
	}
	var data any = items
	if docs {
		data = gin.H{"docs": items}
	}
	out := gin.H{
		"status":       statusSuccess,
		"results":      len(items),
		"totalRecords": total,
		"data":         data,
	}
	if p.Paginated() {
		out["limit"] = p.Limit
		out["page"] = p.Page
	}
	return out
}

// franchiseEnvelope is the location-by-business shape, which nests the
// paginated variant under data
func franchiseEnvelope[T any](items []T, total int64, p utils.PaginationParams) gin.H {
	if items == nil {
		items = []T{}
	}
	if !p.Paginated() {
		return gin.H{
			"status":       statusSuccess,
			"results":      len(items),
			"totalRecords": total,
			"Franchise":    items,
		}
	}
	return gin.H{"data": gin.H{
		"status":       statusSuccess,
		"limit":        p.Limit,
		"totalRecords": total,
		"page":         p.Page,
		"Franchise":    items,
	}}
}

func pageParams(c *gin.Context) utils.PaginationParams {
	return utils.ParsePage(c.Query("page"))
}
