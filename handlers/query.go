package handlers

import (
	"fmt"
	"strconv"

	"vehicle-forecast-api/models"

	"github.com/gin-gonic/gin"
)

// YearRange is the optional ?from=&to= filter on the historical listing.
// Both bounds are inclusive.
type YearRange struct {
	From *int
	To   *int
}

func ParseYearRange(c *gin.Context) (YearRange, error) {
	var r YearRange

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := strconv.Atoi(fromStr)
		if err != nil {
			return r, fmt.Errorf("invalid from parameter, must be a year")
		}
		r.From = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := strconv.Atoi(toStr)
		if err != nil {
			return r, fmt.Errorf("invalid to parameter, must be a year")
		}
		r.To = &to
	}
	if r.From != nil && r.To != nil && *r.From > *r.To {
		return r, fmt.Errorf("from must not be after to")
	}

	return r, nil
}

// Apply keeps the order of rows.
func (r YearRange) Apply(rows []models.HistoricalRecord) []models.HistoricalRecord {
	out := make([]models.HistoricalRecord, 0, len(rows))
	for _, row := range rows {
		if r.From != nil && row.Tahun < *r.From {
			continue
		}
		if r.To != nil && row.Tahun > *r.To {
			continue
		}
		out = append(out, row)
	}
	return out
}
