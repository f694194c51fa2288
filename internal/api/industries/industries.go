package industries

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/joe-black-jb/mops-revenue/internal"
	"github.com/joe-black-jb/mops-revenue/internal/revenue"
)

// List returns the prefix table ordered by prefix.
func List() []internal.Industry {
	industries := make([]internal.Industry, 0, len(revenue.IndustryMapping))
	for prefix, name := range revenue.IndustryMapping {
		industries = append(industries, internal.Industry{Prefix: prefix, Name: name})
	}
	sort.Slice(industries, func(i, j int) bool {
		return industries[i].Prefix < industries[j].Prefix
	})
	return industries
}

func GetIndustries(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, List())
}
