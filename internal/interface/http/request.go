package handlers

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JoaquinVilchez/business-manager-api/internal/application"
	"github.com/JoaquinVilchez/business-manager-api/pkg/patch"
	"github.com/JoaquinVilchez/business-manager-api/pkg/response"
	"github.com/JoaquinVilchez/business-manager-api/pkg/validation"
)

type listQuery struct {
	Page   int    `form:"page" json:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" json:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search" json:"search" binding:"omitempty,max=100"`
}

func bindPage(c *gin.Context) (application.PageQuery, bool) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, CodeInvalidPayload, "invalid query", validation.ToDetails(err))
		return application.PageQuery{}, false
	}
	return application.PageQuery{Page: q.Page, Limit: q.Limit, Search: q.Search}, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, CodeInvalidPayload, "invalid payload", validation.ToDetails(err))
		return false
	}
	return true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, CodeInvalidPayload, "invalid id", map[string]string{"id": "must be a positive integer"})
		return 0, false
	}
	return id, true
}

// date accepts RFC 3339 timestamps as well as plain YYYY-MM-DD dates.
type date time.Time

var timeType = reflect.TypeOf(time.Time{})

func (d *date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &json.UnmarshalTypeError{Value: string(b), Type: timeType}
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = date(t)
			return nil
		}
	}
	return &json.UnmarshalTypeError{Value: "string " + s, Type: timeType}
}

func (d *date) ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

func nullableDate(n patch.Nullable[date]) patch.Nullable[time.Time] {
	switch {
	case !n.Set:
		return patch.Nullable[time.Time]{}
	case !n.Valid:
		return patch.Null[time.Time]()
	default:
		return patch.Of(time.Time(n.Value))
	}
}
