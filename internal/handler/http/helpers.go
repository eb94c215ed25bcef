package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/workspace-backend-go/internal/handler/http/response"
)

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func listMeta(n int) *response.Meta {
	return &response.Meta{TotalItems: int64(n)}
}
