package httpapi

import (
	"net/url"
	"strings"

	"github.com/corvino/textroom/internal/apperr"
)

// queryParams wraps url.Values with the percent-decode-and-split behavior
// spec §4.7 calls for, grounded on original_source's misc/query_params.rs.
type queryParams struct {
	values url.Values
}

func parseQuery(rawQuery string) (queryParams, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return queryParams{}, apperr.NotFound("malformed query")
	}
	return queryParams{values: values}, nil
}

// get returns the first value for name, or "" if absent.
func (q queryParams) get(name string) string {
	return q.values.Get(name)
}

// require returns the value for name, or "<name> is required." as a 400.
func (q queryParams) require(name string) (string, error) {
	v := q.values.Get(name)
	if v == "" {
		return "", apperr.FieldRequired(name)
	}
	return v, nil
}

// list splits a comma-delimited single value into pieces; absent yields nil.
func (q queryParams) list(name string) []string {
	raw := q.values.Get(name)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
