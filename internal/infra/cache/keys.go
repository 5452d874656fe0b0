package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key строит ключ вида "prefix:a=1&b=2" с отсортированными параметрами
func Key(prefix string, params map[string]string) string {
	if len(params) == 0 {
		return prefix
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", name, url.QueryEscape(params[name])))
	}
	return prefix + ":" + strings.Join(parts, "&")
}
