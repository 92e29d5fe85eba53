package feed

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

func parseJSON(data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("feed: invalid json")
	}
	result := gjson.ParseBytes(data)

	if status := result.Get("status"); status.Exists() && status.String() != "ok" {
		msg := result.Get("message").String()
		return nil, fmt.Errorf("%w: status %q %s", ErrBadStatus, status.String(), msg)
	}

	items := result.Get("items")
	if !items.IsArray() {
		return nil, errors.New("feed: 'items' array not found")
	}

	var titles []string
	items.ForEach(func(_, item gjson.Result) bool {
		if t := item.Get("title"); t.Exists() {
			titles = append(titles, t.String())
		}
		return true
	})
	return titles, nil
}
