// Package views holds the templ components for the scramble UI.
package views

import (
	"encoding/json"

	"promjum/internal/viewmodel"
)

func sessionPath(id, action string) string {
	return "/sessions/" + id + "/" + action
}

// tileAction is the endpoint a tap on t posts to, or "" when the tile cannot
// move.
func tileAction(data viewmodel.RoundFragment, t viewmodel.Tile, action string) string {
	if data.Locked || t.Locked || t.Empty {
		return ""
	}
	return sessionPath(data.SessionID, action)
}

func tileVals(field string, n int) string {
	b, _ := json.Marshal(map[string]int{field: n})
	return string(b)
}
