package plan

import (
	"path"
	"strings"
)

// extColors assigns a fill color per file extension, loosely following the
// colors GitHub uses for language bars.
var extColors = map[string]string{
	".go":   "#00ADD8",
	".js":   "#F1E05A",
	".jsx":  "#F1E05A",
	".ts":   "#3178C6",
	".tsx":  "#3178C6",
	".py":   "#3572A5",
	".rs":   "#DEA584",
	".rb":   "#701516",
	".java": "#B07219",
	".c":    "#555555",
	".h":    "#555555",
	".cpp":  "#F34B7D",
	".cs":   "#178600",
	".php":  "#4F5D95",
	".html": "#E34C26",
	".css":  "#563D7C",
	".scss": "#C6538C",
	".md":   "#9E9E9E",
	".json": "#A8A8A8",
	".yaml": "#CB171E",
	".yml":  "#CB171E",
	".toml": "#9C4221",
	".sh":   "#89E051",
	".sql":  "#E38C00",
}

// defaultColor is used for extensions without an assigned color.
const defaultColor = "#8D99AE"

func colorFor(p string) string {
	if c, ok := extColors[strings.ToLower(path.Ext(p))]; ok {
		return c
	}
	return defaultColor
}
