package main

import (
	"strings"

	"github.com/nicolagi/todoist-launcher/launcher"
)

type itemsByText []launcher.Item

func (items itemsByText) Len() int {
	return len(items)
}

func (items itemsByText) Swap(i, j int) {
	items[i], items[j] = items[j], items[i]
}

func (items itemsByText) Less(i, j int) bool {
	return strings.ToLower(items[i].Text) < strings.ToLower(items[j].Text)
}
