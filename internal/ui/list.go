package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/wanderwise/wander/internal/models"
)

var _ list.Item = guideItem{}

// guideItem wraps [models.Guide] to implement [list.Item].
type guideItem struct {
	guide  models.Guide
	pinned bool
}

func (i guideItem) FilterValue() string { return i.guide.Destination }

func (i guideItem) Title() string {
	if i.pinned {
		return fmt.Sprintf("%s ●", i.guide.Destination)
	}
	return i.guide.Destination
}

func (i guideItem) Description() string {
	desc := i.guide.Country
	if i.guide.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.guide.Description)
	}
	return desc
}
