package feature

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/0x0BSoD/featfeed/internal/ui"
)

type UIMapper struct {
	name string
}

func NewUIMapper(name string) *UIMapper {
	return &UIMapper{name: name}
}

func (m *UIMapper) MapToUI(items []FeedItem) UIModel {
	return UIModel{
		Header: ui.Text{Value: fmt.Sprintf("%s Feed (%d)", m.name, len(items))},
		Items: lo.Map(items, func(item FeedItem, i int) ui.ListItem {
			return ui.ListItem{
				ID:       item.ID,
				Title:    fmt.Sprintf("%d. %s", i+1, item.Title),
				Subtitle: item.Subtitle,
				Selected: item.UserSummary.IsActive,
			}
		}),
	}
}

func (m *UIMapper) EmptyState() UIModel {
	return UIModel{
		Header: ui.Text{Value: "No data"},
		Items:  []ui.ListItem{},
	}
}

func (m *UIMapper) LoadingState() UIModel {
	return UIModel{
		Header:  ui.Text{Value: "Loading..."},
		Items:   []ui.ListItem{},
		Loading: true,
	}
}

func (m *UIMapper) ErrorState(message string) UIModel {
	return UIModel{
		Header: ui.Text{Value: "Error"},
		Items:  []ui.ListItem{},
		Error:  message,
	}
}
