package feature

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/0x0BSoD/featfeed/internal/model"
	"github.com/0x0BSoD/featfeed/internal/ui"
)

type UserItem struct {
	User  model.User
	Label string
}

func BuildUserItem(user model.User, index int) UserItem {
	return UserItem{
		User:  user,
		Label: fmt.Sprintf("User(%d) idx=%d", user.ID, index),
	}
}

// StateBlock pairs a view state with a checksum of its header and error.
type StateBlock struct {
	State    UIModel
	Checksum uint32
}

func BuildStateBlock(state UIModel) StateBlock {
	return StateBlock{
		State:    state,
		Checksum: model.Checksum(state.Header.Value + state.Error),
	}
}

func TransformUsersToSummaries(users []model.User) []UserSummary {
	return lo.Map(users, func(user model.User, _ int) UserSummary {
		return UserSummary{
			ID:       user.ID,
			Name:     user.Name,
			Checksum: model.Checksum(user.Name),
			IsActive: user.IsActive,
		}
	})
}

func MapSummariesToUIItems(summaries []UserSummary) []ui.ListItem {
	return lo.Map(summaries, func(summary UserSummary, i int) ui.ListItem {
		return ui.ListItem{
			ID:       int64(i),
			Title:    summary.Name,
			Subtitle: activity(summary.IsActive),
			Selected: summary.IsActive,
		}
	})
}

func CreateLargeUIModel(count int) UIModel {
	summaries := lo.Times(max(count, 0), func(i int) UserSummary {
		return UserSummary{
			ID:       int64(i),
			Name:     fmt.Sprintf("User-%d", i),
			Checksum: uint32(i * 17),
			IsActive: i%2 == 0,
		}
	})

	return UIModel{
		Header: ui.Text{Value: fmt.Sprintf("Large model %d", count)},
		Items:  MapSummariesToUIItems(summaries),
	}
}

func MapToUITextList(users []model.User) []ui.Text {
	return lo.Map(users, func(user model.User, _ int) ui.Text {
		return ui.Text{Value: "User: " + user.Name}
	})
}

// BuildManyUIModels returns repeat large models sized 1 to 20 items in a cycle.
func BuildManyUIModels(repeat int) []UIModel {
	return lo.Times(max(repeat, 0), func(i int) UIModel {
		return CreateLargeUIModel(i%20 + 1)
	})
}

func activity(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}
