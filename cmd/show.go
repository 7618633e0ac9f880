package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/0x0BSoD/featfeed/internal/feature"
	"github.com/0x0BSoD/featfeed/internal/ui"
)

func showCmd() *cobra.Command {
	var (
		demo  int
		state string
	)

	cmd := &cobra.Command{
		Use:   "show <feature> [user-id]",
		Short: "Render the UI model of a feature",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			svc, err := a.catalog.Get(args[0])
			if err != nil {
				return err
			}

			var m feature.UIModel
			switch {
			case state != "":
				m, err = stateModel(svc.Mapper(), state)
				if err != nil {
					return err
				}
			case demo > 0:
				m = svc.DemoComplexFlow(demo)
			case len(args) == 2:
				id, err := strconv.ParseInt(args[1], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid user id %q", args[1])
				}
				m = svc.BuildUIForUser(cmd.Context(), id)
			default:
				return fmt.Errorf("a user id, --demo or --state is required")
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Render(m.Header, m.Items, m.Loading, m.Error))
			return nil
		},
	}

	cmd.Flags().IntVar(&demo, "demo", 0, "render the demo flow with this many synthetic users")
	cmd.Flags().StringVar(&state, "state", "", "render a canned state: empty, loading or error")

	return cmd
}

func stateModel(m *feature.UIMapper, state string) (feature.UIModel, error) {
	switch state {
	case "empty":
		return m.EmptyState(), nil
	case "loading":
		return m.LoadingState(), nil
	case "error":
		return m.ErrorState("something went wrong"), nil
	default:
		return feature.UIModel{}, fmt.Errorf("unknown state %q", state)
	}
}
