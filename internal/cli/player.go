package cli

import (
	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Participant signup commands",
	}

	cmd.AddCommand(newPlayerAddCmd())

	return cmd
}

func newPlayerAddCmd() *cobra.Command {
	var game, name, number string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Sign up a participant for a game",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"game":   game,
				"name":   name,
				"number": number,
			}

			var result Game
			if err := client.Post("/players", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&game, "game", "g", "", "Game id (required)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Participant name (required)")
	cmd.Flags().StringVarP(&number, "number", "p", "", "Participant phone number (required)")
	_ = cmd.MarkFlagRequired("game")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}
