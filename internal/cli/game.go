package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// RPC command envelope (matches API)
type rpcRequest struct {
	Method     string        `json:"method"`
	Parameters rpcParameters `json:"parameters"`
	ID         string        `json:"id,omitempty"`
}

type rpcParameters struct {
	Letter string `json:"letter,omitempty"`
	Which  string `json:"which,omitempty"`
}

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameAskCmd())
	cmd.AddCommand(newGameAnswerCmd())
	cmd.AddCommand(newGamePassCmd())
	cmd.AddCommand(newGameFindPlayerCmd())
	cmd.AddCommand(newGameLifelineCmd())
	cmd.AddCommand(newGameCallPlayerCmd())

	return cmd
}

// sendCommand issues one RPC command against a game and prints the result
func sendCommand(gameID string, req rpcRequest) error {
	var result RPCResult

	if err := client.Put(fmt.Sprintf("/games/%s", gameID), req, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	out.Print(result)
	return nil
}

func newGameCreateCmd() *cobra.Command {
	var title string
	var categories []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"title":      title,
				"categories": categories,
			}

			var result Game
			if err := client.Post("/games", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Game title (required)")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "Question category (repeatable, required)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game_id>",
		Short: "Get the game snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get(fmt.Sprintf("/games/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameList

			if err := client.Get("/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <game_id>",
		Short: "Generate the next question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendCommand(args[0], rpcRequest{Method: "ask"})
		},
	}
}

func newGameAnswerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "answer <game_id> <letter>",
		Short: "Answer the current question",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			letter := strings.ToUpper(strings.TrimSpace(args[1]))
			if len(letter) != 1 {
				return fmt.Errorf("letter must be a single character")
			}

			return sendCommand(args[0], rpcRequest{
				Method:     "answer",
				Parameters: rpcParameters{Letter: letter},
			})
		},
	}
}

func newGamePassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pass <game_id>",
		Short: "Pass on the current question and draw another",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendCommand(args[0], rpcRequest{Method: "pass"})
		},
	}
}

func newGameFindPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-player <game_id>",
		Short: "Pick a contestant from the signups and start play",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendCommand(args[0], rpcRequest{Method: "find_player"})
		},
	}
}

func newGameLifelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lifeline <game_id> <which>",
		Short: "Use a lifeline (narrow_it_down, text_the_audience, phone_a_dev)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendCommand(args[0], rpcRequest{
				Method:     "life_line",
				Parameters: rpcParameters{Which: args[1]},
			})
		},
	}
}

func newGameCallPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call-player <game_id>",
		Short: "Issue a voice credential for calling the contestant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendCommand(args[0], rpcRequest{Method: "call_player"})
		},
	}
}
