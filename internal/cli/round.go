package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Round commands",
	}

	cmd.AddCommand(newRoundStartCmd())

	return cmd
}

func newRoundStartCmd() *cobra.Command {
	var prompt string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new round (host only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireIdentity()
			if err != nil {
				return err
			}

			req := map[string]string{"player_id": id.PlayerID}
			if prompt != "" {
				req["prompt"] = prompt
			}

			var result Session
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/rounds", id.Code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "", "Custom prompt (default: drawn from the server's pool)")

	return cmd
}

func newRespondCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "respond <text>",
		Short: "Submit your response to the current prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireIdentity()
			if err != nil {
				return err
			}

			req := map[string]string{
				"player_id": id.PlayerID,
				"text":      strings.Join(args, " "),
			}

			var result SubmitResult
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/responses", id.Code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <response_id>=<player_id> ...",
		Short: "Submit guesses for every response in the round",
		Long: `Submit guesses mapping each response to the player you think wrote it.

Every response in the round must be covered, for example:

  whosaid guess r1=alice-id r2=bob-id r3=carol-id`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireIdentity()
			if err != nil {
				return err
			}

			guesses := make(map[string]string, len(args))
			for _, arg := range args {
				parts := strings.SplitN(arg, "=", 2)
				if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
					return fmt.Errorf("invalid guess %q: expected <response_id>=<player_id>", arg)
				}
				guesses[parts[0]] = parts[1]
			}

			req := map[string]any{
				"player_id": id.PlayerID,
				"guesses":   guesses,
			}

			var result GuessResult
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/guesses", id.Code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
