package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session management commands",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionJoinCmd())
	cmd.AddCommand(newSessionLeaveCmd())
	cmd.AddCommand(newSessionEndCmd())

	return cmd
}

func newSessionCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <nickname>",
		Short: "Create a new session as host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"nickname": args[0]}

			var result JoinResult
			if err := client.Post("/api/v1/sessions", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveIdentity(Identity{
				Code:     result.Session.Code,
				PlayerID: result.Player.ID,
				Nickname: result.Player.Nickname,
			}); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [code]",
		Short: "Get session details",
		Long:  "Get session details. With no code, uses the saved session.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var code string
			if len(args) == 1 {
				code = strings.ToUpper(args[0])
			} else {
				id, err := requireIdentity()
				if err != nil {
					return err
				}
				code = id.Code
			}

			var result Session
			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code> <nickname>",
		Short: "Join a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, nickname := strings.ToUpper(args[0]), args[1]
			req := map[string]string{"nickname": nickname}

			var result JoinResult
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/join", code), req, &result); err != nil {
				return err
			}

			if err := cfg.SaveIdentity(Identity{
				Code:     result.Session.Code,
				PlayerID: result.Player.ID,
				Nickname: result.Player.Nickname,
			}); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Leave the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireIdentity()
			if err != nil {
				return err
			}

			req := map[string]string{"player_id": id.PlayerID}
			var result LeaveResult
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/leave", id.Code), req, &result); err != nil {
				return err
			}

			if err := cfg.ClearIdentity(); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the current session (host only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireIdentity()
			if err != nil {
				return err
			}

			req := map[string]string{"player_id": id.PlayerID}
			var result EndResult
			if err := client.Delete(fmt.Sprintf("/api/v1/sessions/%s", id.Code), req, &result); err != nil {
				return err
			}

			if err := cfg.ClearIdentity(); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
