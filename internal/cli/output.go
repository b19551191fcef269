package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case JoinResult:
		o.printJoinResult(v)
	case SubmitResult:
		o.printSubmitResult(v)
	case GuessResult:
		o.printGuessResult(v)
	case LeaveResult:
		o.printLeaveResult(v)
	case EndResult:
		o.printEndResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	Nickname    string `json:"nickname"`
	IsHost      bool   `json:"is_host"`
	IsConnected bool   `json:"is_connected"`
}

// AnonymousResponse response type
type AnonymousResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ResponseResult response type
type ResponseResult struct {
	ResponseID string            `json:"response_id"`
	Text       string            `json:"text"`
	Author     string            `json:"author"`
	GuessedBy  map[string]string `json:"guessed_by"`
}

// RoundResults response type
type RoundResults struct {
	Responses []ResponseResult `json:"responses"`
	Penalties map[string]int   `json:"penalties"`
}

// Round response type
type Round struct {
	RoundNumber int                 `json:"round_number"`
	Prompt      string              `json:"prompt"`
	Responded   []string            `json:"responded"`
	Guessed     []string            `json:"guessed"`
	Responses   []AnonymousResponse `json:"responses,omitempty"`
	Results     *RoundResults       `json:"results,omitempty"`
}

// Session response type
type Session struct {
	Code         string   `json:"code"`
	HostID       string   `json:"host_id"`
	Phase        string   `json:"phase"`
	CurrentRound int      `json:"current_round"`
	Players      []Player `json:"players"`
	Round        *Round   `json:"round,omitempty"`
}

// JoinResult combines session and player
type JoinResult struct {
	Session Session `json:"session"`
	Player  Player  `json:"player"`
}

// SubmitResult is returned after submitting a response
type SubmitResult struct {
	Session      Session             `json:"session"`
	PhaseChanged bool                `json:"phase_changed"`
	Responses    []AnonymousResponse `json:"responses,omitempty"`
}

// GuessResult is returned after submitting guesses
type GuessResult struct {
	Session      Session       `json:"session"`
	PhaseChanged bool          `json:"phase_changed"`
	Results      *RoundResults `json:"results,omitempty"`
}

// LeaveResult is returned after leaving a session
type LeaveResult struct {
	Session Session `json:"session"`
	NewHost *Player `json:"new_host,omitempty"`
}

// EndResult is the final snapshot of an ended session
type EndResult struct {
	Code         string `json:"code"`
	RoundsPlayed int    `json:"rounds_played"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	hostStr := ""
	if p.IsHost {
		hostStr = " [host]"
	}
	connStr := ""
	if !p.IsConnected {
		connStr = " (disconnected)"
	}
	fmt.Printf("  - %s (%s)%s%s\n", p.Nickname, p.ID, hostStr, connStr)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.Code)
	fmt.Printf("Phase: %s\n", s.Phase)
	fmt.Printf("Players (%d):\n", len(s.Players))
	for _, p := range s.Players {
		o.printPlayer(p)
	}
	if s.Round != nil {
		o.printRound(*s.Round)
	}
}

func (o *Output) printRound(r Round) {
	fmt.Printf("\nRound %d: %s\n", r.RoundNumber+1, r.Prompt)
	if len(r.Responded) > 0 {
		fmt.Printf("Responded: %d\n", len(r.Responded))
	}
	if len(r.Guessed) > 0 {
		fmt.Printf("Guessed: %d\n", len(r.Guessed))
	}
	if len(r.Responses) > 0 {
		fmt.Println("Responses:")
		for _, resp := range r.Responses {
			fmt.Printf("  %s: %q\n", resp.ID, resp.Text)
		}
	}
	if r.Results != nil {
		o.printResults(*r.Results)
	}
}

func (o *Output) printResults(res RoundResults) {
	fmt.Println("\nReveal:")
	for _, r := range res.Responses {
		fmt.Printf("  %q was written by %s\n", r.Text, r.Author)
	}

	fmt.Println("Penalties:")
	players := make([]string, 0, len(res.Penalties))
	for pid := range res.Penalties {
		players = append(players, pid)
	}
	sort.Strings(players)
	for _, pid := range players {
		fmt.Printf("  %s: %d\n", pid, res.Penalties[pid])
	}
}

func (o *Output) printJoinResult(j JoinResult) {
	fmt.Printf("Joined as %s (%s)\n\n", j.Player.Nickname, j.Player.ID)
	o.printSession(j.Session)
}

func (o *Output) printSubmitResult(s SubmitResult) {
	fmt.Println("Response submitted")
	if s.PhaseChanged {
		fmt.Println("All responses are in - guessing has started!")
		if len(s.Responses) > 0 {
			fmt.Println("Responses:")
			for _, r := range s.Responses {
				fmt.Printf("  %s: %q\n", r.ID, r.Text)
			}
		}
	}
}

func (o *Output) printGuessResult(g GuessResult) {
	fmt.Println("Guesses submitted")
	if g.PhaseChanged && g.Results != nil {
		o.printResults(*g.Results)
	}
}

func (o *Output) printLeaveResult(l LeaveResult) {
	fmt.Println("Left the session")
	if l.NewHost != nil {
		fmt.Printf("New host: %s (%s)\n", l.NewHost.Nickname, l.NewHost.ID)
	}
}

func (o *Output) printEndResult(e EndResult) {
	fmt.Printf("Session %s ended after %d round(s)\n", e.Code, e.RoundsPlayed)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
