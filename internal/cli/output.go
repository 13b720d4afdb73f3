package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
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
	case Game:
		o.printGame(v)
	case GameList:
		o.printGameList(v)
	case RPCResult:
		o.printGame(v.Result)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Choice response type (matches API)
type Choice struct {
	Letter            string `json:"letter"`
	Text              string `json:"text"`
	Removed           bool   `json:"removed"`
	AudienceVoteCount int    `json:"audience_vote_count"`
}

// Question response type
type Question struct {
	ID                string   `json:"id"`
	Text              string   `json:"text"`
	Choices           []Choice `json:"choices"`
	CorrectLetter     string   `json:"correct"`
	Answered          bool     `json:"answered"`
	AnsweredCorrectly bool     `json:"answered_correctly"`
	Passed            bool     `json:"passed"`
}

// Participant response type
type Participant struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Lifelines response type
type Lifelines struct {
	NarrowItDown    bool `json:"narrow_it_down"`
	TextTheAudience bool `json:"text_the_audience"`
	PhoneADev       bool `json:"phone_a_dev"`
}

// Game response type
type Game struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Categories      []string      `json:"categories"`
	Questions       []Question    `json:"questions"`
	Score           int           `json:"score"`
	PointScale      []int         `json:"point_scale"`
	Lifelines       Lifelines     `json:"life_lines"`
	Player          *Participant  `json:"player"`
	Participants    []Participant `json:"participants"`
	PhoneADevTarget *Participant  `json:"phone_a_dev_target,omitempty"`
	VoiceCredential string        `json:"jwt,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// GameList is the map of games returned by the list endpoint
type GameList map[string]Game

// RPCResult is the JSON-RPC shaped command reply
type RPCResult struct {
	JSONRPC string `json:"jsonrpc"`
	Result  Game   `json:"result"`
	ID      string `json:"id,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Title: %s\n", g.Title)
	if len(g.Categories) > 0 {
		fmt.Printf("Categories: %s\n", strings.Join(g.Categories, ", "))
	}
	fmt.Printf("Score: $%d\n", g.Score)

	if g.Player != nil {
		fmt.Printf("Player: %s (%s)\n", g.Player.Name, g.Player.Phone)
	}

	used := []string{}
	if g.Lifelines.NarrowItDown {
		used = append(used, "narrow_it_down")
	}
	if g.Lifelines.TextTheAudience {
		used = append(used, "text_the_audience")
	}
	if g.Lifelines.PhoneADev {
		used = append(used, "phone_a_dev")
	}
	if len(used) > 0 {
		fmt.Printf("Lifelines used: %s\n", strings.Join(used, ", "))
	}

	if g.PhoneADevTarget != nil {
		fmt.Printf("Calling: %s (%s)\n", g.PhoneADevTarget.Name, g.PhoneADevTarget.Phone)
	}

	if len(g.Participants) > 0 {
		fmt.Printf("Participants (%d):\n", len(g.Participants))
		for _, p := range g.Participants {
			fmt.Printf("  - %s (%s)\n", p.Name, p.Phone)
		}
	}

	if len(g.Questions) > 0 {
		current := g.Questions[len(g.Questions)-1]
		fmt.Printf("\nQuestion %d: %s\n", len(g.Questions), current.Text)
		for _, c := range current.Choices {
			if c.Removed {
				fmt.Printf("  %s) -removed-\n", c.Letter)
				continue
			}
			votes := ""
			if c.AudienceVoteCount > 0 {
				votes = fmt.Sprintf(" [%d votes]", c.AudienceVoteCount)
			}
			fmt.Printf("  %s) %s%s\n", c.Letter, c.Text, votes)
		}
		if current.Answered {
			verdict := "wrong"
			if current.AnsweredCorrectly {
				verdict = "correct"
			}
			fmt.Printf("Answered: %s (correct answer was %s)\n", verdict, current.CorrectLetter)
		} else if current.Passed {
			fmt.Println("Passed")
		}
	}
}

func (o *Output) printGameList(games GameList) {
	if len(games) == 0 {
		fmt.Println("No games")
		return
	}
	fmt.Printf("Games (%d):\n", len(games))
	for id, g := range games {
		fmt.Printf("  - %s: %s ($%d, %d questions)\n", id, g.Title, g.Score, len(g.Questions))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
