package response

import (
	"sort"
	"time"

	"github.com/hotseat-games/millionaire/internal/model"
)

// Choice represents one answer option in API responses
type Choice struct {
	Letter            string `json:"letter"`
	Text              string `json:"text"`
	Removed           bool   `json:"removed"`
	AudienceVoteCount int    `json:"audience_vote_count"`
}

// Question represents a question in API responses
type Question struct {
	ID                string   `json:"id"`
	Text              string   `json:"text"`
	Choices           []Choice `json:"choices"`
	CorrectLetter     string   `json:"correct"`
	Answered          bool     `json:"answered"`
	AnsweredCorrectly bool     `json:"answered_correctly"`
	Passed            bool     `json:"passed"`
}

// QuestionFromModel converts a model.Question, flattening the choice map
// into letter order
func QuestionFromModel(q *model.Question) Question {
	letters := make([]string, 0, len(q.Choices))
	for letter := range q.Choices {
		letters = append(letters, letter)
	}
	sort.Strings(letters)

	choices := make([]Choice, 0, len(letters))
	for _, letter := range letters {
		c := q.Choices[letter]
		choices = append(choices, Choice{
			Letter:            c.Letter,
			Text:              c.Text,
			Removed:           c.Removed,
			AudienceVoteCount: c.AudienceVoteCount,
		})
	}

	return Question{
		ID:                string(q.ID),
		Text:              q.Text,
		Choices:           choices,
		CorrectLetter:     q.CorrectLetter,
		Answered:          q.Answered,
		AnsweredCorrectly: q.AnsweredCorrectly,
		Passed:            q.Passed,
	}
}

// Participant represents a signup in API responses
type Participant struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Lifelines represents lifeline usage in API responses
type Lifelines struct {
	NarrowItDown    bool `json:"narrow_it_down"`
	TextTheAudience bool `json:"text_the_audience"`
	PhoneADev       bool `json:"phone_a_dev"`
}

// Game is the full game snapshot returned by every command
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

// GameFromModel converts a model.Game to the API representation
func GameFromModel(g *model.Game, pointScale []int) Game {
	questions := make([]Question, 0, len(g.Questions))
	for _, q := range g.Questions {
		questions = append(questions, QuestionFromModel(q))
	}

	participants := make([]Participant, 0, len(g.Participants))
	for _, p := range g.Participants {
		participants = append(participants, Participant{Name: p.Name, Phone: p.Phone})
	}

	resp := Game{
		ID:           string(g.ID),
		Title:        g.Title,
		Categories:   g.Categories,
		Questions:    questions,
		Score:        g.Score,
		PointScale:   pointScale,
		Lifelines:    Lifelines(g.Lifelines),
		Participants: participants,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}

	if g.Player != nil {
		resp.Player = &Participant{Name: g.Player.Name, Phone: g.Player.Phone}
	}
	if g.PhoneADevTarget != nil {
		resp.PhoneADevTarget = &Participant{Name: g.PhoneADevTarget.Name, Phone: g.PhoneADevTarget.Phone}
	}
	resp.VoiceCredential = g.VoiceCredential

	return resp
}

// RPCResponse is the JSON-RPC shaped reply for PUT /games/{id}
type RPCResponse struct {
	JSONRPC string `json:"jsonrpc"`
	Result  Game   `json:"result"`
	ID      string `json:"id,omitempty"`
}

// Accepted is the generic webhook acknowledgement
type Accepted struct {
	Status string `json:"status"`
}

// NCCOAction is one step of a voice call control object
type NCCOAction struct {
	Action   string         `json:"action"`
	Text     string         `json:"text,omitempty"`
	From     string         `json:"from,omitempty"`
	Endpoint []NCCOEndpoint `json:"endpoint,omitempty"`
}

// NCCOEndpoint is a connect target within an NCCO
type NCCOEndpoint struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}
