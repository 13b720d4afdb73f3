package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/hotseat-games/millionaire/internal/dependencies/clock"
	"github.com/hotseat-games/millionaire/internal/dependencies/random"
	"github.com/hotseat-games/millionaire/internal/model"
	"github.com/hotseat-games/millionaire/internal/services/audience"
	"github.com/hotseat-games/millionaire/internal/services/directory"
	"github.com/hotseat-games/millionaire/internal/services/generator"
	"github.com/hotseat-games/millionaire/internal/services/scoring"
	"github.com/hotseat-games/millionaire/internal/services/voice"
	"github.com/hotseat-games/millionaire/internal/storage"
)

// Lifeline names accepted by the life_line command
const (
	LifelineNarrowItDown    = "narrow_it_down"
	LifelinePhoneADev       = "phone_a_dev"
	LifelineTextTheAudience = "text_the_audience"
)

// questionIDAlphabet is the character set for the random question id suffix
const questionIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Controller owns the command surface of a game session. Commands are
// load-mutate-save over the whole aggregate; callers serialize commands
// per game id. Only audience voting bypasses this path (see audience).
type Controller struct {
	storage   storage.Storage
	generator generator.Generator
	scoring   *scoring.Service
	directory *directory.Service
	voice     *voice.Service
	audience  *audience.Service
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	generator generator.Generator,
	scoringService *scoring.Service,
	directoryService *directory.Service,
	voiceService *voice.Service,
	audienceService *audience.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   storage,
		generator: generator,
		scoring:   scoringService,
		directory: directoryService,
		voice:     voiceService,
		audience:  audienceService,
		clock:     clock,
		random:    random,
		logger:    logger,
	}
}

// CreateGame initializes a new game session with its system prompt
func (c *Controller) CreateGame(ctx context.Context, title string, categories []string) (*model.Game, error) {
	now := c.clock.Now()

	game := &model.Game{
		ID:         model.GameID(uuid.New().String()),
		Title:      title,
		Categories: categories,
		Questions:  []*model.Question{},
		Messages: []model.Message{
			{Role: model.RoleSystem, Content: systemPrompt(categories)},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("title", title),
		slog.Int("categories", len(categories)),
	)

	return game, nil
}

// systemPrompt builds the generation contract for a game's categories
func systemPrompt(categories []string) string {
	schema, _ := json.Marshal(generatedQuestion{
		Question: "The text for the question",
		Choices: []generatedChoice{
			{Letter: "The letter choice", Text: "The choice"},
		},
		Correct: "The correct choice",
	})

	return "You are a helpful AI assistant. " +
		"You answer the user's queries. " +
		"You NEVER return anything but a JSON string. " +
		`Let's play "Who wants to be a millionaire". ` +
		"The questions should be themed on " + strings.Join(categories, ", ") + ". " +
		"Return the question as a JSON object following this schema: " + string(schema) + ". " +
		"When you want to use a blank in a question, use <blank>. " +
		"There should always be 4 choices and 1 correct answer."
}

// GetGame retrieves a game by id. This is also the load_game command: a
// no-op refresh returning the current snapshot.
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, id)
}

// ListGames returns all known games
func (c *Controller) ListGames(ctx context.Context) ([]*model.Game, error) {
	return c.storage.ListGames(ctx)
}

// Ask generates and appends the next question
func (c *Controller) Ask(ctx context.Context, id model.GameID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := c.ask(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// ask appends the generation prompt, invokes the generator, parses the reply
// into a new current question and persists the game. On a malformed reply the
// assistant turn is kept in history (and persisted) so a retry has context,
// but no question is appended.
func (c *Controller) ask(ctx context.Context, game *model.Game) (*model.Question, error) {
	tier := c.scoring.NextTierValue(game.Questions)
	game.Messages = append(game.Messages, model.Message{
		Role:    model.RoleUser,
		Content: fmt.Sprintf("Generate a question worth $%d for me please.", tier),
	})

	raw, err := c.generator.Generate(ctx, game.Messages)
	if err != nil {
		return nil, fmt.Errorf("generate question: %w", err)
	}

	game.Messages = append(game.Messages, model.Message{
		Role:    model.RoleAssistant,
		Content: raw,
	})

	parsed, parseErr := parseGeneratedQuestion(raw)
	if parseErr != nil {
		game.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveGame(ctx, game); err != nil {
			return nil, err
		}
		return nil, parseErr
	}

	question := &model.Question{
		ID:            model.QuestionID(fmt.Sprintf("%d_%s", len(game.Questions)+1, c.random.String(8, questionIDAlphabet))),
		Text:          parsed.Question,
		Choices:       make(map[string]*model.Choice, len(parsed.Choices)),
		CorrectLetter: model.NormalizeLetter(parsed.Correct),
	}
	for _, choice := range parsed.Choices {
		letter := model.NormalizeLetter(choice.Letter)
		question.Choices[letter] = &model.Choice{
			Letter: letter,
			Text:   choice.Text,
		}
	}

	game.Questions = append(game.Questions, question)
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("question asked",
		slog.String("game_id", string(game.ID)),
		slog.String("question_id", string(question.ID)),
		slog.Int("tier", tier),
	)

	return question, nil
}

// Answer resolves the current question against the player's letter and
// recomputes the score
func (c *Controller) Answer(ctx context.Context, id model.GameID, letter string) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	question := game.CurrentQuestion()
	if question == nil {
		return nil, model.ErrNoQuestions
	}
	if question.Answered {
		return nil, model.ErrQuestionAlreadyAnswered
	}

	question.Answered = true
	question.AnsweredCorrectly = model.NormalizeLetter(letter) == question.CorrectLetter
	game.Score = c.scoring.Score(game.Questions)
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("question answered",
		slog.String("game_id", string(game.ID)),
		slog.String("question_id", string(question.ID)),
		slog.Bool("correct", question.AnsweredCorrectly),
		slog.Int("score", game.Score),
	)

	return game, nil
}

// Pass marks the current question passed and immediately asks the next one
func (c *Controller) Pass(ctx context.Context, id model.GameID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	question := game.CurrentQuestion()
	if question == nil {
		return nil, model.ErrNoQuestions
	}

	question.Passed = true

	if _, err := c.ask(ctx, game); err != nil {
		return nil, err
	}

	game.Score = c.scoring.Score(game.Questions)
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("question passed",
		slog.String("game_id", string(game.ID)),
		slog.String("question_id", string(question.ID)),
	)

	return game, nil
}

// FindPlayer picks the game's player uniformly at random from the signup
// directory and asks the opening question
func (c *Controller) FindPlayer(ctx context.Context, id model.GameID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if game.HasPlayer() {
		return nil, model.ErrPlayerAlreadyChosen
	}

	signups, err := c.directory.ListSignups(ctx, game.ID, "")
	if err != nil {
		return nil, err
	}
	if len(signups) == 0 {
		return nil, model.ErrNoParticipants
	}

	player := signups[c.random.Intn(len(signups))]
	game.Player = &player
	game.Participants = excludeParticipant(signups, player.Phone)
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("player chosen",
		slog.String("game_id", string(game.ID)),
		slog.String("player", player.Name),
	)

	if _, err := c.ask(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// CallPlayer issues a fresh ephemeral voice credential for the game
func (c *Controller) CallPlayer(ctx context.Context, id model.GameID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	credential, err := c.voice.IssueCredential(game.ID)
	if err != nil {
		return nil, fmt.Errorf("issue voice credential: %w", err)
	}
	game.VoiceCredential = credential
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// Lifeline dispatches a life_line command to one of the three aids
func (c *Controller) Lifeline(ctx context.Context, id model.GameID, which string) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	switch which {
	case LifelineNarrowItDown:
		err = c.narrowItDown(ctx, game)
	case LifelinePhoneADev:
		err = c.phoneADev(ctx, game)
	case LifelineTextTheAudience:
		err = c.textTheAudience(ctx, game)
	default:
		return nil, model.ErrInvalidLifeline
	}
	if err != nil {
		return nil, err
	}

	c.logger.Info("lifeline used",
		slog.String("game_id", string(game.ID)),
		slog.String("lifeline", which),
	)

	return game, nil
}

// narrowItDown eliminates incorrect choices on the current question.
// With 3 incorrect choices exactly 1 is removed, leaving the correct answer
// plus 2 candidates visible.
func (c *Controller) narrowItDown(ctx context.Context, game *model.Game) error {
	if game.Lifelines.NarrowItDown {
		return model.ErrLifelineAlreadyUsed
	}

	question := game.CurrentQuestion()
	if question == nil {
		return model.ErrNoQuestions
	}
	if question.Answered {
		return model.ErrQuestionAlreadyAnswered
	}

	incorrect := make([]string, 0, len(question.Choices))
	for letter := range question.Choices {
		if letter != question.CorrectLetter {
			incorrect = append(incorrect, letter)
		}
	}
	sort.Strings(incorrect)
	c.random.Shuffle(incorrect)

	for _, letter := range incorrect[:len(incorrect)/2] {
		question.Choices[letter].Removed = true
	}

	game.Lifelines.NarrowItDown = true
	game.UpdatedAt = c.clock.Now()

	return c.storage.SaveGame(ctx, game)
}

// phoneADev issues a voice credential and picks a random participant to call
func (c *Controller) phoneADev(ctx context.Context, game *model.Game) error {
	if game.Lifelines.PhoneADev {
		return model.ErrLifelineAlreadyUsed
	}

	credential, err := c.voice.IssueCredential(game.ID)
	if err != nil {
		return fmt.Errorf("issue voice credential: %w", err)
	}

	var excludePhone string
	if game.Player != nil {
		excludePhone = game.Player.Phone
	}

	signups, err := c.directory.ListSignups(ctx, game.ID, excludePhone)
	if err != nil {
		return err
	}
	if len(signups) == 0 {
		return model.ErrNoParticipants
	}

	target := signups[c.random.Intn(len(signups))]

	game.Lifelines.PhoneADev = true
	game.VoiceCredential = credential
	game.Participants = signups
	game.PhoneADevTarget = &target
	game.UpdatedAt = c.clock.Now()

	return c.storage.SaveGame(ctx, game)
}

// textTheAudience binds the inbound messaging channel to this game
func (c *Controller) textTheAudience(ctx context.Context, game *model.Game) error {
	if game.Lifelines.TextTheAudience {
		return model.ErrLifelineAlreadyUsed
	}

	game.Lifelines.TextTheAudience = true
	game.UpdatedAt = c.clock.Now()

	c.audience.Bind(game.ID)

	return c.storage.SaveGame(ctx, game)
}

// excludeParticipant filters out the participant with the given phone
func excludeParticipant(participants []model.Participant, phone string) []model.Participant {
	filtered := make([]model.Participant, 0, len(participants))
	for _, p := range participants {
		if p.Phone == phone {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
