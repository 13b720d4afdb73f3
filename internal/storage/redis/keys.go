package redis

import (
	"fmt"

	"github.com/hotseat-games/millionaire/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "hotseat"

// gameKey returns the Redis key for a Game document
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the SET of all game ids
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// votesKey returns the Redis key for the per-question vote counter HASH
func votesKey(gameID model.GameID, questionID model.QuestionID) string {
	return fmt.Sprintf("%s:votes:%s:%s", keyPrefix, gameID, questionID)
}

// votersKey returns the Redis key for the per-question respondent SET
func votersKey(gameID model.GameID, questionID model.QuestionID) string {
	return fmt.Sprintf("%s:voters:%s:%s", keyPrefix, gameID, questionID)
}

// signupsKey returns the Redis key for a game's signup LIST
func signupsKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:signups:%s", keyPrefix, gameID)
}
