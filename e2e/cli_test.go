package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotseat-games/millionaire/internal/api"
	"github.com/hotseat-games/millionaire/internal/factory"
	"github.com/hotseat-games/millionaire/internal/testutil"
)

const generatedReply = `{
	"question": "Which planet is known as the red planet?",
	"choices": [
		{"letter": "A", "text": "Venus"},
		{"letter": "B", "text": "Mars"},
		{"letter": "C", "text": "Jupiter"},
		{"letter": "D", "text": "Saturn"}
	],
	"correct": "B"
}`

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(projectRoot, "bin", "hotseat-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/hotseat")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// startTestServer serves the API on a real port backed by mocked dependencies
func startTestServer(t *testing.T) (string, *factory.TestApp, func()) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:           testutil.NopLogger(),
		GameController:   app.GameController,
		ScoringService:   app.ScoringService,
		AudienceService:  app.AudienceService,
		DirectoryService: app.DirectoryService,
		VoiceFromNumber:  "+15550000",
	})

	server := &http.Server{Handler: router}
	go func() {
		_ = server.Serve(listener)
	}()

	serverURL := "http://" + listener.Addr().String()
	waitForServer(t, serverURL+"/health")

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
	return serverURL, app, shutdown
}

func waitForServer(t *testing.T, healthURL string) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(healthURL)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("server did not become ready")
}

type cliGame struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Score     int    `json:"score"`
	Questions []struct {
		Text    string `json:"text"`
		Choices []struct {
			Letter  string `json:"letter"`
			Removed bool   `json:"removed"`
		} `json:"choices"`
		Answered          bool `json:"answered"`
		AnsweredCorrectly bool `json:"answered_correctly"`
	} `json:"questions"`
	Lifelines struct {
		NarrowItDown bool `json:"narrow_it_down"`
	} `json:"life_lines"`
}

type cliRPCResult struct {
	Result cliGame `json:"result"`
}

func TestCLIGameFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	serverURL, app, shutdown := startTestServer(t)
	defer shutdown()

	cli := newCLIRunner(t, serverURL)

	// Health
	output, err := cli.run("health")
	require.NoError(t, err, output)
	assert.Contains(t, output, "ok")

	// Create a game
	output, err = cli.run("game", "create", "--title", "E2E Trivia", "--category", "space")
	require.NoError(t, err, output)

	var game cliGame
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	require.NotEmpty(t, game.ID)
	assert.Equal(t, "E2E Trivia", game.Title)

	// Sign up participants
	for i, name := range []string{"Ada", "Grace"} {
		output, err = cli.run("player", "add",
			"--game", game.ID,
			"--name", name,
			"--number", fmt.Sprintf("+1555000%d", i),
		)
		require.NoError(t, err, output)
	}

	// Ask a question
	app.MockGenerator.QueueResponse(generatedReply)
	app.MockRandom.QueueString("abcdefgh")
	output, err = cli.run("game", "ask", game.ID)
	require.NoError(t, err, output)

	var rpc cliRPCResult
	require.NoError(t, json.Unmarshal([]byte(output), &rpc))
	require.Len(t, rpc.Result.Questions, 1)
	assert.Contains(t, rpc.Result.Questions[0].Text, "red planet")

	// Narrow it down
	output, err = cli.run("game", "lifeline", game.ID, "narrow_it_down")
	require.NoError(t, err, output)
	require.NoError(t, json.Unmarshal([]byte(output), &rpc))
	assert.True(t, rpc.Result.Lifelines.NarrowItDown)

	removed := 0
	for _, c := range rpc.Result.Questions[0].Choices {
		if c.Removed {
			removed++
		}
	}
	assert.Equal(t, 1, removed)

	// Answer correctly
	output, err = cli.run("game", "answer", game.ID, "b")
	require.NoError(t, err, output)
	require.NoError(t, json.Unmarshal([]byte(output), &rpc))
	assert.True(t, rpc.Result.Questions[0].AnsweredCorrectly)
	assert.Greater(t, rpc.Result.Score, 0)

	// Snapshot agrees
	output, err = cli.run("game", "get", game.ID)
	require.NoError(t, err, output)
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, rpc.Result.Score, game.Score)
}

func TestCLIUnknownGame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	serverURL, _, shutdown := startTestServer(t)
	defer shutdown()

	cli := newCLIRunner(t, serverURL)

	output, err := cli.run("game", "get", "missing")
	require.Error(t, err)
	assert.Contains(t, output, "GAME_NOT_FOUND")
}
