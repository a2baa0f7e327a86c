package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathforge/mathforge/internal/auth"
	"github.com/mathforge/mathforge/internal/catalog"
	"github.com/mathforge/mathforge/internal/progress"
	"github.com/mathforge/mathforge/internal/store"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// testEnv points the database and log file at a temp dir and signs in as
// user-1 when signedIn is set. It returns the database path.
func testEnv(t *testing.T, signedIn bool) string {
	t.Helper()
	dir := t.TempDir()
	db := filepath.Join(dir, "mathforge.db")
	t.Setenv("MATHFORGE_DB", db)
	t.Setenv("MATHFORGE_LOG_FILE", filepath.Join(dir, "mathforge.log"))
	t.Setenv("MATHFORGE_BANK", "")
	t.Setenv("MATHFORGE_AUTH_SECRET", "test-secret")
	t.Setenv("MATHFORGE_AUTH_TOKEN", "")
	if signedIn {
		tok, err := auth.NewVerifier("test-secret").Issue(auth.Identity{UserID: "user-1", Email: "ada@example.com"}, time.Hour)
		require.NoError(t, err)
		t.Setenv("MATHFORGE_AUTH_TOKEN", tok)
	}
	return db
}

func TestTopics_DemoJSON(t *testing.T) {
	out, err := execute(t, "topics", "--demo", "--json")
	require.NoError(t, err)

	var got struct {
		Overall float64 `json:"overall"`
		Topics  []struct {
			ID         string  `json:"id"`
			Completed  int     `json:"completed"`
			Total      int     `json:"total"`
			Percentage float64 `json:"percentage"`
		} `json:"topics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	want, err := progress.Overall(catalog.Demo())
	require.NoError(t, err)
	assert.InDelta(t, want, got.Overall, 1e-9)
	require.Len(t, got.Topics, len(catalog.Demo()))
	for _, tp := range got.Topics {
		assert.LessOrEqual(t, tp.Completed, tp.Total, tp.ID)
	}
}

func TestTopics_TableUsesStoredProgress(t *testing.T) {
	db := testEnv(t, true)

	st, err := store.Open(db)
	require.NoError(t, err)
	leaf := catalog.Default().Leaves()[0]
	ps, err := catalog.Default().Problems(leaf.ID)
	require.NoError(t, err)
	_, err = st.ProgressRepo().RecordCompletion(context.Background(), store.CompletionData{
		UserID: "user-1", SubtopicID: leaf.ID, ProblemID: ps[0].ID,
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := execute(t, "topics", "--demo=false", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Overall progress:")
	assert.Contains(t, out, leaf.ID)
	assert.Contains(t, out, "   1/")
}

func TestWhoami(t *testing.T) {
	testEnv(t, false)
	out, err := execute(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")

	testEnv(t, true)
	out, err = execute(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "user-1")
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "Solved: 0 problems")
}

func TestWhoami_BadToken(t *testing.T) {
	testEnv(t, false)
	t.Setenv("MATHFORGE_AUTH_TOKEN", "not-a-jwt")
	_, err := execute(t, "whoami")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestReset(t *testing.T) {
	db := testEnv(t, true)

	st, err := store.Open(db)
	require.NoError(t, err)
	for _, id := range []string{"p1", "p2"} {
		_, err := st.ProgressRepo().RecordCompletion(context.Background(), store.CompletionData{
			UserID: "user-1", SubtopicID: "differentiation", ProblemID: id,
		})
		require.NoError(t, err)
	}
	require.NoError(t, st.Close())

	out, err := execute(t, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2 completed problems.")

	st, err = store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	counts, err := st.ProgressRepo().CompletedCounts(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestReset_RequiresSignIn(t *testing.T) {
	testEnv(t, false)
	_, err := execute(t, "reset", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")
}

func TestPractice_UnknownSubtopic(t *testing.T) {
	testEnv(t, true)
	_, err := execute(t, "practice", "no-such-subtopic")
	require.ErrorIs(t, err, catalog.ErrUnknownTopic)
}

func TestGroupUsage(t *testing.T) {
	events := []store.LLMRequestRecord{
		{LLMRequestEventData: store.LLMRequestEventData{Purpose: "problem-draft", Model: "gpt-4o-mini", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true}},
		{LLMRequestEventData: store.LLMRequestEventData{Purpose: "problem-draft", Model: "gpt-4o-mini", InputTokens: 10, OutputTokens: 5, LatencyMs: 100}},
		{LLMRequestEventData: store.LLMRequestEventData{Purpose: "other", Model: "gemini-2.0-flash", InputTokens: 1, OutputTokens: 1, Success: true}},
	}
	got := groupUsage(events, func(e store.LLMRequestRecord) string { return e.Purpose })
	require.Len(t, got, 2)
	assert.Equal(t, usage{Key: "problem-draft", Calls: 2, Failures: 1, InputTokens: 110, OutputTokens: 55, LatencyMs: 300}, got[0])
	assert.Equal(t, int64(150), got[0].avgLatency())
	assert.Equal(t, "other", got[1].Key)

	var out bytes.Buffer
	writeUsage(&out, events)
	assert.Contains(t, out.String(), "Estimated Cost (USD)")
	assert.NotContains(t, out.String(), "partial")
}

func TestFilterPurpose(t *testing.T) {
	events := []store.LLMRequestRecord{
		{Sequence: 3, LLMRequestEventData: store.LLMRequestEventData{Purpose: "a"}},
		{Sequence: 2, LLMRequestEventData: store.LLMRequestEventData{Purpose: "b"}},
		{Sequence: 1, LLMRequestEventData: store.LLMRequestEventData{Purpose: "a"}},
	}
	assert.Len(t, filterPurpose(events, "", 1), 3)
	got := filterPurpose(events, "a", 1)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].Sequence)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "∫ x", truncate("∫ x dx", 3))
}
