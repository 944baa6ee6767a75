package recommend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-backend/internal/careers"
	"career-backend/internal/llm"
)

const validResponse = `Here is your guide:
{"career_paths":[{"title":"Frontend Engineer","match_score":"9/10","description":"Ship UIs","required_skills":["React"],"growth_projection":"High","learning_resources":[{"name":"Docs","type":"course","link":"https://react.dev"}]}],
 "skill_gaps":["Testing"],
 "action_plan":{"short_term":["Build a portfolio"]}}`

func careersInput() careers.Input {
	return careers.Input{
		Skills:     []string{"JavaScript", "React"},
		Hobbies:    []string{"gaming"},
		CareerGoal: "Full Stack Web Developer",
	}
}

type countingCompleter struct {
	calls atomic.Int32
	fn    func(ctx context.Context, prompt string) (string, error)
}

func (c *countingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.calls.Add(1)
	return c.fn(ctx, prompt)
}

func respondWith(text string, err error) *countingCompleter {
	return &countingCompleter{fn: func(context.Context, string) (string, error) { return text, err }}
}

func TestChainFallsThroughToGenerator(t *testing.T) {
	failing := respondWith("", errors.New("503 service unavailable"))
	chain := NewChain(time.Second,
		Provider{Name: "cohere", Client: failing},
		Provider{Name: "openai"},
	)

	res, err := chain.Generate(context.Background(), careersInput())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, careers.Normalize(careers.Generate(careersInput())), res.Recommendation)
	assert.EqualValues(t, 1, failing.calls.Load())
	require.Len(t, res.Attempts, 2)
	assert.Equal(t, OutcomeFailed, res.Attempts[0].Outcome)
	assert.Equal(t, OutcomeSkipped, res.Attempts[1].Outcome)
}

func TestChainWithoutProviders(t *testing.T) {
	res, err := NewChain(0).Generate(context.Background(), careersInput())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Empty(t, res.Attempts)

	var nilChain *Chain
	res, err = nilChain.Generate(context.Background(), careersInput())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
}

func TestChainUsesFirstSuccessfulProvider(t *testing.T) {
	first := respondWith("Sorry, I can only answer in prose.", nil)
	second := respondWith(validResponse, nil)
	third := respondWith(validResponse, nil)
	chain := NewChain(time.Second,
		Provider{Name: "cohere", Client: first},
		Provider{Name: "openai", Client: second},
		Provider{Name: "gemini", Client: third},
	)

	res, err := chain.Generate(context.Background(), careersInput())
	require.NoError(t, err)
	assert.Equal(t, "openai", res.Source)
	assert.EqualValues(t, 0, third.calls.Load())
	assert.Contains(t, res.Attempts[0].Reason, ErrNoJSON.Error())

	rec := res.Recommendation
	require.Len(t, rec.CareerPaths, 1)
	assert.Equal(t, "Frontend Engineer", rec.CareerPaths[0].Title)
	assert.Equal(t, []string{"Build a portfolio"}, rec.ActionPlan.ShortTerm)
	assert.NotNil(t, rec.ActionPlan.MidTerm)
	assert.NotNil(t, rec.ActionPlan.LongTerm)
}

func TestChainSendsSamePromptToEveryProvider(t *testing.T) {
	var prompts []string
	record := func(text string) llm.CompleterFunc {
		return func(_ context.Context, prompt string) (string, error) {
			prompts = append(prompts, prompt)
			return text, nil
		}
	}
	chain := NewChain(time.Second,
		Provider{Name: "cohere", Client: record("{not json}")},
		Provider{Name: "openai", Client: record(validResponse)},
	)

	_, err := chain.Generate(context.Background(), careersInput())
	require.NoError(t, err)
	require.Len(t, prompts, 2)
	assert.Equal(t, prompts[0], prompts[1])
	assert.Equal(t, BuildPrompt(careersInput()), prompts[0])
}

func TestChainProviderTimeoutAdvances(t *testing.T) {
	slow := &countingCompleter{fn: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	fast := respondWith(validResponse, nil)
	chain := NewChain(20*time.Millisecond,
		Provider{Name: "cohere", Client: slow},
		Provider{Name: "openai", Client: fast},
	)

	start := time.Now()
	res, err := chain.Generate(context.Background(), careersInput())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, "openai", res.Source)
	assert.Equal(t, OutcomeFailed, res.Attempts[0].Outcome)
}

func TestChainStopsWhenCallerCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	first := &countingCompleter{fn: func(ctx context.Context, _ string) (string, error) {
		cancel()
		return "", ctx.Err()
	}}
	second := respondWith(validResponse, nil)
	chain := NewChain(time.Second,
		Provider{Name: "cohere", Client: first},
		Provider{Name: "openai", Client: second},
	)

	_, err := chain.Generate(ctx, careersInput())
	assert.ErrorIs(t, err, context.Canceled)
	assert.EqualValues(t, 0, second.calls.Load())
}

func TestChainAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	provider := respondWith(validResponse, nil)

	_, err := NewChain(time.Second, Provider{Name: "cohere", Client: provider}).Generate(ctx, careersInput())
	assert.ErrorIs(t, err, context.Canceled)
	assert.EqualValues(t, 0, provider.calls.Load())
}

func TestChainRejectsMalformedScores(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "template placeholder", body: `{"career_paths":[{"title":"Dev","match_score":"X/10"}]}`},
		{name: "above ten", body: `{"career_paths":[{"title":"Dev","match_score":"15/10"}]}`},
		{name: "missing", body: `{"career_paths":[{"title":"Dev"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewChain(time.Second, Provider{Name: "cohere", Client: respondWith(tt.body, nil)})

			res, err := chain.Generate(context.Background(), careersInput())
			require.NoError(t, err)
			assert.Equal(t, SourceFallback, res.Source)
			require.Len(t, res.Attempts, 1)
			assert.Equal(t, OutcomeFailed, res.Attempts[0].Outcome)
			assert.Contains(t, res.Attempts[0].Reason, "match_score")
			for _, p := range res.Recommendation.CareerPaths {
				assert.Regexp(t, `^([1-9]|10)/10$`, p.MatchScore)
			}
		})
	}
}
