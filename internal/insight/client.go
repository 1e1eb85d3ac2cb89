package insight

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/scanlens/scanlens/internal/types"
)

// Remote asks an OpenAI-compatible chat completion endpoint to summarize
// the scan. Failures surface as errors; the scanner downgrades them to a
// missing insight section.
type Remote struct {
	httpc *resty.Client
	model string
}

// NewRemote builds a Remote provider for the given endpoint and model.
func NewRemote(endpoint, apiKey, model string) *Remote {
	httpc := resty.New()
	httpc.SetBaseURL(endpoint)
	if apiKey != "" {
		httpc.SetHeader("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	}
	httpc.SetHeader("Content-Type", "application/json")
	return &Remote{httpc: httpc, model: model}
}

func (r *Remote) Name() string { return "remote" }

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (r *Remote) Summarize(ctx context.Context, res *types.ScanResult) (*types.Insight, error) {
	prompt := buildPrompt(res)
	var out chatResponse
	resp, err := r.httpc.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: r.model,
			Messages: []chatMessage{
				{Role: "system", Content: "You are a static analysis assistant. Reply with a one-paragraph summary followed by recommendation bullet lines starting with '- '."},
				{Role: "user", Content: prompt},
			},
		}).
		SetResult(&out).
		ForceContentType("application/json").
		Post("/chat/completions")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%d from insight endpoint", resp.StatusCode())
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("empty completion from insight endpoint")
	}
	return parseCompletion(out.Choices[0].Message.Content), nil
}

func buildPrompt(res *types.ScanResult) string {
	s := res.Summary
	var b strings.Builder
	fmt.Fprintf(&b, "Scan of %s: %d files, %d issues.\n", res.Root, s.TotalFiles, s.TotalIssues)
	b.WriteString("Issues by severity:")
	for _, sev := range types.Severities() {
		fmt.Fprintf(&b, " %s=%d", sev, s.IssuesBySeverity[sev])
	}
	b.WriteString("\nIssues by type:")
	for _, cat := range types.Categories() {
		fmt.Fprintf(&b, " %s=%d", cat, s.IssuesByType[cat])
	}
	b.WriteString("\nSummarize the risk and recommend next steps.")
	return b.String()
}

// parseCompletion splits a completion into summary text and "- " bullets.
func parseCompletion(content string) *types.Insight {
	ins := &types.Insight{Recommendations: []string{}}
	var summary []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") {
			ins.Recommendations = append(ins.Recommendations, strings.TrimPrefix(trimmed, "- "))
			continue
		}
		if trimmed != "" {
			summary = append(summary, trimmed)
		}
	}
	ins.Summary = strings.Join(summary, " ")
	return ins
}
