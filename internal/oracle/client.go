package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dvranic/runquest/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// example API call
// https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent?key=TODO

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatTurn is one prior exchange handed to the model as context.
type ChatTurn struct {
	Role string
	Text string
}

// Client talks to the Gemini generateContent REST endpoint.
type Client struct {
	apiURL     string // https://generativelanguage.googleapis.com
	apiKey     string
	model      string // e.g. gemini-1.5-flash
	httpClient *http.Client
}

func NewClient(apiURL, apiKey, model string, httpClient *http.Client) *Client {
	return &Client{
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends a single prompt and returns the raw model text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, []content{
		{Parts: []part{{Text: prompt}}},
	})
}

// GenerateChat sends the prior conversation plus the new message and
// returns the raw model text.
func (c *Client) GenerateChat(ctx context.Context, history []ChatTurn, message string) (string, error) {
	contents := make([]content, 0, len(history)+1)
	for _, turn := range history {
		role := turn.Role
		if role != RoleUser {
			role = RoleModel
		}
		contents = append(contents, content{
			Role:  role,
			Parts: []part{{Text: turn.Text}},
		})
	}
	contents = append(contents, content{
		Role:  RoleUser,
		Parts: []part{{Text: message}},
	})
	return c.generate(ctx, contents)
}

func (c *Client) generate(ctx context.Context, contents []content) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "oracleClient.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("model", c.model))

	reqBytes, err := json.Marshal(generateRequest{Contents: contents})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.apiURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Tracef("oracle generate response [%d]: %s", resp.StatusCode, respBytes)
		return "", fmt.Errorf("generate response status: %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBytes, &genResp); err != nil {
		return "", fmt.Errorf("unmarshal generate response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generate response without candidates")
	}

	var sb strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
