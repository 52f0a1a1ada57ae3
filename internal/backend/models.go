package backend

import "context"

// DefaultModel is the conversation engine that the service assigns to
// free accounts.  It is used whenever the caller does not name one.
const DefaultModel = "text-davinci-002-render-sha"

// Model describes a conversation engine advertised by the models
// endpoint.
type Model struct {
	Slug        string   `json:"slug"`
	MaxTokens   int      `json:"max_tokens"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

type modelsResponse struct {
	Models []Model `json:"models"`
}

// Models returns the list of conversation engines available to the
// account.
func (cl *Client) Models(ctx context.Context) ([]Model, error) {
	resp, err := cl.get(ctx, "/models")
	if err != nil {
		return nil, err
	}
	var mr modelsResponse
	if err := cl.ParseResponse(&mr, resp); err != nil {
		return nil, err
	}
	return mr.Models, nil
}
