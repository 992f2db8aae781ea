package internai

import (
	"context"

	"github.com/spigell/internai/internal/types"
)

// ListAgents reads the agent registry status.
func (c *Client) ListAgents(ctx context.Context) (*types.AgentListing, error) {
	var listing types.AgentListing
	if err := c.getJSON(ctx, agentsPath, &listing); err != nil {
		return nil, err
	}

	return &listing, nil
}
