package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// ScrapeCommand is a command to run the scrape-and-embed pipeline for
// one product.
type ScrapeCommand struct {
	ProductID string `json:"product_id"`
	TaskID    string `json:"task_id"`
}

// ScrapeCommander sends scrape commands.
type ScrapeCommander struct {
	sender Sender
}

// NewScrapeCommander returns new ScrapeCommander using provided sender for sending messages.
func NewScrapeCommander(sender Sender) ScrapeCommander {
	return ScrapeCommander{
		sender: sender,
	}
}

// SendScrapeCommand sends scrape command for product with the provided task handle.
func (c ScrapeCommander) SendScrapeCommand(ctx context.Context, productID, taskID string) error {
	cmd := ScrapeCommand{
		ProductID: productID,
		TaskID:    taskID,
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal scrape command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
