// Package chat keeps tenant/landlord inquiry conversations in Stream Chat.
// Every inquiry gets its own messaging channel; landlord replies made
// through the API are mirrored into the channel so both apps stay in sync.
package chat

import (
	"context"
	"fmt"

	stream "github.com/GetStream/stream-chat-go/v5"

	"ke.kejani.api/internal/config"
)

type Client struct {
	stream *stream.Client
}

// New builds a Stream Chat client from API credentials.
func New(cfg config.ChatConfig) (*Client, error) {
	streamClient, err := stream.NewClient(cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create Stream client: %w", err)
	}
	return &Client{stream: streamClient}, nil
}

// CreateInquiryChannel opens the messaging channel for one inquiry, with
// the tenant and landlord as its only members, and posts the opening
// message as the tenant. Returns the channel id.
func (c *Client) CreateInquiryChannel(ctx context.Context, inquiryID, tenantUID, landlordUID, listingTitle, message string) (string, error) {
	// Stream requires members to exist before they can join a channel.
	_, err := c.stream.UpsertUsers(ctx, &stream.User{ID: tenantUID}, &stream.User{ID: landlordUID})
	if err != nil {
		return "", fmt.Errorf("failed to upsert chat users: %w", err)
	}

	channelID := "inquiry-" + inquiryID
	resp, err := c.stream.CreateChannel(ctx, "messaging", channelID, tenantUID, &stream.ChannelRequest{
		Members: []string{tenantUID, landlordUID},
		ExtraData: map[string]interface{}{
			"inquiry_id":    inquiryID,
			"listing_title": listingTitle,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create inquiry channel: %w", err)
	}

	if _, err := resp.Channel.SendMessage(ctx, &stream.Message{Text: message}, tenantUID); err != nil {
		return "", fmt.Errorf("failed to post opening message: %w", err)
	}

	return channelID, nil
}

// SendMessage posts text into an existing inquiry channel as the given user.
func (c *Client) SendMessage(ctx context.Context, channelID, senderUID, text string) error {
	channel := c.stream.Channel("messaging", channelID)
	if _, err := channel.SendMessage(ctx, &stream.Message{Text: text}, senderUID); err != nil {
		return fmt.Errorf("failed to send channel message: %w", err)
	}
	return nil
}
