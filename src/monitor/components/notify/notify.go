package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stake-plus/chainfund-monitor/src/monitor/types"
)

const reviewEmbedColor = 0xF39C12

// Discord posts manual-review notices to a fixed channel. Send failures are
// logged and dropped; notifications are best effort.
type Discord struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscord(token, channelID string) (*Discord, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("notify: create discord session: %w", err)
	}
	return &Discord{session: session, channelID: channelID}, nil
}

func (d *Discord) ReviewNeeded(_ context.Context, campaignID uint64, milestone types.Milestone, confidence float64) {
	embed := &discordgo.MessageEmbed{
		Title:       "Milestone needs manual review",
		Description: milestone.Title,
		Color:       reviewEmbedColor,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Campaign", Value: fmt.Sprintf("%d", campaignID), Inline: true},
			{Name: "Milestone", Value: milestone.ID, Inline: true},
			{Name: "Confidence", Value: fmt.Sprintf("%.1f%%", confidence*100), Inline: true},
		},
	}
	if _, err := d.session.ChannelMessageSendEmbed(d.channelID, embed); err != nil {
		log.Printf("notify: review notice for campaign %d milestone %s: %v", campaignID, milestone.ID, err)
	}
}
