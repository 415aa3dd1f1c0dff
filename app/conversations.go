package app

import (
	"context"
	"sort"

	"github.com/sidrapp/sidr-be/model"
	"golang.org/x/sync/errgroup"
)

type conversationsDB interface {
	GetLatestDirectMessages(ctx context.Context, userId string) ([]*model.ConversationSummary, error)
	GetCharityPageConversations(ctx context.Context, userId string) ([]*model.ConversationSummary, error)
}

// ListConversations merges direct conversations with every followed or owned
// charity page channel, newest first. Channels without history get the
// "No messages" placeholder and sort last.
func ListConversations(ctx context.Context, database conversationsDB, userId string) ([]*model.ConversationSummary, error) {
	var direct, pages []*model.ConversationSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		direct, err = database.GetLatestDirectMessages(gctx, userId)
		return err
	})
	g.Go(func() (err error) {
		pages, err = database.GetCharityPageConversations(gctx, userId)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return MergeConversations(direct, pages), nil
}

func MergeConversations(direct []*model.ConversationSummary, pages []*model.ConversationSummary) []*model.ConversationSummary {
	merged := make([]*model.ConversationSummary, 0, len(direct)+len(pages))
	merged = append(merged, direct...)
	for _, page := range pages {
		if page.LastMessageId == nil {
			placeholder := model.NoMessagesPlaceholder
			page.LastMessage = &placeholder
			page.MessageTime = nil
		}
		merged = append(merged, page)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		ti, tj := merged[i].MessageTime, merged[j].MessageTime
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		}
		return ti.After(*tj)
	})
	return merged
}

// MarkSender tags each message with whether viewerId sent it.
func MarkSender(messages []*model.Message, viewerId string) []*model.Message {
	for _, msg := range messages {
		msg.IsSender = msg.SenderId == viewerId
	}
	return messages
}
