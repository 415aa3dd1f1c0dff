package app

import (
	"testing"
	"time"

	"github.com/sidrapp/sidr-be/model"
	"github.com/stretchr/testify/assert"
)

func at(sec int64) *time.Time {
	t := time.Unix(sec, 0)
	return &t
}

func str(s string) *string {
	return &s
}

func TestMergeConversationsOrdersNewestFirstWithPlaceholdersLast(t *testing.T) {
	direct := []*model.ConversationSummary{
		{CounterpartId: "u1", CounterpartType: model.ReceiverTypeUser, LastMessageId: str("m1"), LastMessage: str("hey"), MessageTime: at(100)},
		{CounterpartId: "u2", CounterpartType: model.ReceiverTypeUser, LastMessageId: str("m2"), LastMessage: str("yo"), MessageTime: at(300)},
	}
	pages := []*model.ConversationSummary{
		{CounterpartId: "c1", CounterpartType: model.ReceiverTypeCharityPage},
		{CounterpartId: "c2", CounterpartType: model.ReceiverTypeCharityPage, LastMessageId: str("m3"), LastMessage: str("thanks"), MessageTime: at(200)},
	}

	merged := MergeConversations(direct, pages)

	ids := make([]string, len(merged))
	for i, conv := range merged {
		ids[i] = conv.CounterpartId
	}
	assert.Equal(t, []string{"u2", "c2", "u1", "c1"}, ids)
	assert.Equal(t, model.NoMessagesPlaceholder, *merged[3].LastMessage)
	assert.Nil(t, merged[3].MessageTime)
}

func TestMergeConversationsEmpty(t *testing.T) {
	assert.Empty(t, MergeConversations(nil, nil))
}

func TestMarkSender(t *testing.T) {
	messages := MarkSender([]*model.Message{
		{Id: "m1", SenderId: "me"},
		{Id: "m2", SenderId: "them"},
	}, "me")
	assert.True(t, messages[0].IsSender)
	assert.False(t, messages[1].IsSender)
}
