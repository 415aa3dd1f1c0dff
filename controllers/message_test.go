package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/sidrapp/sidr-be/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessaging() (*MessageController, *fakeDB) {
	fake := newFakeDB()
	fake.users["u2"] = &model.User{Id: "u2"}
	fake.pages["c1"] = &model.CharityPage{Id: "c1", UserId: "owner", Status: model.CharityStatusActive}
	fake.pages["c2"] = &model.CharityPage{Id: "c2", UserId: "owner", Status: model.CharityStatusInactive}
	return &MessageController{db: fake, events: &recordingPublisher{}}, fake
}

func TestSendMessageToUser(t *testing.T) {
	mc, fake := newMessaging()
	msg, httpErr := mc.SendMessage(context.Background(), &model.User{Id: "u1"}, &SendMessageReq{ReceiverId: "u2", Message: "hello"})
	require.Nil(t, httpErr)
	assert.Equal(t, model.ReceiverTypeUser, msg.ReceiverType)
	assert.Equal(t, model.MessageTypeText, msg.Type)
	assert.True(t, msg.IsSender)
	assert.Len(t, fake.messages, 1)
}

func TestSendMessageValidation(t *testing.T) {
	mc, _ := newMessaging()
	viewer := &model.User{Id: "u1"}
	cases := map[string]struct {
		req    *SendMessageReq
		status int
	}{
		"empty text":      {&SendMessageReq{ReceiverId: "u2"}, http.StatusBadRequest},
		"media no url":    {&SendMessageReq{ReceiverId: "u2", Type: model.MessageTypeImage}, http.StatusBadRequest},
		"self":            {&SendMessageReq{ReceiverId: "u1", Message: "me"}, http.StatusBadRequest},
		"unknown user":    {&SendMessageReq{ReceiverId: "ghost", Message: "hi"}, http.StatusNotFound},
		"unknown page":    {&SendMessageReq{ReceiverId: "ghost", ReceiverType: model.ReceiverTypeCharityPage, Message: "hi"}, http.StatusNotFound},
		"inactive page":   {&SendMessageReq{ReceiverId: "c2", ReceiverType: model.ReceiverTypeCharityPage, Message: "hi"}, http.StatusBadRequest},
		"unfollowed page": {&SendMessageReq{ReceiverId: "c1", ReceiverType: model.ReceiverTypeCharityPage, Message: "hi"}, http.StatusForbidden},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, httpErr := mc.SendMessage(context.Background(), viewer, tc.req)
			require.NotNil(t, httpErr)
			assert.Equal(t, tc.status, httpErr.Status)
		})
	}
}

func TestSendMessageToFollowedOrOwnedPage(t *testing.T) {
	mc, fake := newMessaging()
	fake.pageFans["u1|c1"] = true

	_, httpErr := mc.SendMessage(context.Background(), &model.User{Id: "u1"}, &SendMessageReq{
		ReceiverId: "c1", ReceiverType: model.ReceiverTypeCharityPage, Type: model.MessageTypeImage, MediaUrl: strPtr("m/a.png"),
	})
	assert.Nil(t, httpErr)

	_, httpErr = mc.SendMessage(context.Background(), &model.User{Id: "owner"}, &SendMessageReq{
		ReceiverId: "c1", ReceiverType: model.ReceiverTypeCharityPage, Message: "thanks all",
	})
	assert.Nil(t, httpErr)
	assert.Len(t, fake.messages, 2)
}
