package controllers

import (
	"context"

	"github.com/google/uuid"
	"github.com/sidrapp/sidr-be/app"
	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/services"
	"github.com/sidrapp/sidr-be/util"
)

type MessageController struct {
	db     db.Database
	events services.EventPublisher
}

type SendMessageReq struct {
	ReceiverId   string             `json:"receiverId" binding:"required,max=128"`
	ReceiverType model.ReceiverType `json:"receiverType" binding:"omitempty,oneof=user charity_page"`
	Message      string             `json:"message"`
	Type         model.MessageType  `json:"type" binding:"omitempty,oneof=text image video voice"`
	MediaUrl     *string            `json:"mediaUrl" binding:"omitempty,max=512"`
}

// channelMember checks the viewer may read and write a charity page channel:
// the page owner and its followers may.
func (mc *MessageController) channelMember(ctx context.Context, viewer *model.User, page *model.CharityPage) *util.HTTPError {
	if page.UserId == viewer.Id {
		return nil
	}
	following, err := mc.db.IsFollowingCharityPage(ctx, viewer.Id, page.Id)
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}
	if !following {
		return util.ForbiddenHTTPErr("must follow the charity page to message it")
	}
	return nil
}

func (mc *MessageController) SendMessage(ctx context.Context, viewer *model.User, req *SendMessageReq) (*model.Message, *util.HTTPError) {
	msg := &model.Message{
		Id:           uuid.NewString(),
		SenderId:     viewer.Id,
		ReceiverId:   req.ReceiverId,
		ReceiverType: req.ReceiverType,
		Message:      util.XSSSanitize(req.Message),
		Type:         req.Type,
		MediaUrl:     sanitizedPtr(req.MediaUrl),
		IsSender:     true,
	}
	if msg.ReceiverType == "" {
		msg.ReceiverType = model.ReceiverTypeUser
	}
	if msg.Type == "" {
		msg.Type = model.MessageTypeText
	}
	if msg.Type == model.MessageTypeText && msg.Message == "" {
		return nil, util.BuildValidationHTTPErr("message", "is required")
	}
	if msg.Type != model.MessageTypeText && msg.MediaUrl == nil {
		return nil, util.BuildValidationHTTPErr("mediaUrl", "is required")
	}

	switch msg.ReceiverType {
	case model.ReceiverTypeUser:
		if msg.ReceiverId == viewer.Id {
			return nil, util.BuildValidationHTTPErr("receiverId", "cannot message yourself")
		}
		if httpErr := requireUser(ctx, mc.db, msg.ReceiverId); httpErr != nil {
			return nil, httpErr
		}
	case model.ReceiverTypeCharityPage:
		page, httpErr := requireCharityPage(ctx, mc.db, msg.ReceiverId)
		if httpErr != nil {
			return nil, httpErr
		}
		if !page.IsActive() {
			return nil, util.BuildValidationHTTPErr("receiverId", "charity page is inactive")
		}
		if httpErr := mc.channelMember(ctx, viewer, page); httpErr != nil {
			return nil, httpErr
		}
	}

	if err := mc.db.CreateMessage(ctx, msg); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	mc.events.Publish(ctx, services.NewEvent(services.EventMessageSent, viewer.Id, msg.ReceiverId, msg.Id))
	return msg, nil
}

// GetThread returns a direct thread in both directions, or a charity page's
// whole channel, newest first.
func (mc *MessageController) GetThread(ctx context.Context, viewer *model.User, counterpartId string, counterpartType model.ReceiverType) ([]*model.Message, *util.HTTPError) {
	var messages []*model.Message
	var err error
	switch counterpartType {
	case model.ReceiverTypeUser:
		if httpErr := requireUser(ctx, mc.db, counterpartId); httpErr != nil {
			return nil, httpErr
		}
		messages, err = mc.db.GetDirectThread(ctx, viewer.Id, counterpartId)
	case model.ReceiverTypeCharityPage:
		page, httpErr := requireCharityPage(ctx, mc.db, counterpartId)
		if httpErr != nil {
			return nil, httpErr
		}
		if httpErr := mc.channelMember(ctx, viewer, page); httpErr != nil {
			return nil, httpErr
		}
		messages, err = mc.db.GetCharityPageChannel(ctx, counterpartId)
	default:
		return nil, util.BuildValidationHTTPErr("type", "must be one of: user charity_page")
	}
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return app.MarkSender(messages, viewer.Id), nil
}

func (mc *MessageController) DeleteMessage(ctx context.Context, viewer *model.User, id string) (*MessageRes, *util.HTTPError) {
	found, err := mc.db.DeleteMessage(ctx, id, viewer.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if !found {
		return nil, util.NotFoundHTTPErr("Message")
	}
	return &MessageRes{Message: "Message deleted"}, nil
}

type DeleteThreadRes struct {
	Message string `json:"message"`
	Removed int64  `json:"removed"`
}

func (mc *MessageController) DeleteThread(ctx context.Context, viewer *model.User, counterpartId string) (*DeleteThreadRes, *util.HTTPError) {
	removed, err := mc.db.DeleteThread(ctx, viewer.Id, counterpartId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if removed == 0 {
		return nil, util.NotFoundHTTPErr("Thread")
	}
	return &DeleteThreadRes{Message: "Thread deleted", Removed: removed}, nil
}

func (mc *MessageController) ListConversations(ctx context.Context, viewer *model.User) ([]*model.ConversationSummary, *util.HTTPError) {
	conversations, err := app.ListConversations(ctx, mc.db, viewer.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return conversations, nil
}
