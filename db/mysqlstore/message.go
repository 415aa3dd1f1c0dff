package mysqlstore

import (
	"context"
	"strings"

	appDb "github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/model"
	"github.com/upper/db/v4"
)

type MessageDB struct {
	sess db.Session
}

func getMessageDB(sess db.Session) *MessageDB {
	return &MessageDB{sess}
}

var messageColumns = []interface{}{
	"m.id",
	"m.sender_id",
	"m.receiver_id",
	"m.receiver_type",
	"m.message",
	"m.type",
	"m.media_url",
	"m.timestamp",
}

func (mdb *MessageDB) CreateMessage(ctx context.Context, msg *model.Message) error {
	_, err := mdb.sess.SQL().
		InsertInto("messages").
		Columns("id", "sender_id", "receiver_id", "receiver_type", "message", "type", "media_url").
		Values(msg.Id, msg.SenderId, msg.ReceiverId, msg.ReceiverType, msg.Message, msg.Type, msg.MediaUrl).
		ExecContext(ctx)
	return appDb.ClassifyErr(err)
}

// directPair matches direct messages between a and b in either direction.
func directPair(prefix string, a string, b string) *db.RawExpr {
	return db.Raw(strings.ReplaceAll(
		"{p}receiver_type = ? AND (({p}sender_id = ? AND {p}receiver_id = ?) OR ({p}sender_id = ? AND {p}receiver_id = ?))",
		"{p}", prefix), model.ReceiverTypeUser, a, b, b, a)
}

func (mdb *MessageDB) GetDirectThread(ctx context.Context, a string, b string) ([]*model.Message, error) {
	messages := []*model.Message{}
	err := mdb.sess.SQL().
		Select(messageColumns...).
		From("messages AS m").
		Where(directPair("m.", a, b)).
		OrderBy("m.timestamp DESC", "m.id DESC").
		IteratorContext(ctx).
		All(&messages)
	return messages, err
}

func (mdb *MessageDB) GetCharityPageChannel(ctx context.Context, pageId string) ([]*model.Message, error) {
	messages := []*model.Message{}
	err := mdb.sess.SQL().
		Select(messageColumns...).
		From("messages AS m").
		Where("m.receiver_type = ? AND m.receiver_id = ?", model.ReceiverTypeCharityPage, pageId).
		OrderBy("m.timestamp DESC", "m.id DESC").
		IteratorContext(ctx).
		All(&messages)
	return messages, err
}

func (mdb *MessageDB) DeleteMessage(ctx context.Context, id string, senderId string) (bool, error) {
	return found(mdb.sess.SQL().
		DeleteFrom("messages").
		Where("id = ? AND sender_id = ?", id, senderId).
		ExecContext(ctx))
}

func (mdb *MessageDB) DeleteThread(ctx context.Context, a string, b string) (int64, error) {
	return rowsAffected(mdb.sess.SQL().
		DeleteFrom("messages").
		Where(directPair("", a, b)).
		ExecContext(ctx))
}

const latestDirectMessagesSQL = `
SELECT t.counterpart_id,
       'user' AS counterpart_type,
       u.name AS counterpart_name,
       u.profile_image AS counterpart_profile_image,
       t.id AS last_message_id,
       t.message AS last_message,
       t.type AS last_message_type,
       t.timestamp AS message_time
FROM (
    SELECT m.id, m.message, m.type, m.timestamp,
           CASE WHEN m.sender_id = ? THEN m.receiver_id ELSE m.sender_id END AS counterpart_id,
           ROW_NUMBER() OVER (
               PARTITION BY CASE WHEN m.sender_id = ? THEN m.receiver_id ELSE m.sender_id END
               ORDER BY m.timestamp DESC, m.id DESC
           ) AS rn
    FROM messages AS m
    WHERE m.receiver_type = 'user' AND (m.sender_id = ? OR m.receiver_id = ?)
) AS t
JOIN users AS u ON u.id = t.counterpart_id
WHERE t.rn = 1
ORDER BY t.timestamp DESC, t.id DESC`

func (mdb *MessageDB) GetLatestDirectMessages(ctx context.Context, userId string) ([]*model.ConversationSummary, error) {
	conversations := []*model.ConversationSummary{}
	err := mdb.sess.SQL().
		IteratorContext(ctx, latestDirectMessagesSQL, userId, userId, userId, userId).
		All(&conversations)
	return conversations, err
}

const charityPageConversationsSQL = `
SELECT cp.id AS counterpart_id,
       'charity_page' AS counterpart_type,
       cp.name AS counterpart_name,
       cp.profile_image AS counterpart_profile_image,
       lm.id AS last_message_id,
       lm.message AS last_message,
       lm.type AS last_message_type,
       lm.timestamp AS message_time
FROM charity_pages AS cp
LEFT JOIN (
    SELECT m.id, m.receiver_id, m.message, m.type, m.timestamp,
           ROW_NUMBER() OVER (PARTITION BY m.receiver_id ORDER BY m.timestamp DESC, m.id DESC) AS rn
    FROM messages AS m
    WHERE m.receiver_type = 'charity_page'
) AS lm ON lm.receiver_id = cp.id AND lm.rn = 1
WHERE cp.userId = ?
   OR EXISTS (SELECT 1 FROM follows AS f WHERE f.charity_page_id = cp.id AND f.user_id = ?)`

func (mdb *MessageDB) GetCharityPageConversations(ctx context.Context, userId string) ([]*model.ConversationSummary, error) {
	conversations := []*model.ConversationSummary{}
	err := mdb.sess.SQL().
		IteratorContext(ctx, charityPageConversationsSQL, userId, userId).
		All(&conversations)
	return conversations, err
}
