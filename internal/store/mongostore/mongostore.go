// Package mongostore implements the store boundary on top of the chat
// application's MongoDB collections.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/chandrashekhar-patil/Chat-App/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	messagesCollection = "messages"
	chatsCollection    = "chats"
)

// ErrInvalidID is returned when an id is not a hex ObjectID.
var ErrInvalidID = errors.New("invalid object id")

var _ store.Store = (*Store)(nil)

type messageDoc struct {
	ID         primitive.ObjectID  `bson:"_id"`
	SenderID   primitive.ObjectID  `bson:"senderId"`
	ReceiverID *primitive.ObjectID `bson:"receiverId,omitempty"`
	ChatID     *primitive.ObjectID `bson:"chatId,omitempty"`
	Text       string              `bson:"text"`
	Image      string              `bson:"image,omitempty"`
	Audio      string              `bson:"audio,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt"`
}

type chatDoc struct {
	ID          primitive.ObjectID   `bson:"_id"`
	IsGroupChat bool                 `bson:"isGroupChat"`
	Members     []primitive.ObjectID `bson:"members"`
	Creator     primitive.ObjectID   `bson:"creator"`
}

type Store struct {
	users    *mongo.Collection
	messages *mongo.Collection
	chats    *mongo.Collection
	now      func() time.Time
	log      *slog.Logger
}

// Connect dials MongoDB and verifies the connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

func New(db *mongo.Database, log *slog.Logger) *Store {
	return &Store{
		users:    db.Collection(usersCollection),
		messages: db.Collection(messagesCollection),
		chats:    db.Collection(chatsCollection),
		now:      time.Now,
		log:      log.With("component", "mongostore"),
	}
}

func (s *Store) PersistMessage(ctx context.Context, msg event.Message) (event.Message, error) {
	sender, err := objectID(string(msg.SenderID))
	if err != nil {
		return event.Message{}, err
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	doc := messageDoc{
		ID:        primitive.NewObjectID(),
		SenderID:  sender,
		Text:      msg.Text,
		Image:     msg.Image,
		Audio:     msg.Audio,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if msg.ReceiverID != "" {
		id, err := objectID(string(msg.ReceiverID))
		if err != nil {
			return event.Message{}, err
		}
		doc.ReceiverID = &id
	}
	if msg.ChatID != "" {
		id, err := objectID(string(msg.ChatID))
		if err != nil {
			return event.Message{}, err
		}
		doc.ChatID = &id
	}

	if _, err := s.messages.InsertOne(ctx, doc); err != nil {
		return event.Message{}, fmt.Errorf("insert message: %w", err)
	}
	s.log.Debug("message persisted", "id", doc.ID.Hex(), "sender", msg.SenderID)

	stored := msg
	stored.ID = doc.ID.Hex()
	stored.CreatedAt = now
	return stored, nil
}

// IsBlocked reports whether either user's blockedUsers list contains the
// other.
func (s *Store) IsBlocked(ctx context.Context, a, b event.UserID) (bool, error) {
	ida, err := objectID(string(a))
	if err != nil {
		return false, err
	}
	idb, err := objectID(string(b))
	if err != nil {
		return false, err
	}

	filter := bson.M{"$or": bson.A{
		bson.M{"_id": ida, "blockedUsers": idb},
		bson.M{"_id": idb, "blockedUsers": ida},
	}}
	n, err := s.users.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count blocks: %w", err)
	}
	return n > 0, nil
}

func (s *Store) GetChatMembers(ctx context.Context, chat event.ChatID) (store.Members, error) {
	id, err := primitive.ObjectIDFromHex(string(chat))
	if err != nil {
		return store.Members{}, fmt.Errorf("chat %q: %w", chat, store.ErrNotFound)
	}

	var doc chatDoc
	opts := options.FindOne().SetProjection(bson.M{"isGroupChat": 1, "members": 1, "creator": 1})
	err = s.chats.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.Members{}, fmt.Errorf("chat %s: %w", chat, store.ErrNotFound)
	}
	if err != nil {
		return store.Members{}, fmt.Errorf("find chat %s: %w", chat, err)
	}

	members := store.Members{
		IDs:     make([]event.UserID, 0, len(doc.Members)),
		IsGroup: doc.IsGroupChat,
	}
	for _, m := range doc.Members {
		members.IDs = append(members.IDs, event.UserID(m.Hex()))
	}
	if !doc.Creator.IsZero() {
		members.Creator = event.UserID(doc.Creator.Hex())
	}
	return members, nil
}

func objectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}
