package router

import (
	"context"
	"fmt"

	"github.com/chandrashekhar-patil/Chat-App/internal/event"
	"github.com/samber/lo"
)

// NotifyChatCleared tells the participants of a direct chat that clearedBy
// cleared it. Each side is told which conversation was cleared from its own
// point of view.
func (r *Router) NotifyChatCleared(targets []event.UserID, clearedBy event.UserID) int {
	targets = lo.Uniq(targets)
	clearerListed := lo.Contains(targets, clearedBy)

	sent := 0
	for _, t := range targets {
		if t == clearedBy {
			continue
		}
		sent += r.emit(event.ChatCleared(string(clearedBy)), event.ToUser(t))
		if clearerListed {
			sent += r.emit(event.ChatCleared(string(t)), event.ToUser(clearedBy))
		}
	}
	return sent
}

// NotifyGroupCleared tells every member of a group chat that its history was
// cleared.
func (r *Router) NotifyGroupCleared(ctx context.Context, chat event.ChatID) (int, error) {
	m, err := r.chats.GetChatMembers(ctx, chat)
	if err != nil {
		return 0, fmt.Errorf("resolve members of %s: %w", chat, err)
	}
	return r.emit(event.ChatCleared(string(chat)), event.Echo(m.IDs...)), nil
}

// NotifyGroupUpdated pushes the new group state to its members.
func (r *Router) NotifyGroupUpdated(g event.Group) int {
	return r.emit(event.GroupUpdated(g), event.Echo(g.Members...))
}

// NotifyGroupDeleted tells the members that a group is gone. With no members
// left to address, every connection is told.
func (r *Router) NotifyGroupDeleted(chat event.ChatID, members []event.UserID) int {
	target := event.Echo(members...)
	if len(members) == 0 {
		target = event.Broadcast()
	}
	return r.emit(event.GroupDeleted(chat), target)
}

// NotifyUserRemoved tells the remaining members that user left chat.
func (r *Router) NotifyUserRemoved(chat event.ChatID, user event.UserID, remaining []event.UserID) int {
	return r.emit(event.UserRemoved(chat, user), event.Echo(remaining...))
}

// NotifyUserDeleted tells the owner that the account is gone, tells everyone
// else to drop the user, then closes the owner's connection.
func (r *Router) NotifyUserDeleted(user event.UserID) int {
	sent := r.emit(event.AccountDeleted(user), event.ToUser(user))
	sent += r.emit(event.UserDeleted(user), event.BroadcastExcept(user))
	if h, ok := r.online.Lookup(user); ok {
		h.Close(ReasonAccountDeleted)
	}
	return sent
}
