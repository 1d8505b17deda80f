package event

import "github.com/samber/lo"

// Target describes who should receive an outbound event. It is either a
// broadcast to every live connection or an explicit set of users; both forms
// may exclude one user.
type Target struct {
	broadcast bool
	users     []UserID
	except    UserID
}

// Delivery pairs an outbound event with its target.
type Delivery struct {
	Event  Outbound
	Target Target
}

// ToUser targets a single user.
func ToUser(id UserID) Target {
	return Target{users: []UserID{id}}
}

// Echo targets every listed user, including the one whose action produced
// the event. Use it when the originator must see the event too.
func Echo(ids ...UserID) Target {
	return Target{users: lo.Uniq(ids)}
}

// NotifyOthers targets the members of a conversation except the sender.
func NotifyOthers(members []UserID, sender UserID) Target {
	return Target{users: lo.Uniq(members), except: sender}
}

// Broadcast targets every live connection.
func Broadcast() Target {
	return Target{broadcast: true}
}

// BroadcastExcept targets every live connection except one user's.
func BroadcastExcept(id UserID) Target {
	return Target{broadcast: true, except: id}
}

// IsBroadcast reports whether the target is every live connection.
func (t Target) IsBroadcast() bool { return t.broadcast }

// Excluded returns the user left out of the target, if any.
func (t Target) Excluded() UserID { return t.except }

// Users returns the explicit recipients with the excluded user removed. It is
// empty for broadcasts.
func (t Target) Users() []UserID {
	if t.except == "" {
		return lo.Uniq(t.users)
	}
	return lo.Without(lo.Uniq(t.users), t.except)
}

// Includes reports whether id is part of the target.
func (t Target) Includes(id UserID) bool {
	if id == t.except && t.except != "" {
		return false
	}
	if t.broadcast {
		return true
	}
	return lo.Contains(t.users, id)
}
