package domain

type RoomID int64

// Room scopes membership and message visibility. The relay core only reads
// membership; mutation happens through the room service.
type Room struct {
	ID        RoomID
	Name      string
	CreatorID UserID
	Members   []UserID
}

// HasMember reports whether the user belongs to the room.
func (r Room) HasMember(id UserID) bool {
	for _, m := range r.Members {
		if m == id {
			return true
		}
	}
	return false
}
