package rubikit

// File is an attachment reference.
type File struct {
	FileID   string `json:"file_id,omitempty"`
	FileName string `json:"file_name,omitempty"`
	Size     string `json:"size,omitempty"`
}

// Sticker is a sticker attached to a message.
type Sticker struct {
	StickerID      string `json:"sticker_id,omitempty"`
	EmojiCharacter string `json:"emoji_character,omitempty"`
	File           File   `json:"file"`
}

// PollStatus is the voting state of a poll.
type PollStatus struct {
	State              string `json:"state,omitempty"`
	SelectionIndex     int    `json:"selection_index,omitempty"`
	PercentVoteOptions []int  `json:"percent_vote_options,omitempty"`
	TotalVote          int    `json:"total_vote,omitempty"`
	ShowTotalVotes     bool   `json:"show_total_votes,omitempty"`
}

// Poll is a poll attached to a message.
type Poll struct {
	Question   string     `json:"question,omitempty"`
	Options    []string   `json:"options,omitempty"`
	PollStatus PollStatus `json:"poll_status"`
}

// Location is a point on the map. Coordinates are string-encoded by the API.
type Location struct {
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
}

// LiveLocation is a location shared for a period of time.
type LiveLocation struct {
	StartTime       string   `json:"start_time,omitempty"`
	LivePeriod      int      `json:"live_period,omitempty"`
	CurrentLocation Location `json:"current_location"`
	UserID          string   `json:"user_id,omitempty"`
	Status          string   `json:"status,omitempty"`
	LastUpdateTime  string   `json:"last_update_time,omitempty"`
}

// ContactMessage is a shared contact.
type ContactMessage struct {
	PhoneNumber string `json:"phone_number,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
}

// ForwardedFrom describes the origin of a forwarded message.
type ForwardedFrom struct {
	TypeFrom     string `json:"type_from,omitempty"`
	MessageID    string `json:"message_id,omitempty"`
	FromChatID   string `json:"from_chat_id,omitempty"`
	FromSenderID string `json:"from_sender_id,omitempty"`
}

// AuxData is attached to messages produced by a keypad button press or a
// deep-link start.
type AuxData struct {
	StartID  string `json:"start_id,omitempty"`
	ButtonID string `json:"button_id,omitempty"`
}

// Chat is returned by getChat.
type Chat struct {
	ChatID    string `json:"chat_id,omitempty"`
	ChatType  string `json:"chat_type,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Title     string `json:"title,omitempty"`
	Username  string `json:"username,omitempty"`
}

// BotInfo is returned by getMe.
type BotInfo struct {
	BotID        string `json:"bot_id,omitempty"`
	BotTitle     string `json:"bot_title,omitempty"`
	Avatar       File   `json:"avatar"`
	Description  string `json:"description,omitempty"`
	Username     string `json:"username,omitempty"`
	StartMessage string `json:"start_message,omitempty"`
	ShareURL     string `json:"share_url,omitempty"`
}

// BotCommand is a command shown in the bot menu.
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// ChatKeypadType controls what sendMessage does with the chat keypad.
type ChatKeypadType string

const (
	ChatKeypadNone    ChatKeypadType = "None"
	ChatKeypadNew     ChatKeypadType = "New"
	ChatKeypadRemoved ChatKeypadType = "Removed"
)
