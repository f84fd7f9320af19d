package rubikit

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// UpdateType is the discriminator of an inbound update.
type UpdateType string

const (
	UpdateNewMessage   UpdateType = "NewMessage"
	UpdateReceiveQuery UpdateType = "ReceiveQuery"
)

// Update is a decoded inbound event. Exactly one of Message and Inline is set,
// matching Type.
type Update struct {
	Type    UpdateType
	ChatID  string
	Message *Message
	Inline  *InlineMessage
	Raw     json.RawMessage
}

// IsCallback reports whether the update is a keypad button press.
func (u *Update) IsCallback() bool {
	return u.Message != nil && u.Message.AuxData != nil
}

// Message is the payload of a NewMessage update.
type Message struct {
	MessageID        string
	SenderID         string
	Text             string
	Time             string
	IsEdited         bool
	SenderType       string
	ReplyToMessageID string
	ForwardedFrom    *ForwardedFrom
	File             *File
	Sticker          *Sticker
	ContactMessage   *ContactMessage
	Poll             *Poll
	Location         *Location
	LiveLocation     *LiveLocation
	AuxData          *AuxData
	Raw              json.RawMessage
}

// InlineMessage is the payload of a ReceiveQuery update.
type InlineMessage struct {
	ChatID    string
	MessageID string
	SenderID  string
	Text      string
	AuxData   *AuxData
	Raw       json.RawMessage
}

// decoder turns raw update JSON into Updates.
type decoder struct {
	staleAfter time.Duration
}

// decode classifies raw. It returns false for unknown discriminators,
// missing payloads and stale messages; none of these are errors.
func (d decoder) decode(raw []byte, now time.Time) (*Update, bool) {
	if !gjson.ValidBytes(raw) {
		return nil, false
	}
	root := gjson.ParseBytes(raw)

	switch UpdateType(root.Get("type").String()) {
	case UpdateReceiveQuery:
		im := root.Get("inline_message")
		if !im.IsObject() {
			return nil, false
		}
		inline := decodeInlineMessage(im)
		return &Update{
			Type:   UpdateReceiveQuery,
			ChatID: inline.ChatID,
			Inline: inline,
			Raw:    raw,
		}, true

	case UpdateNewMessage:
		nm := root.Get("new_message")
		if !nm.IsObject() {
			return nil, false
		}
		msg := decodeMessage(nm)
		if d.isStale(msg.Time, now) {
			return nil, false
		}
		return &Update{
			Type:    UpdateNewMessage,
			ChatID:  root.Get("chat_id").String(),
			Message: msg,
			Raw:     raw,
		}, true
	}

	return nil, false
}

// isStale reports whether a server timestamp (seconds since epoch with an
// optional decimal fraction, as a string) lies more than staleAfter behind
// now. Unparseable times are fresh.
func (d decoder) isStale(ts string, now time.Time) bool {
	sent, ok := parseServerTime(ts)
	if !ok {
		return false
	}
	return now.Sub(sent) > d.staleAfter
}

// parseServerTime parses "1700000000" or "1700000000.123" without going
// through float64, so sub-second parts survive exactly.
func parseServerTime(ts string) (time.Time, bool) {
	secPart, fracPart, hasFrac := strings.Cut(ts, ".")
	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	if !hasFrac {
		return time.Unix(sec, 0), true
	}
	if fracPart == "" {
		return time.Time{}, false
	}

	// Nanosecond precision is all time.Time holds.
	if len(fracPart) > 9 {
		fracPart = fracPart[:9]
	}
	nsec, err := strconv.ParseUint(fracPart+strings.Repeat("0", 9-len(fracPart)), 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	if strings.HasPrefix(secPart, "-") {
		return time.Unix(sec, -int64(nsec)), true
	}
	return time.Unix(sec, int64(nsec)), true
}

func decodeMessage(nm gjson.Result) *Message {
	return &Message{
		MessageID:        nm.Get("message_id").String(),
		SenderID:         nm.Get("sender_id").String(),
		Text:             nm.Get("text").String(),
		Time:             nm.Get("time").String(),
		IsEdited:         nm.Get("is_edited").Bool(),
		SenderType:       nm.Get("sender_type").String(),
		ReplyToMessageID: nm.Get("reply_to_message_id").String(),
		ForwardedFrom:    decodeOptional[ForwardedFrom](nm, "forwarded_from"),
		File:             decodeOptional[File](nm, "file"),
		Sticker:          decodeOptional[Sticker](nm, "sticker"),
		ContactMessage:   decodeOptional[ContactMessage](nm, "contact_message"),
		Poll:             decodeOptional[Poll](nm, "poll"),
		Location:         decodeOptional[Location](nm, "location"),
		LiveLocation:     decodeOptional[LiveLocation](nm, "live_location"),
		AuxData:          decodeOptional[AuxData](nm, "aux_data"),
		Raw:              json.RawMessage(nm.Raw),
	}
}

func decodeInlineMessage(im gjson.Result) *InlineMessage {
	return &InlineMessage{
		ChatID:    im.Get("chat_id").String(),
		MessageID: im.Get("message_id").String(),
		SenderID:  im.Get("sender_id").String(),
		Text:      im.Get("text").String(),
		AuxData:   decodeOptional[AuxData](im, "aux_data"),
		Raw:       json.RawMessage(im.Raw),
	}
}

// decodeOptional unmarshals obj[key] into a T. Missing, null or malformed
// values yield nil so one bad sub-object does not drop the whole update.
func decodeOptional[T any](obj gjson.Result, key string) *T {
	v := obj.Get(key)
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	var out T
	if err := json.Unmarshal([]byte(v.Raw), &out); err != nil {
		return nil
	}
	return &out
}
