package telegram

// Update is the subset of a Telegram webhook payload the bot consumes.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int64       `json:"message_id"`
	Chat      Chat        `json:"chat"`
	Text      string      `json:"text"`
	Photo     []PhotoSize `json:"photo"`
}

type Chat struct {
	ID int64 `json:"id"`
}

// PhotoSize is one resolution of an incoming photo; Telegram sends them
// ordered from smallest to largest.
type PhotoSize struct {
	FileID   string `json:"file_id"`
	FileSize int64  `json:"file_size"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// LargestPhoto picks the highest-resolution variant of the photo, or nil when
// the message carries none.
func (m *Message) LargestPhoto() *PhotoSize {
	if len(m.Photo) == 0 {
		return nil
	}
	largest := m.Photo[0]
	for _, p := range m.Photo[1:] {
		if p.Width*p.Height > largest.Width*largest.Height {
			largest = p
		}
	}
	return &largest
}
