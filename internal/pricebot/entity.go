package pricebot

type Message struct {
	Text   string
	ChatID int64
	From   User
}

type User struct {
	ID       int64
	Username string
}

// Reply is MarkdownV2 text ready to be sent back to the chat.
type Reply struct {
	Text string
}
