package domain

// Inbound command names, as sent by clients.
const (
	CommandJoin         = "join"
	CommandSendMessage  = "sendMessage"
	CommandSendLocation = "sendLocation"
)

type Command interface {
	Name() string
}

type JoinCommand struct {
	Username string
	Room     string
}

func (JoinCommand) Name() string { return CommandJoin }

type SendMessageCommand struct {
	Text string
}

func (SendMessageCommand) Name() string { return CommandSendMessage }

// SendLocationCommand carries coordinates exactly as received, without range checks.
type SendLocationCommand struct {
	Lat  float64
	Long float64
}

func (SendLocationCommand) Name() string { return CommandSendLocation }
