package domain

import "fmt"

type CommandKind int

const (
	CommandProceed CommandKind = iota + 1
	CommandTurn
	CommandDeliver
)

func (k CommandKind) String() string {
	switch k {
	case CommandProceed:
		return "proceed"
	case CommandTurn:
		return "turn"
	case CommandDeliver:
		return "deliver"
	default:
		return "invalid"
	}
}

// Command is one navigation instruction.
// Only the fields relevant to Kind are set: Proceed uses Direction, Street
// and Miles; Turn uses Direction and Street; Deliver uses Item.
type Command struct {
	Kind      CommandKind
	Direction string
	Street    string
	Miles     float64
	Item      string
}

func NewProceed(direction, street string, miles float64) Command {
	return Command{Kind: CommandProceed, Direction: direction, Street: street, Miles: miles}
}

func NewTurn(direction, street string) Command {
	return Command{Kind: CommandTurn, Direction: direction, Street: street}
}

func NewDeliver(item string) Command {
	return Command{Kind: CommandDeliver, Item: item}
}

func (c Command) String() string {
	switch c.Kind {
	case CommandProceed:
		return fmt.Sprintf("Proceed %s on %s for %.2f miles", c.Direction, c.Street, c.Miles)
	case CommandTurn:
		return fmt.Sprintf("Turn %s on %s", c.Direction, c.Street)
	case CommandDeliver:
		return fmt.Sprintf("Deliver %s", c.Item)
	default:
		return "<invalid>"
	}
}
