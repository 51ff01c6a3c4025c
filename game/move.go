package game

import (
	"errors"
	"fmt"
)

var ErrInvalidCommand = errors.New("invalid command")

// Command is the single action a hero submits per turn.
type Command string

const (
	North Command = "North"
	South Command = "South"
	East  Command = "East"
	West  Command = "West"
	Stay  Command = "Stay"
)

// Commands are the movement commands in generation order.
var Commands = []Command{North, West, South, East}

func ParseCommand(s string) (Command, error) {
	switch c := Command(s); c {
	case North, South, East, West, Stay:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCommand, s)
}

// Dir returns the unit vector of the command. North is y-1.
func (c Command) Dir() (dx, dy int) {
	switch c {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case West:
		return -1, 0
	case East:
		return 1, 0
	}
	return 0, 0
}

func DirToCommand(dx, dy int) (Command, error) {
	switch {
	case dx == -1 && dy == 0:
		return West, nil
	case dx == 1 && dy == 0:
		return East, nil
	case dx == 0 && dy == -1:
		return North, nil
	case dx == 0 && dy == 1:
		return South, nil
	case dx == 0 && dy == 0:
		return Stay, nil
	}
	return "", fmt.Errorf("%w: direction (%d, %d)", ErrInvalidCommand, dx, dy)
}

// PathToCommand converts a step between adjacent (or equal) positions to a command.
func PathToCommand(from, to Position) (Command, error) {
	return DirToCommand(to.X-from.X, to.Y-from.Y)
}
