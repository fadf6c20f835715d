package component

import (
	"fmt"
	"image/color"
	"strings"
)

type Team uint8

const (
	TeamRed Team = iota
	TeamBlue
	TeamGreen
	TeamYellow
)

var AllTeams = [...]Team{TeamRed, TeamBlue, TeamGreen, TeamYellow}

var TeamComponent = NewComponent[Team]()

func (t Team) String() string {
	switch t {
	case TeamRed:
		return "red"
	case TeamBlue:
		return "blue"
	case TeamGreen:
		return "green"
	case TeamYellow:
		return "yellow"
	default:
		return fmt.Sprintf("team(%d)", uint8(t))
	}
}

// Color is the fixed display colour of the team.
func (t Team) Color() color.RGBA {
	switch t {
	case TeamRed:
		return color.RGBA{R: 255, A: 255}
	case TeamBlue:
		return color.RGBA{B: 255, A: 255}
	case TeamGreen:
		return color.RGBA{G: 255, A: 255}
	case TeamYellow:
		return color.RGBA{R: 255, G: 255, A: 255}
	default:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
}

func TeamFromIndex(i int) (Team, error) {
	if i < 0 || i >= len(AllTeams) {
		return 0, fmt.Errorf("%w: index %d", ErrUnknownTeam, i)
	}
	return AllTeams[i], nil
}

func ParseTeam(s string) (Team, error) {
	for _, t := range AllTeams {
		if strings.EqualFold(strings.TrimSpace(s), t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTeam, s)
}

func (t *Team) UnmarshalText(b []byte) error {
	v, err := ParseTeam(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t Team) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
