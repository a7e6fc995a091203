package core

import "fmt"

// Text forms keep the JSON readable for the browser and the console.

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	switch string(b) {
	case "black":
		*c = Black
	case "white":
		*c = White
	case "empty", "":
		*c = Empty
	default:
		return fmt.Errorf("unknown color %q", b)
	}
	return nil
}

func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Result) UnmarshalText(b []byte) error {
	for _, v := range []Result{NoResult, WhiteWins, BlackWins, Draw} {
		if v.String() == string(b) {
			*r = v
			return nil
		}
	}
	return fmt.Errorf("unknown result %q", b)
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	for _, v := range []Phase{AwaitingSelection, AwaitingDestination, GameOver} {
		if v.String() == string(b) {
			*p = v
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}
