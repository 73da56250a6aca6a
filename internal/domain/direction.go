package domain

import "fmt"

// Travel direction relative to the campus. The string value doubles as the
// path token in dataset URLs and cache keys.
type Direction string

const (
	FromSFC Direction = "from_sfc"
	ToSFC   Direction = "to_sfc"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case FromSFC, ToSFC:
		return d, nil
	}
	return "", fmt.Errorf("parse direction: unknown direction %q", s)
}

func (d Direction) String() string { return string(d) }
