package entity

import "time"

// Worker trabajadora a la que se asignan tarimas.
type Worker struct {
	ID        string
	Name      string
	Area      string
	CreatedAt time.Time
}
