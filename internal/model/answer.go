package model

// Answer is one candidate returned by a knowledge base, score in 0..1.
type Answer struct {
	ID       int
	Text     string
	Score    float64
	Source   string
	Metadata map[string]string
}
