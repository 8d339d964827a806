// Package combat holds the breeds of the cyclic-dominance game and the fixed
// table that decides every fight between them.
package combat

import (
	"fmt"

	"rps-ca/pkg/core"
)

// Breed identifies one competing type.
type Breed uint8

const (
	Rock Breed = iota
	Paper
	Scissors
	Lizard
	Spock
)

// Count is the number of breeds.
const Count = 5

var names = [Count]string{"Rock", "Paper", "Scissors", "Lizard", "Spock"}

// outcomes[a][b] is +1 when a beats b, -1 when a loses to b and 0 on the diagonal.
var outcomes = [Count][Count]int8{
	{0, -1, 1, 1, -1},
	{1, 0, -1, -1, 1},
	{-1, 1, 0, 1, -1},
	{-1, 1, -1, 0, 1},
	{1, -1, 1, -1, 0},
}

// String returns the breed name.
func (b Breed) String() string {
	if int(b) < Count {
		return names[b]
	}
	return fmt.Sprintf("Breed(%d)", uint8(b))
}

// Valid reports whether b is one of the defined breeds.
func (b Breed) Valid() bool { return int(b) < Count }

// Breeds lists every breed in ordinal order.
func Breeds() []Breed {
	return []Breed{Rock, Paper, Scissors, Lizard, Spock}
}

// Outcome returns +1 if a beats b, -1 if a loses to b and 0 if a == b.
func Outcome(a, b Breed) int {
	if a == b {
		return 0
	}
	return int(outcomes[a][b])
}

// Beats lists the breeds that a defeats.
func Beats(a Breed) []Breed {
	var out []Breed
	for _, b := range Breeds() {
		if Outcome(a, b) > 0 {
			out = append(out, b)
		}
	}
	return out
}

// Random returns a uniformly chosen breed.
func Random(src core.Source) Breed {
	return Breed(src.IntN(Count))
}

// Validate checks that the outcome table has a zero diagonal, is antisymmetric
// and forms a regular tournament.
func Validate() error {
	return validateTable(outcomes)
}

func validateTable(table [Count][Count]int8) error {
	for i := 0; i < Count; i++ {
		if table[i][i] != 0 {
			return fmt.Errorf("outcome[%d][%d] = %d, want 0", i, i, table[i][i])
		}
		wins, losses := 0, 0
		for j := 0; j < Count; j++ {
			v := table[i][j]
			if v < -1 || v > 1 {
				return fmt.Errorf("outcome[%d][%d] = %d out of range", i, j, v)
			}
			if v != -table[j][i] {
				return fmt.Errorf("outcome[%d][%d] = %d but outcome[%d][%d] = %d", i, j, v, j, i, table[j][i])
			}
			if i != j && v == 0 {
				return fmt.Errorf("outcome[%d][%d] is a draw between distinct breeds", i, j)
			}
			switch v {
			case 1:
				wins++
			case -1:
				losses++
			}
		}
		if wins != losses {
			return fmt.Errorf("breed %d wins %d and loses %d", i, wins, losses)
		}
	}
	return nil
}
