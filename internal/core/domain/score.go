package domain

import (
	"encoding/json"
	"fmt"
)

type Score int

const (
	NoScore Score = iota
	Good
	Bad
	Controversial
)

var scoreNames = map[Score]string{
	NoScore:       "NoScore",
	Good:          "Good",
	Bad:           "Bad",
	Controversial: "Controversial",
}

// AllScores lists every category in a stable order.
var AllScores = []Score{Good, Bad, Controversial, NoScore}

func (s Score) String() string {
	if name, ok := scoreNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Score(%d)", int(s))
}

func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Score) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for score, n := range scoreNames {
		if n == name {
			*s = score
			return nil
		}
	}
	return fmt.Errorf("unknown score %q", name)
}

// Thresholds tune the classifier. See Classify for how they interact.
type Thresholds struct {
	Good                       int
	Bad                        int
	ControversialMinEngagement int
	ControversialBalanceBand   int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Good:                       20,
		Bad:                        -10,
		ControversialMinEngagement: 51,
		ControversialBalanceBand:   10,
	}
}

type Classifier struct {
	thresholds Thresholds
}

func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{thresholds: t}
}

// Classify maps an aggregate to a category. Controversial wins over Good and
// Bad, and anything that matches nothing is NoScore.
func (c *Classifier) Classify(count, sum int) Score {
	t := c.thresholds
	if count >= t.ControversialMinEngagement && abs(sum) < t.ControversialBalanceBand {
		return Controversial
	}
	if sum >= t.Good {
		return Good
	}
	if sum <= t.Bad {
		return Bad
	}
	return NoScore
}

func (c *Classifier) ClassifyLink(l Link) Score {
	return c.Classify(l.CountOfVotes, l.SumOfVotes)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
