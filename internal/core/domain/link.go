package domain

type Link struct {
	Hostname     string `json:"hostname"`
	CountOfVotes int    `json:"count_of_votes"`
	SumOfVotes   int    `json:"sum_of_votes"`
	Version      int64  `json:"-"`
}

// Consistent reports whether the aggregate satisfies -count <= sum <= count
// with sum and count of equal parity.
func (l Link) Consistent() bool {
	if l.CountOfVotes < 0 {
		return false
	}
	if l.SumOfVotes < -l.CountOfVotes || l.SumOfVotes > l.CountOfVotes {
		return false
	}
	return (l.CountOfVotes-l.SumOfVotes)%2 == 0
}

type LinkScore struct {
	Hostname string
	Score    Score
}
