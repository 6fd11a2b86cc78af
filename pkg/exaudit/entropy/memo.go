package entropy

import (
	"math"
	"strconv"

	"github.com/patrickmn/go-cache"
)

// Memo caches signatures per distinct value. It is safe for concurrent use,
// so one Memo can be shared by every sheet of a workbook. A nil *Memo
// computes without caching.
type Memo struct {
	c *cache.Cache
}

// NewMemo returns an empty Memo. Entries never expire and no janitor
// goroutine is started.
func NewMemo() *Memo {
	return &Memo{c: cache.New(cache.NoExpiration, 0)}
}

// Signature returns NumberSignature(v), consulting the cache first.
func (m *Memo) Signature(v float64) (Signature, error) {
	if m == nil {
		return NumberSignature(v)
	}
	key := strconv.FormatFloat(math.Abs(v), 'g', -1, 64)
	if x, ok := m.c.Get(key); ok {
		return x.(Signature), nil
	}
	sig, err := NumberSignature(v)
	if err != nil {
		return 0, err
	}
	m.c.Set(key, sig, cache.NoExpiration)
	return sig, nil
}

// Score returns Score(NumberSignature(v)).
func (m *Memo) Score(v float64) (float64, error) {
	sig, err := m.Signature(v)
	if err != nil {
		return 0, err
	}
	return Score(sig), nil
}

// SequenceScore is the memoized counterpart of SequenceScore.
func (m *Memo) SequenceScore(values []float64) (float64, error) {
	total := 0.0
	for _, v := range values {
		s, err := m.Score(v)
		if err != nil {
			return 0, err
		}
		total += s
	}
	return total, nil
}

// Len reports the number of cached values.
func (m *Memo) Len() int {
	if m == nil {
		return 0
	}
	return m.c.ItemCount()
}
