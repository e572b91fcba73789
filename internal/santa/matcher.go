package santa

import (
	"fmt"
	"math/rand"
	"sync"
)

// MaxRetry 单次 Match 允许的最大洗牌次数
const MaxRetry = 50

// Matcher 只负责抽签（随机贪心 + 死路整体重来），不做输入校验
type Matcher struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	maxRetry int
}

type Option func(*Matcher)

// WithMaxRetry 覆盖默认的 MaxRetry，n < 1 时忽略
func WithMaxRetry(n int) Option {
	return func(m *Matcher) {
		if n >= 1 {
			m.maxRetry = n
		}
	}
}

func NewMatcher(seed int64, opts ...Option) *Matcher {
	m := &Matcher{
		rnd:      rand.New(rand.NewSource(seed)),
		maxRetry: MaxRetry,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match 为每个参与者分配一个收礼人。
// 成功时结果满足：人人送一份、人人收一份、不送自己、情侣互不相送、不出现两人互送。
// 连续 maxRetry 次走进死路则返回 ErrAttemptsLimitReached，不返回部分结果。
func (m *Matcher) Match(participants Participants, couples Couples) (Assignment, error) {
	res, _, err := m.match(participants, couples)
	return res, err
}

func (m *Matcher) match(participants Participants, couples Couples) (Assignment, int, error) {
	people := participants.Names()
	excluded := exclusionSet(couples)

	m.mu.Lock()
	defer m.mu.Unlock()

	for attempt := 1; attempt <= m.maxRetry; attempt++ {
		if res, ok := m.attempt(people, excluded); ok {
			return res, attempt, nil
		}
	}
	return nil, m.maxRetry, ErrAttemptsLimitReached
}

// edge 有向禁止边：giver 不能送给 receiver
type edge struct {
	giver, receiver string
}

// attempt 按一次随机顺序依次处理每个 giver，任一 giver 无候选即放弃本轮
func (m *Matcher) attempt(people []string, excluded map[couple]struct{}) (Assignment, bool) {
	order := make([]string, len(people))
	copy(order, people)
	m.rnd.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	forbidden := make(map[edge]struct{}, 2*len(excluded)+len(order))
	for c := range excluded {
		forbidden[edge{c.a, c.b}] = struct{}{}
		forbidden[edge{c.b, c.a}] = struct{}{}
	}
	consumed := make(map[string]struct{}, len(order))

	out := make(Assignment, len(order))
	candidates := make([]string, 0, len(order))
	for _, giver := range order {
		candidates = candidates[:0]
		for _, other := range order {
			if other == giver {
				continue
			}
			if _, used := consumed[other]; used {
				continue
			}
			if _, no := forbidden[edge{giver, other}]; no {
				continue
			}
			candidates = append(candidates, other)
		}
		if len(candidates) == 0 {
			return nil, false
		}

		receiver := candidates[m.rnd.Intn(len(candidates))]
		out[giver] = receiver

		// 防止互送
		forbidden[edge{receiver, giver}] = struct{}{}
		consumed[receiver] = struct{}{}
	}
	return out, true
}

// Validate 检查分配结果是否满足全部约束
func Validate(participants Participants, couples Couples, a Assignment) error {
	if len(a) != len(participants) {
		return fmt.Errorf("%w: %d givers for %d participants", ErrInvalidAssignment, len(a), len(participants))
	}
	received := make(map[string]int, len(a))
	for giver, receiver := range a {
		if !participants.Has(giver) {
			return fmt.Errorf("%w: unknown giver %q", ErrInvalidAssignment, giver)
		}
		if !participants.Has(receiver) {
			return fmt.Errorf("%w: unknown receiver %q", ErrInvalidAssignment, receiver)
		}
		if giver == receiver {
			return fmt.Errorf("%w: %q gives to themselves", ErrInvalidAssignment, giver)
		}
		received[receiver]++
		if received[receiver] > 1 {
			return fmt.Errorf("%w: %q receives more than one gift", ErrInvalidAssignment, receiver)
		}
	}
	for x, y := range couples {
		if a[x] == y || a[y] == x {
			return fmt.Errorf("%w: couple %q and %q matched together", ErrInvalidAssignment, x, y)
		}
	}
	return nil
}
