package santa

import (
	"sort"
)

// Participants 参与者集合，按名字去重
type Participants map[string]struct{}

func NewParticipants(names ...string) Participants {
	p := make(Participants, len(names))
	for _, n := range names {
		p.Add(n)
	}
	return p
}

func (p Participants) Add(name string) {
	p[name] = struct{}{}
}

func (p Participants) Remove(name string) {
	delete(p, name)
}

func (p Participants) Has(name string) bool {
	_, ok := p[name]
	return ok
}

func (p Participants) Len() int {
	return len(p)
}

// Names 返回排序后的名字列表，保证同一 seed 下洗牌结果可复现
func (p Participants) Names() []string {
	out := make([]string, 0, len(p))
	for n := range p {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Couples 情侣排除关系。key/value 的方向只用于存储，匹配时双向生效
type Couples map[string]string

// Assignment giver -> receiver
type Assignment map[string]string

type Pair struct {
	Giver    string `json:"giver"`
	Receiver string `json:"receiver"`
}

// Pairs 按 giver 排序输出，用于展示
func (a Assignment) Pairs() []Pair {
	out := make([]Pair, 0, len(a))
	for g, r := range a {
		out = append(out, Pair{Giver: g, Receiver: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Giver < out[j].Giver })
	return out
}

// couple 无序对，a <= b
type couple struct {
	a, b string
}

func newCouple(x, y string) couple {
	if y < x {
		x, y = y, x
	}
	return couple{a: x, b: y}
}

func exclusionSet(c Couples) map[couple]struct{} {
	out := make(map[couple]struct{}, len(c))
	for x, y := range c {
		out[newCouple(x, y)] = struct{}{}
	}
	return out
}
