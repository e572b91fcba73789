package santa

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioA() (Participants, Couples) {
	p := NewParticipants("Florent", "Jessica", "Coline", "Emilien", "Ambroise", "Bastien")
	c := Couples{
		"Florent": "Jessica",
		"Coline":  "Emilien",
	}
	return p, c
}

func TestMatch_GoodConditions(t *testing.T) {
	participants, couples := scenarioA()
	m := NewMatcher(time.Now().UnixNano())

	res, err := m.Match(participants, couples)
	require.NoError(t, err)

	// 情侣互不相送
	for a, b := range couples {
		assert.NotEqual(t, b, res[a])
		assert.NotEqual(t, a, res[b])
	}
	// 不送自己
	for giver, receiver := range res {
		assert.NotEqual(t, giver, receiver)
	}
	// 每人恰好收到一份
	for name := range participants {
		count := 0
		for _, r := range res {
			if r == name {
				count++
			}
		}
		assert.Equal(t, 1, count, "%s should receive exactly one gift", name)
	}
	assert.ElementsMatch(t, participants.Names(), keys(res))
}

func TestMatch_BadConditions(t *testing.T) {
	participants := NewParticipants("Florent", "Jessica", "Emilien")
	couples := Couples{"Florent": "Jessica"}

	m := NewMatcher(1)
	res, attempts, err := m.match(participants, couples)
	assert.ErrorIs(t, err, ErrAttemptsLimitReached)
	assert.Nil(t, res)
	assert.Equal(t, MaxRetry, attempts)
}

func TestMatch_Empty(t *testing.T) {
	m := NewMatcher(1)
	res, err := m.Match(NewParticipants(), Couples{})
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestMatch_TooFewPeople(t *testing.T) {
	m := NewMatcher(7)

	_, err := m.Match(NewParticipants("Solo"), nil)
	assert.ErrorIs(t, err, ErrAttemptsLimitReached)

	// 两个人只能互送，被防互送规则排除
	_, err = m.Match(NewParticipants("A", "B"), nil)
	assert.ErrorIs(t, err, ErrAttemptsLimitReached)
}

func TestMatch_ThreePeopleFormACycle(t *testing.T) {
	participants := NewParticipants("A", "B", "C")
	m := NewMatcher(3)

	res, err := m.Match(participants, nil)
	require.NoError(t, err)
	require.NoError(t, Validate(participants, nil, res))
	// 三人无互送时只能成一个环
	assert.Equal(t, "A", res[res[res["A"]]])
}

func TestMatch_ManySeeds(t *testing.T) {
	participants, couples := scenarioA()
	for seed := int64(0); seed < 200; seed++ {
		m := NewMatcher(seed)
		res, err := m.Match(participants, couples)
		require.NoError(t, err, "seed %d", seed)
		require.NoError(t, Validate(participants, couples, res), "seed %d", seed)
		for giver, receiver := range res {
			assert.NotEqual(t, giver, res[receiver], "seed %d: %s and %s exchange gifts", seed, giver, receiver)
		}
	}
}

func TestMatch_CoupleDirectionDoesNotMatter(t *testing.T) {
	participants := NewParticipants("A", "B", "C", "D")
	forward := Couples{"A": "B"}
	backward := Couples{"B": "A"}

	for seed := int64(0); seed < 50; seed++ {
		r1, err := NewMatcher(seed).Match(participants, forward)
		require.NoError(t, err)
		r2, err := NewMatcher(seed).Match(participants, backward)
		require.NoError(t, err)
		assert.Equal(t, r1, r2)
		assert.NoError(t, Validate(participants, forward, r1))
		assert.NoError(t, Validate(participants, backward, r1))
	}
}

func TestMatch_SameSeedSameResult(t *testing.T) {
	participants, couples := scenarioA()

	r1, err := NewMatcher(42).Match(participants, couples)
	require.NoError(t, err)
	r2, err := NewMatcher(42).Match(participants, couples)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}

func TestMatch_RepeatedCallsStayValid(t *testing.T) {
	participants, couples := scenarioA()
	m := NewMatcher(time.Now().UnixNano())
	for i := 0; i < 20; i++ {
		res, err := m.Match(participants, couples)
		require.NoError(t, err)
		assert.NoError(t, Validate(participants, couples, res))
	}
}

func TestMatch_UnknownCoupleIsInert(t *testing.T) {
	participants := NewParticipants("A", "B", "C", "D")
	res, err := NewMatcher(5).Match(participants, Couples{"X": "Y"})
	require.NoError(t, err)
	assert.NoError(t, Validate(participants, nil, res))
}

func TestWithMaxRetry(t *testing.T) {
	participants := NewParticipants("Florent", "Jessica", "Emilien")
	couples := Couples{"Florent": "Jessica"}

	m := NewMatcher(1, WithMaxRetry(3))
	_, attempts, err := m.match(participants, couples)
	assert.ErrorIs(t, err, ErrAttemptsLimitReached)
	assert.Equal(t, 3, attempts)

	// 非法值保持默认
	m = NewMatcher(1, WithMaxRetry(0))
	assert.Equal(t, MaxRetry, m.maxRetry)
}

func TestValidate(t *testing.T) {
	participants := NewParticipants("A", "B", "C")
	couples := Couples{"A": "B"}

	tests := []struct {
		name    string
		a       Assignment
		wantErr bool
	}{
		{"missing giver", Assignment{"A": "C", "C": "B"}, true},
		{"self gift", Assignment{"A": "A", "B": "C", "C": "B"}, true},
		{"double receiver", Assignment{"A": "C", "B": "C", "C": "A"}, true},
		{"couple matched", Assignment{"A": "C", "B": "A", "C": "B"}, true},
		{"unknown receiver", Assignment{"A": "Z", "B": "C", "C": "A"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(participants, couples, tt.a)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAssignment)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.NoError(t, Validate(NewParticipants("A", "B", "C"), nil, Assignment{"A": "B", "B": "C", "C": "A"}))
}

func TestAssignmentPairs(t *testing.T) {
	a := Assignment{"C": "A", "A": "B", "B": "C"}
	assert.Equal(t, []Pair{
		{Giver: "A", Receiver: "B"},
		{Giver: "B", Receiver: "C"},
		{Giver: "C", Receiver: "A"},
	}, a.Pairs())
}

func TestParticipants(t *testing.T) {
	p := NewParticipants("b", "a", "b")
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, []string{"a", "b"}, p.Names())
	p.Remove("a")
	assert.False(t, p.Has("a"))
	assert.True(t, p.Has("b"))
}

func keys(a Assignment) []string {
	out := make([]string, 0, len(a))
	for k := range a {
		out = append(out, k)
	}
	return out
}
