package group

import (
	"maps"
	"slices"
	"time"

	"SecretSanta/internal/santa"
)

// Group 一次抽签活动：参与者、情侣排除以及最近一次抽签结果
type Group struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Participants []string          `json:"participants"`
	Couples      map[string]string `json:"couples"`
	Assignment   map[string]string `json:"assignment,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	DrawnAt      *time.Time        `json:"drawnAt,omitempty"`
}

// CreateRequest 创建活动
type CreateRequest struct {
	Name         string   `json:"name" binding:"required"`
	Participants []string `json:"participants"`
}

type ParticipantRequest struct {
	Name string `json:"name" binding:"required"`
}

// CoupleRequest 两人互不抽中
type CoupleRequest struct {
	First  string `json:"first" binding:"required"`
	Second string `json:"second" binding:"required"`
}

// DrawResponse 抽签结果；tokens 由组织者分发给每位参与者，用于 /reveal 与 /ws
type DrawResponse struct {
	Group  *Group            `json:"group"`
	Pairs  []santa.Pair      `json:"pairs"`
	Tokens map[string]string `json:"tokens"`
}

type RevealResponse struct {
	Giver    string `json:"giver"`
	Receiver string `json:"receiver"`
}

func (g *Group) participantSet() santa.Participants {
	return santa.NewParticipants(g.Participants...)
}

func (g *Group) hasParticipant(name string) bool {
	return slices.Contains(g.Participants, name)
}

// coupleKey 返回 name 所在情侣关系的存储 key（name 可以是任意一侧）
func (g *Group) coupleKey(name string) (string, bool) {
	if _, ok := g.Couples[name]; ok {
		return name, true
	}
	for k, v := range g.Couples {
		if v == name {
			return k, true
		}
	}
	return "", false
}

func (g *Group) clearDraw() {
	g.Assignment = nil
	g.DrawnAt = nil
}

func (g *Group) clone() *Group {
	cp := *g
	cp.Participants = slices.Clone(g.Participants)
	cp.Couples = maps.Clone(g.Couples)
	cp.Assignment = maps.Clone(g.Assignment)
	if g.DrawnAt != nil {
		t := *g.DrawnAt
		cp.DrawnAt = &t
	}
	return &cp
}
