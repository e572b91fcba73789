package group

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"SecretSanta/internal/santa"
	"SecretSanta/internal/utils"
	"SecretSanta/internal/websocket"
)

// Matcher 抽签算法
type Matcher interface {
	Match(participants santa.Participants, couples santa.Couples) (santa.Assignment, error)
}

// Notifier 抽签完成后私信每位在线参与者
type Notifier interface {
	SendToParticipant(groupID, name string, msg websocket.OutgoingMessage)
}

// TokenIssuer 为参与者签发 reveal token
type TokenIssuer interface {
	Issue(groupID, participant string) (string, error)
}

type Service struct {
	mu       sync.Mutex // 串行化 读-改-写
	repo     Repo
	matcher  Matcher
	notifier Notifier
	issuer   TokenIssuer
}

// DrawResult 抽签成功后的活动与每人的 reveal token
type DrawResult struct {
	Group  *Group
	Tokens map[string]string
}

// NewService notifier 可为 nil
func NewService(repo Repo, matcher Matcher, notifier Notifier, issuer TokenIssuer) *Service {
	return &Service{repo: repo, matcher: matcher, notifier: notifier, issuer: issuer}
}

// normalizeNames 去掉首尾空白、空名字与重复名字，保持首次出现的顺序
func normalizeNames(names []string) []string {
	trimmed := lo.Map(names, func(n string, _ int) string { return strings.TrimSpace(n) })
	return lo.Uniq(lo.Filter(trimmed, func(n string, _ int) bool { return n != "" }))
}

func (s *Service) Create(ctx context.Context, name string, participants ...string) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	g := &Group{
		ID:           uuid.NewString(),
		Name:         name,
		Participants: normalizeNames(participants),
		Couples:      map[string]string{},
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Save(ctx, g); err != nil {
		return nil, err
	}
	utils.Log.Info("group created", "group", g.ID, "participants", len(g.Participants))
	return g, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Group, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Delete(ctx, id)
}

// update 读取、修改并保存活动；fn 返回错误时不保存
func (s *Service) update(ctx context.Context, id string, fn func(g *Group) error) (*Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(g); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// AddParticipant 重复添加视为成功；任何名单变动都会作废上一次抽签
func (s *Service) AddParticipant(ctx context.Context, id, name string) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return s.update(ctx, id, func(g *Group) error {
		if g.hasParticipant(name) {
			return nil
		}
		g.Participants = append(g.Participants, name)
		g.clearDraw()
		return nil
	})
}

// RemoveParticipant 同时删除其所在的情侣关系
func (s *Service) RemoveParticipant(ctx context.Context, id, name string) (*Group, error) {
	return s.update(ctx, id, func(g *Group) error {
		if !g.hasParticipant(name) {
			return nil
		}
		g.Participants = lo.Without(g.Participants, name)
		if key, ok := g.coupleKey(name); ok {
			delete(g.Couples, key)
		}
		g.clearDraw()
		return nil
	})
}

func (s *Service) AddCouple(ctx context.Context, id, first, second string) (*Group, error) {
	first, second = strings.TrimSpace(first), strings.TrimSpace(second)
	if first == "" || second == "" {
		return nil, ErrEmptyName
	}
	if first == second {
		return nil, ErrSameName
	}
	return s.update(ctx, id, func(g *Group) error {
		for _, n := range []string{first, second} {
			if !g.hasParticipant(n) {
				return fmt.Errorf("%w: %s", ErrUnknownParticipant, n)
			}
			if _, ok := g.coupleKey(n); ok {
				return fmt.Errorf("%w: %s", ErrAlreadyInCouple, n)
			}
		}
		if g.Couples == nil {
			g.Couples = map[string]string{}
		}
		g.Couples[first] = second
		g.clearDraw()
		return nil
	})
}

// RemoveCouple name 可以是情侣中任意一方
func (s *Service) RemoveCouple(ctx context.Context, id, name string) (*Group, error) {
	return s.update(ctx, id, func(g *Group) error {
		key, ok := g.coupleKey(name)
		if !ok {
			return nil
		}
		delete(g.Couples, key)
		g.clearDraw()
		return nil
	})
}

// Draw 丢弃旧结果后抽签一次。失败时保存已清空的状态并原样返回 matcher 的错误
func (s *Service) Draw(ctx context.Context, id string) (*DrawResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	g.clearDraw()

	utils.Log.Info("drawing", "group", g.ID, "participants", len(g.Participants), "couples", len(g.Couples))
	res, err := s.matcher.Match(g.participantSet(), santa.Couples(g.Couples))
	if err != nil {
		utils.Log.Warn("draw failed", "group", g.ID, "err", err)
		if saveErr := s.repo.Save(ctx, g); saveErr != nil {
			return nil, saveErr
		}
		return nil, err
	}

	now := time.Now()
	g.Assignment = res
	g.DrawnAt = &now

	tokens := make(map[string]string, len(g.Participants))
	for _, p := range g.Participants {
		tok, err := s.issuer.Issue(g.ID, p)
		if err != nil {
			return nil, fmt.Errorf("issue token for %s: %w", p, err)
		}
		tokens[p] = tok
	}

	if err := s.repo.Save(ctx, g); err != nil {
		return nil, err
	}
	utils.Log.Info("draw succeeded", "group", g.ID, "pairs", len(res))

	// 每人只收到自己的结果
	if s.notifier != nil {
		for giver, receiver := range res {
			s.notifier.SendToParticipant(g.ID, giver, websocket.OutgoingMessage{
				Event: websocket.EventAssigned,
				Data: map[string]any{
					"groupId":  g.ID,
					"giver":    giver,
					"receiver": receiver,
				},
			})
		}
	}

	return &DrawResult{Group: g, Tokens: tokens}, nil
}

// Reveal 查询 giver 的收礼人
func (s *Service) Reveal(ctx context.Context, id, giver string) (string, error) {
	g, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if g.DrawnAt == nil || len(g.Assignment) == 0 {
		return "", ErrNotDrawn
	}
	receiver, ok := g.Assignment[giver]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownParticipant, giver)
	}
	return receiver, nil
}
