package group

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"SecretSanta/internal/middleware"
	"SecretSanta/internal/santa"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register 挂载活动相关路由；auth 用于 /reveal
func (h *Handler) Register(r gin.IRouter, auth gin.HandlerFunc) {
	g := r.Group("/groups")
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/participants", h.AddParticipant)
	g.DELETE("/:id/participants/:name", h.RemoveParticipant)
	g.POST("/:id/couples", h.AddCouple)
	g.DELETE("/:id/couples/:name", h.RemoveCouple)
	g.POST("/:id/draw", h.Draw)

	r.GET("/reveal", auth, h.Reveal)
}

// statusFor 业务错误 -> HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrGroupNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyName),
		errors.Is(err, ErrSameName),
		errors.Is(err, ErrUnknownParticipant):
		return http.StatusBadRequest
	case errors.Is(err, ErrAlreadyInCouple), errors.Is(err, ErrNotDrawn):
		return http.StatusConflict
	case errors.Is(err, santa.ErrAttemptsLimitReached):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// POST /groups body: {name, participants}
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g, err := h.svc.Create(c.Request.Context(), req.Name, req.Participants...)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// GET /groups/:id
func (h *Handler) Get(c *gin.Context) {
	g, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// DELETE /groups/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /groups/:id/participants body: {name}
func (h *Handler) AddParticipant(c *gin.Context) {
	var req ParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g, err := h.svc.AddParticipant(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// DELETE /groups/:id/participants/:name
func (h *Handler) RemoveParticipant(c *gin.Context) {
	g, err := h.svc.RemoveParticipant(c.Request.Context(), c.Param("id"), c.Param("name"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// POST /groups/:id/couples body: {first, second}
func (h *Handler) AddCouple(c *gin.Context) {
	var req CoupleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g, err := h.svc.AddCouple(c.Request.Context(), c.Param("id"), req.First, req.Second)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// DELETE /groups/:id/couples/:name
func (h *Handler) RemoveCouple(c *gin.Context) {
	g, err := h.svc.RemoveCouple(c.Request.Context(), c.Param("id"), c.Param("name"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// POST /groups/:id/draw
func (h *Handler) Draw(c *gin.Context) {
	res, err := h.svc.Draw(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, DrawResponse{
		Group:  res.Group,
		Pairs:  santa.Assignment(res.Group.Assignment).Pairs(),
		Tokens: res.Tokens,
	})
}

// GET /reveal  (reveal token)
func (h *Handler) Reveal(c *gin.Context) {
	giver := c.GetString(middleware.CtxParticipant)
	receiver, err := h.svc.Reveal(c.Request.Context(), c.GetString(middleware.CtxGroupID), giver)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, RevealResponse{Giver: giver, Receiver: receiver})
}
