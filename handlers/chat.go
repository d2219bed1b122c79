package handlers

import (
	"net/http"
	"strings"

	"branchbook/middleware"
	"branchbook/models"
	"branchbook/services/chat"
	ai "branchbook/services/intelligence"
	"branchbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	Service chat.ChatService
}

func NewChatHandler(svc chat.ChatService) *ChatHandler {
	return &ChatHandler{Service: svc}
}

// Chat handles POST /api/chat. Authentication is optional.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": []string{"This field may not be blank."}})
		return
	}

	var userID *int64
	if who, ok := middleware.CurrentIdentity(c); ok {
		uid := who.UserID
		userID = &uid
	}

	resp := h.Service.HandleTurn(c.Request.Context(), userID, req)
	c.JSON(http.StatusOK, resp)
}

// History handles GET /api/chat/history.
func (h *ChatHandler) History(c *gin.Context) {
	who, _ := middleware.CurrentIdentity(c)
	msgs, err := h.Service.History(c.Request.Context(), who.UserID)
	if err != nil {
		getLogger(c).Error("failed to load chat history", zap.Int64("userID", who.UserID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load chat history", "")
		return
	}
	c.JSON(http.StatusOK, msgs)
}

type WeatherHandler struct {
	Weather ai.WeatherFetcher
}

func NewWeatherHandler(w ai.WeatherFetcher) *WeatherHandler {
	return &WeatherHandler{Weather: w}
}

// Current handles GET /api/weather.
func (h *WeatherHandler) Current(c *gin.Context) {
	w, err := h.Weather.Current(c.Request.Context())
	if err != nil {
		getLogger(c).Warn("weather lookup failed", zap.Error(err))
		utils.JSONDetail(c, http.StatusBadGateway, "Weather service unavailable.")
		return
	}
	c.JSON(http.StatusOK, w)
}
