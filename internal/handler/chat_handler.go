package handler

import (
	"net/http"

	"heart-matching-backend/internal/middleware"
	"heart-matching-backend/internal/models"
	"heart-matching-backend/internal/service"
	"heart-matching-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

type SendMessageRequest struct {
	Message     string             `json:"message" binding:"required"`
	MessageType models.MessageType `json:"message_type" binding:"omitempty,oneof=text file"`
}

type UpdateStatusRequest struct {
	Status models.NegotiationStatus `json:"status" binding:"required"`
}

// ListChats returns the caller's chats, most recently updated first
func (h *ChatHandler) ListChats(c *gin.Context) {
	chats := h.chatService.ChatsForFacility(middleware.CurrentFacility(c))
	utils.SuccessResponse(c, gin.H{
		"chats": chats,
		"count": len(chats),
	})
}

// GetUnread returns the caller's total unread count
func (h *ChatHandler) GetUnread(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"unread": h.chatService.TotalUnread(middleware.CurrentFacility(c)),
	})
}

// GetTemplates returns the canned replies
func (h *ChatHandler) GetTemplates(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"templates": h.chatService.Templates(),
	})
}

// GetMessages returns a patient's chat log with its negotiation record
func (h *ChatHandler) GetMessages(c *gin.Context) {
	patientID := c.Param("patient_id")
	caller := middleware.CurrentFacility(c)

	response := gin.H{
		"messages": h.chatService.MessagesFor(patientID),
		"unread":   h.chatService.UnreadCount(patientID, caller),
	}
	if n, ok := h.chatService.Negotiation(patientID); ok {
		response["negotiation"] = n
	}

	utils.SuccessResponse(c, response)
}

// SendMessage posts a message as the calling facility
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.chatService.SendMessage(c.Request.Context(), c.Param("patient_id"), middleware.CurrentFacility(c), req.Message, req.MessageType)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, msg)
}

// MarkRead marks messages from other facilities as read
func (h *ChatHandler) MarkRead(c *gin.Context) {
	marked := h.chatService.MarkRead(c.Request.Context(), c.Param("patient_id"), middleware.CurrentFacility(c))
	utils.SuccessResponse(c, gin.H{
		"marked": marked,
	})
}

// UpdateStatus sets the negotiation status of a chat
func (h *ChatHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	n, err := h.chatService.UpdateNegotiationStatus(c.Request.Context(), c.Param("patient_id"), middleware.CurrentFacility(c), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, n)
}
