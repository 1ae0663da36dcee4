package service

import (
	"context"
	"sort"
	"strings"

	"heart-matching-backend/internal/models"

	"go.uber.org/zap"
)

// TemplateMessages are the canned replies offered in the chat window
var TemplateMessages = []string{
	"詳細を確認いたします",
	"受け入れ可能です",
	"検討中です",
	"追加情報をお教えください",
	"受け入れが困難です",
	"ありがとうございました",
}

// ChatService manages per-patient message logs and the negotiation record kept alongside them.
// Negotiation status is independent of application status.
type ChatService struct {
	registry *Registry
	logger   *zap.Logger
}

func NewChatService(registry *Registry, logger *zap.Logger) *ChatService {
	return &ChatService{
		registry: registry,
		logger:   logger.Named("chat"),
	}
}

// Templates returns a copy of the canned replies
func (s *ChatService) Templates() []string {
	return append([]string(nil), TemplateMessages...)
}

// SendMessage appends a message to the patient's chat. The first message opens a
// requesting negotiation; every later message moves it to consulting.
func (s *ChatService) SendMessage(ctx context.Context, patientID, senderName, text string, messageType models.MessageType) (*models.ChatMessage, error) {
	if senderName == "" {
		return nil, ErrEmptyFacilityName
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	if messageType != models.MessageFile {
		messageType = models.MessageText
	}

	var msg models.ChatMessage
	err := s.registry.mutate(ctx, func() error {
		r := s.registry
		if r.patientIndexLocked(patientID) < 0 {
			return ErrPatientNotFound
		}

		now := r.now()
		msg = models.ChatMessage{
			ID:          r.newID(),
			PatientID:   patientID,
			ChatID:      "chat_" + patientID,
			SenderName:  senderName,
			Message:     text,
			MessageType: messageType,
			Timestamp:   now,
		}
		r.messages[patientID] = append(r.messages[patientID], msg)

		n, exists := r.negotiations[patientID]
		if !exists {
			r.negotiations[patientID] = models.Negotiation{
				ID:                 r.newID(),
				PatientID:          patientID,
				RequestingFacility: senderName,
				Status:             models.NegotiationRequesting,
				CreatedAt:          now,
				UpdatedAt:          now,
			}
			return nil
		}
		n.Status = models.NegotiationConsulting
		n.UpdatedAt = now
		if n.RespondingFacility == nil && senderName != n.RequestingFacility {
			responding := senderName
			n.RespondingFacility = &responding
		}
		r.negotiations[patientID] = n
		return nil
	}, CollectionMessages, CollectionNegotiations)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Message sent",
		zap.String("patient_id", patientID),
		zap.String("sender", senderName),
		zap.String("type", string(messageType)),
	)
	return &msg, nil
}

// MessagesFor returns the patient's messages in send order
func (s *ChatService) MessagesFor(patientID string) []models.ChatMessage {
	var out []models.ChatMessage
	s.registry.read(func() {
		out = append([]models.ChatMessage{}, s.registry.messages[patientID]...)
	})
	return out
}

// MarkRead marks every message not sent by facilityName as read and returns how many changed.
// Nothing is written when no message changed.
func (s *ChatService) MarkRead(ctx context.Context, patientID, facilityName string) int {
	r := s.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	marked := 0
	msgs := r.messages[patientID]
	for i := range msgs {
		if msgs[i].SenderName != facilityName && !msgs[i].IsRead {
			msgs[i].IsRead = true
			marked++
		}
	}
	if marked > 0 {
		_ = r.persistLocked(ctx, CollectionMessages)
	}
	return marked
}

// UnreadCount counts the patient's messages from other facilities that facilityName has not read
func (s *ChatService) UnreadCount(patientID, facilityName string) int {
	count := 0
	s.registry.read(func() {
		count = unreadLocked(s.registry.messages[patientID], facilityName)
	})
	return count
}

// TotalUnread counts unread messages for facilityName across every chat
func (s *ChatService) TotalUnread(facilityName string) int {
	total := 0
	s.registry.read(func() {
		for _, msgs := range s.registry.messages {
			total += unreadLocked(msgs, facilityName)
		}
	})
	return total
}

func unreadLocked(msgs []models.ChatMessage, facilityName string) int {
	n := 0
	for _, m := range msgs {
		if m.SenderName != facilityName && !m.IsRead {
			n++
		}
	}
	return n
}

// ChatsForFacility lists the chats facilityName takes part in, most recently updated first.
// A facility takes part when it sent a message, is named on the negotiation or registered the patient.
func (s *ChatService) ChatsForFacility(facilityName string) []models.ChatSummary {
	chats := []models.ChatSummary{}
	s.registry.read(func() {
		r := s.registry
		for _, patientID := range chatIDsLocked(r) {
			msgs := r.messages[patientID]
			n, hasNegotiation := r.negotiations[patientID]
			if !participates(r, patientID, msgs, n, hasNegotiation, facilityName) {
				continue
			}

			summary := models.ChatSummary{
				PatientID:   patientID,
				UnreadCount: unreadLocked(msgs, facilityName),
				Status:      models.NegotiationRequesting,
			}
			if len(msgs) > 0 {
				last := msgs[len(msgs)-1]
				summary.LastMessage = &last
				summary.UpdatedAt = last.Timestamp
			}
			if hasNegotiation {
				summary.Status = n.Status
				summary.UpdatedAt = n.UpdatedAt
			}
			chats = append(chats, summary)
		}
	})

	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].UpdatedAt.After(chats[j].UpdatedAt)
	})
	return chats
}

// chatIDsLocked returns every patient ID with messages or a negotiation record, sorted
func chatIDsLocked(r *Registry) []string {
	seen := map[string]bool{}
	ids := []string{}
	for id := range r.messages {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for id := range r.negotiations {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func participates(r *Registry, patientID string, msgs []models.ChatMessage, n models.Negotiation, hasNegotiation bool, facilityName string) bool {
	for _, m := range msgs {
		if m.SenderName == facilityName {
			return true
		}
	}
	if hasNegotiation {
		if n.RequestingFacility == facilityName {
			return true
		}
		if n.RespondingFacility != nil && *n.RespondingFacility == facilityName {
			return true
		}
	}
	if i := r.patientIndexLocked(patientID); i >= 0 && r.patients[i].Facility == facilityName {
		return true
	}
	return false
}

// Negotiation returns the negotiation record of a patient
func (s *ChatService) Negotiation(patientID string) (*models.Negotiation, bool) {
	var (
		n  models.Negotiation
		ok bool
	)
	s.registry.read(func() {
		n, ok = s.registry.negotiations[patientID]
	})
	if !ok {
		return nil, false
	}
	return &n, true
}

// UpdateNegotiationStatus sets the negotiation status of a patient's chat, opening
// a record requested by facilityName when none exists yet
func (s *ChatService) UpdateNegotiationStatus(ctx context.Context, patientID, facilityName string, status models.NegotiationStatus) (*models.Negotiation, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var updated models.Negotiation
	err := s.registry.mutate(ctx, func() error {
		r := s.registry
		if r.patientIndexLocked(patientID) < 0 {
			return ErrPatientNotFound
		}

		now := r.now()
		n, exists := r.negotiations[patientID]
		if !exists {
			n = models.Negotiation{
				ID:                 r.newID(),
				PatientID:          patientID,
				RequestingFacility: facilityName,
				CreatedAt:          now,
			}
		}
		n.Status = status
		n.UpdatedAt = now
		r.negotiations[patientID] = n
		updated = n
		return nil
	}, CollectionNegotiations)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Negotiation status updated",
		zap.String("patient_id", patientID),
		zap.String("status", string(status)),
		zap.String("facility", facilityName),
	)
	return &updated, nil
}
