package content

import (
	"context"
	"strings"
	"time"

	"github.com/portfolio/backend/internal/domain/content"
	"go.uber.org/zap"
)

// ContactService accepts contact form submissions. Delivery by email is not
// wired yet; messages are logged and kept in the contactMessages collection.
type ContactService struct {
	store  RecordStore
	logger *zap.Logger
	now    func() time.Time
}

// NewContactService creates a contact service
func NewContactService(store RecordStore, opts ...CollectionOption) *ContactService {
	o := applyOptions(opts)
	return &ContactService{store: store, logger: o.logger, now: o.now}
}

// Submit validates the message and records it. Recording failures are
// logged only: the sender still gets an acknowledgement.
func (s *ContactService) Submit(ctx context.Context, msg content.ContactMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	msg.ID = content.NewRecordID()
	msg.ReceivedAt = s.now().UTC()
	msg.Email = strings.TrimSpace(msg.Email)

	s.logger.Info("Contact message received",
		zap.String("id", msg.ID),
		zap.String("email", msg.Email),
		zap.String("subject", msg.Subject),
	)

	fields, err := toFields(msg)
	if err != nil {
		s.logger.Warn("Failed to encode contact message", zap.Error(err))
		return nil
	}
	delete(fields, "id")
	if err := s.store.Upsert(ctx, content.CollectionContactMessages, Document{ID: msg.ID, Fields: fields}); err != nil {
		s.logger.Warn("Failed to record contact message", zap.String("id", msg.ID), zap.Error(err))
	}
	return nil
}
