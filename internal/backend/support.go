package backend

import (
	"context"
	"path"
	"slices"
	"strings"

	"github.com/MKhiriev/fx-desk/models"
)

// Viewer is who asks: clients see their own tickets and notifications,
// staff see every ticket.
type Viewer struct {
	UserID string
	Name   string
	Role   models.Role
}

func (v Viewer) canSee(t *models.Ticket) bool {
	return isStaff(v.Role) || t.UserID == v.UserID
}

// OpenTicket files a new ticket owned by the viewer.
func (b *Backend) OpenTicket(ctx context.Context, v Viewer, subject, category, priority string) (models.Ticket, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return models.Ticket{}, ErrInvalidInput
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	t := &models.Ticket{
		ID:        b.ids.Generate(),
		Subject:   subject,
		Category:  category,
		Priority:  priority,
		Status:    models.TicketOpen,
		UserID:    v.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.tickets = append(b.tickets, t)
	return *t, nil
}

// Tickets lists the tickets the viewer may see, most recently updated first.
func (b *Backend) Tickets(ctx context.Context, v Viewer) ([]models.Ticket, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Ticket, 0)
	for _, t := range b.tickets {
		if v.canSee(t) {
			out = append(out, *t)
		}
	}
	slices.SortStableFunc(out, func(x, y models.Ticket) int { return y.UpdatedAt.Compare(x.UpdatedAt) })
	return out, nil
}

// Ticket returns one ticket. A ticket the viewer may not see is reported as
// forbidden.
func (b *Backend) Ticket(ctx context.Context, v Viewer, id string) (models.Ticket, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	t, err := b.ticketLocked(v, id)
	if err != nil {
		return models.Ticket{}, err
	}
	return *t, nil
}

// CanJoin reports whether the viewer may join the chat room of ticketID.
func (b *Backend) CanJoin(v Viewer, ticketID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, err := b.ticketLocked(v, ticketID)
	return err == nil
}

// Messages returns the conversation of a ticket in posting order.
func (b *Backend) Messages(ctx context.Context, v Viewer, ticketID string) ([]models.ChatMessage, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, err := b.ticketLocked(v, ticketID); err != nil {
		return nil, err
	}
	return slices.Clone(b.messages[ticketID]), nil
}

// PostMessage stores a message from the viewer. A staff reply moves an open
// ticket in progress and notifies the owner.
func (b *Backend) PostMessage(ctx context.Context, v Viewer, ticketID, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	t, err := b.ticketLocked(v, ticketID)
	if err != nil {
		return models.ChatMessage{}, err
	}

	now := b.now()
	msg := models.ChatMessage{
		ID:         b.ids.Generate(),
		TicketID:   ticketID,
		SenderID:   v.UserID,
		SenderName: v.Name,
		SenderRole: v.Role,
		Text:       text,
		CreatedAt:  now,
	}
	b.messages[ticketID] = append(b.messages[ticketID], msg)
	t.UpdatedAt = now

	if isStaff(v.Role) && t.UserID != v.UserID {
		if t.Status == models.TicketOpen {
			t.Status = models.TicketInProgress
		}
		if t.AssignedTo == "" {
			t.AssignedTo = v.UserID
		}
		b.notifyLocked(t.UserID, models.NotificationTicketReply, "New reply", t.Subject,
			map[string]any{"ticketId": t.ID, "subject": t.Subject})
	}
	return msg, nil
}

// Attach records a file uploaded to a ticket.
func (b *Backend) Attach(ctx context.Context, v Viewer, ticketID, fileName string, size int64) (models.UploadedFile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.ticketLocked(v, ticketID); err != nil {
		return models.UploadedFile{}, err
	}
	return b.uploadLocked("tickets/"+ticketID, fileName, size), nil
}

// SaveKYCDocument records an identity document uploaded by a client.
func (b *Backend) SaveKYCDocument(ctx context.Context, v Viewer, docType, fileName string, size int64) (models.UploadedFile, error) {
	docType = strings.TrimSpace(docType)
	if docType == "" {
		return models.UploadedFile{}, ErrInvalidInput
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	file := b.uploadLocked("kyc/"+v.UserID+"/"+docType, fileName, size)
	b.documents[v.UserID] = append(b.documents[v.UserID], file)
	return file, nil
}

func (b *Backend) uploadLocked(dir, fileName string, size int64) models.UploadedFile {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" {
		name = "file"
	}
	return models.UploadedFile{
		URL:      "/uploads/" + dir + "/" + b.ids.Generate() + "/" + name,
		FileName: name,
		Size:     size,
	}
}

func (b *Backend) ticketLocked(v Viewer, id string) (*models.Ticket, error) {
	for _, t := range b.tickets {
		if t.ID != id {
			continue
		}
		if !v.canSee(t) {
			return nil, ErrForbidden
		}
		return t, nil
	}
	return nil, ErrNotFound
}

// Notifications returns the notifications of userID, newest first.
func (b *Backend) Notifications(ctx context.Context, userID string) ([]NotificationRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	list := b.notifications[userID]
	out := make([]NotificationRecord, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		out = append(out, *list[i])
	}
	return out, nil
}

// MarkNotificationRead flags one notification of userID as read.
func (b *Backend) MarkNotificationRead(ctx context.Context, userID, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, n := range b.notifications[userID] {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return ErrNotFound
}

// Notify stores a notification for userID.
func (b *Backend) Notify(ctx context.Context, userID string, kind models.NotificationKind, title, message string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notifyLocked(userID, kind, title, message, data)
}

func (b *Backend) notifyLocked(userID string, kind models.NotificationKind, title, message string, data any) {
	n := &NotificationRecord{
		NotificationHeader: models.NotificationHeader{
			ID:        b.ids.Generate(),
			Title:     title,
			Message:   message,
			CreatedAt: b.now(),
		},
		Type: kind,
		Data: data,
	}
	b.notifications[userID] = append(b.notifications[userID], n)
	_ = b.hub.Publish(notificationTopic, Delivery{UserID: userID, Notification: *n})
}
